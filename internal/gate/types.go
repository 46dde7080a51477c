package gate

import (
	"screenpass/internal/aidetect"
	"screenpass/internal/story"
)

// Input is one unit as submitted to the gate.
type Input struct {
	Text           string
	Ordinal        int
	PriorSummaries []string
	Characters     []story.CharacterProfile
}

// Reason names a failing detector and explains the failure.
type Reason struct {
	Detector string `json:"detector"`
	Message  string `json:"message"`
}

// Detectors holds every detector result the gate looked at.
type Detectors struct {
	Clinical    aidetect.Result          `json:"clinical"`
	OnTheNose   aidetect.Result          `json:"on_the_nose"`
	Banned      aidetect.Result          `json:"banned"`
	Loops       aidetect.LoopResult      `json:"loops"`
	Glue        aidetect.Result          `json:"glue"`
	GlueDensity int                      `json:"glue_density"`
	Voice       aidetect.VoiceResult     `json:"voice"`
	Mundanity   aidetect.MundanityResult `json:"mundanity"`
	TimeJumps   aidetect.Result          `json:"time_jumps"`
	Montages    aidetect.Result          `json:"montages"`
	Scenes      aidetect.SceneResult     `json:"scenes"`
	Generic     aidetect.Result          `json:"generic"`
	Repetition  aidetect.Result          `json:"repetition"`
	Purple      aidetect.Result          `json:"purple"`
}

// Decision is the gate's verdict on a unit.
type Decision struct {
	MustRegenerate bool      `json:"must_regenerate"`
	Reasons        []Reason  `json:"reasons"`
	SoftNotes      []string  `json:"soft_notes"`
	SurgicalPrompt string    `json:"surgical_prompt"`
	Detectors      Detectors `json:"detectors"`
}

const (
	DetectorClinical    = "clinical_dialogue"
	DetectorOnTheNose   = "on_the_nose"
	DetectorBanned      = "banned_phrases"
	DetectorLoops       = "loop_detection"
	DetectorGlueDensity = "semantic_glue_density"
	DetectorVoice       = "voice_homogeneity"
	DetectorMundanity   = "mundanity_ratio"
	DetectorTimeJumps   = "time_jumps"
	DetectorMontages    = "montages"
	DetectorSceneCount  = "scene_count"
	DetectorInterior    = "interior_ratio"
	DetectorGeneric     = "generic_responses"
	DetectorRepetition  = "word_repetition"
	DetectorPurple      = "purple_prose"
)
