package gate

import (
	"fmt"
	"strings"

	"screenpass/internal/aidetect"
	"screenpass/internal/prompts"
	"screenpass/internal/story"
)

const quoteLimit = 3

// Gate turns detector output into an accept/regenerate decision.
type Gate struct {
	config aidetect.Config
}

func NewGate(config aidetect.Config) *Gate {
	return &Gate{config: config}
}

// Evaluate runs every detector. Any hard reject means the unit must be
// regenerated; the surgical prompt then carries one paragraph per failing
// detector.
func (g *Gate) Evaluate(in Input) Decision {
	cfg := g.config
	u := aidetect.NewUnit(in.Text)

	d := Detectors{
		Clinical:   aidetect.ClinicalDialogue(u, cfg),
		OnTheNose:  aidetect.OnTheNose(u, cfg),
		Banned:     aidetect.BannedPhrases(u, cfg),
		Loops:      aidetect.DetectLoops(u, in.Ordinal, in.PriorSummaries),
		Glue:       aidetect.SemanticGlue(u, cfg),
		Voice:      aidetect.VoiceHomogeneity(u, in.Characters, cfg.Voice),
		Mundanity:  aidetect.Mundanity(u, cfg),
		TimeJumps:  aidetect.TimeJumps(u, cfg),
		Montages:   aidetect.Montages(u, cfg),
		Scenes:     aidetect.SceneCount(u, cfg),
		Generic:    aidetect.GenericResponses(u, cfg),
		Repetition: aidetect.WordRepetition(u, cfg),
		Purple:     aidetect.PurpleProse(u, cfg),
	}
	// banned phrases count toward glue density as well as on their own
	d.GlueDensity = d.Banned.Count + d.Glue.Count

	var reasons []Reason
	var paragraphs []string
	fail := func(detector, paragraph string) {
		reasons = append(reasons, Reason{Detector: detector, Message: firstLine(paragraph)})
		paragraphs = append(paragraphs, paragraph)
	}

	if d.Clinical.HardReject {
		fail(DetectorClinical, prompts.Paragraph(prompts.ClinicalTemplate, d.Clinical.Count, prompts.Quote(d.Clinical.Examples, quoteLimit)))
	}
	if d.OnTheNose.HardReject {
		fail(DetectorOnTheNose, prompts.Paragraph(prompts.OnTheNoseTemplate, d.OnTheNose.Count, prompts.Quote(d.OnTheNose.Examples, quoteLimit)))
	}
	if d.Banned.HardReject {
		fail(DetectorBanned, prompts.Paragraph(prompts.BannedTemplate, d.Banned.Count, prompts.Quote(d.Banned.Examples, 0)))
	}
	if d.Loops.HardReject {
		fail(DetectorLoops, prompts.Paragraph(prompts.LoopTemplate, prompts.Quote(d.Loops.Examples, quoteLimit)))
	}
	if d.GlueDensity >= cfg.GlueCombinedMin {
		examples := append(append([]string{}, d.Glue.Examples...), d.Banned.Examples...)
		fail(DetectorGlueDensity, prompts.Paragraph(prompts.GlueDensityTemplate, d.GlueDensity, cfg.GlueCombinedMin, prompts.Quote(examples, quoteLimit)))
	}
	if d.Voice.HardReject {
		fail(DetectorVoice, prompts.Paragraph(prompts.VoiceTemplate, prompts.Quote(d.Voice.Examples, quoteLimit), voiceGuidance(in.Characters)))
	}
	if d.Mundanity.HardReject {
		fail(DetectorMundanity, prompts.Paragraph(prompts.MundanityTemplate, d.Mundanity.Ratio*100, prompts.Quote(d.Mundanity.Examples, quoteLimit)))
	}
	if d.TimeJumps.HardReject {
		fail(DetectorTimeJumps, prompts.Paragraph(prompts.TimeJumpTemplate, d.TimeJumps.Count, prompts.Quote(d.TimeJumps.Examples, quoteLimit)))
	}
	if d.Montages.HardReject {
		fail(DetectorMontages, prompts.Paragraph(prompts.MontageTemplate, prompts.Quote(d.Montages.Examples, quoteLimit)))
	}
	if d.Scenes.TooMany {
		fail(DetectorSceneCount, prompts.Paragraph(prompts.SceneCountTemplate, d.Scenes.Total, cfg.SceneMax))
	}
	if d.Scenes.InteriorHeavy {
		fail(DetectorInterior, prompts.Paragraph(prompts.InteriorTemplate, d.Scenes.InteriorRatio*100, cfg.InteriorRatioMax*100))
	}
	if d.Generic.HardReject {
		fail(DetectorGeneric, prompts.Paragraph(prompts.GenericTemplate, d.Generic.Count, prompts.Quote(d.Generic.Examples, quoteLimit)))
	}
	if d.Repetition.HardReject {
		fail(DetectorRepetition, prompts.Paragraph(prompts.RepetitionTemplate, d.Repetition.Count, prompts.Quote(d.Repetition.Examples, quoteLimit)))
	}
	if d.Purple.HardReject {
		fail(DetectorPurple, prompts.Paragraph(prompts.PurpleTemplate, d.Purple.Count, prompts.Quote(d.Purple.Examples, quoteLimit)))
	}

	var soft []string
	if d.Mundanity.Soft {
		soft = append(soft, prompts.Paragraph(prompts.MundanitySoftTemplate, d.Mundanity.Ratio*100))
	}
	for _, n := range d.Voice.ProfessorNotes {
		soft = append(soft, "NOTE: "+n+". Let them interrupt themselves, use contractions, and say one thing that isn't a lecture.")
	}

	decision := Decision{
		MustRegenerate: len(reasons) > 0,
		Reasons:        reasons,
		SoftNotes:      soft,
		Detectors:      d,
	}
	if decision.MustRegenerate {
		decision.SurgicalPrompt = prompts.Compose(in.Ordinal, append(paragraphs, soft...))
	}
	return decision
}

func voiceGuidance(profiles []story.CharacterProfile) string {
	var parts []string
	for _, p := range profiles {
		if len(p.VoiceTraits) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", p.CueName(), strings.Join(p.VoiceTraits, ", ")))
	}
	if len(parts) == 0 {
		return "Vary sentence length by character and stop opening lines with the same filler word."
	}
	return "Lean on their voice traits (" + strings.Join(parts, "; ") + ") and stop opening lines with the same filler word."
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// ReasonNames returns the detector names of a decision, in evaluation order.
func (d Decision) ReasonNames() []string {
	out := make([]string, 0, len(d.Reasons))
	for _, r := range d.Reasons {
		out = append(out, r.Detector)
	}
	return out
}
