package aidetect

import (
	"regexp"
	"strings"
)

var clinicalPatterns = compileAll(
	`(?i)\bprocessing\b`,
	`(?i)\boptimal(?:ly)?\b`,
	`(?i)\bsuboptimal\b`,
	`(?i)\boptimi[sz]e\b`,
	`(?i)\bparameters\b`,
	`(?i)\bprotocols?\b`,
	`(?i)\befficien(?:t|cy)\b`,
	`(?i)\bthe data suggests\b`,
	`(?i)\bstatistically\b`,
	`(?i)\bin my assessment\b`,
	`(?i)\bI acknowledge\b`,
	`(?i)\baffirmative\b`,
	`(?i)\bit is imperative\b`,
	`(?i)\bobjectively\b`,
	`(?i)\blogically\b`,
	`(?i)\bI comprehend\b`,
	`(?i)\bcorrelation\b`,
	`(?i)\bvariables\b`,
	`(?i)\bcalculate[sd]?\b`,
	`(?i)\banalysis indicates\b`,
	`(?i)\bemotional response\b`,
	`(?i)\bwithin acceptable\b`,
	`(?i)\bI have processed\b`,
)

var onTheNosePatterns = compileAll(
	`(?i)\bI(?:'m|’m| am)(?: so| really| just)? (?:angry|sad|scared|afraid|happy|lonely|hurt|jealous|guilty|anxious|hopeless|frustrated|heartbroken|terrified|furious)\b`,
	`(?i)\bI feel(?: so| really| just)? (?:angry|sad|scared|afraid|happy|lonely|hurt|betrayed|jealous|guilty|anxious|hopeless|frustrated|abandoned|invisible|trapped)\b`,
	`(?i)\b(?:you|it|this) makes? me (?:feel )?(?:angry|sad|scared|happy|lonely|hurt|jealous|guilty|anxious)\b`,
	`(?i)\bI need you to understand\b`,
	`(?i)\bwhat I(?:'m|’m| am) (?:really )?trying to say is\b`,
	`(?i)\bI(?:'ve|’ve| have) always (?:loved|hated|resented|envied) you\b`,
	`(?i)\bmy (?:feelings|emotions) (?:are|were)\b`,
	`(?i)\bI(?:'m|’m| am) feeling\b`,
)

var genericResponse = regexp.MustCompile(`(?i)^(?:yeah|yes|no|nope|okay|ok|sure|fine|right|what|hmm|uh-huh|maybe|whatever|really|thanks|exactly|true)[.!?]$`)

var profoundPatterns = compileAll(
	`(?i)\b(?:life|love|death|time|truth|grief|hope|fear) is (?:a|an|the|just|never|always|about)\b`,
	`(?i)\bwe(?:'re|’re| are) all\b`,
	`(?i)\bthe (?:meaning|point|purpose) of (?:life|it all|everything)\b`,
	`(?i)\bsometimes (?:you|we) have to\b`,
	`(?i)\bin the end\b`,
	`(?i)\bwho we (?:really )?are\b`,
	`(?i)\bthe universe\b`,
	`(?i)\beverything happens for a reason\b`,
	`(?i)\bnone of us (?:is|are)\b`,
	`(?i)\bwhat (?:it means|does it mean) to be\b`,
	`(?i)\b(?:destiny|fate|eternity|the soul)\b`,
)

// ClinicalDialogue counts clinical, machine-like vocabulary spoken in
// dialogue. Action lines may use it freely.
func ClinicalDialogue(u Unit, cfg Config) Result {
	r := countMatches(u.dialogue(), clinicalPatterns)
	r.HardReject = r.Count >= cfg.ClinicalMin
	return r
}

// OnTheNose counts characters stating their emotions outright.
func OnTheNose(u Unit, cfg Config) Result {
	r := countMatches(u.dialogue(), onTheNosePatterns)
	r.HardReject = r.Count >= cfg.OnTheNoseMin
	return r
}

// GenericResponses counts dialogue lines that are a single stock word.
func GenericResponses(u Unit, cfg Config) Result {
	var r Result
	for _, line := range u.dialogue() {
		t := strings.TrimSpace(line)
		if genericResponse.MatchString(t) {
			r.Count++
			r.addExample(t)
		}
	}
	r.HardReject = r.Count > cfg.GenericMax
	return r
}

// IsGenericResponse reports whether a trimmed dialogue line is a stock reply.
func IsGenericResponse(line string) bool {
	return genericResponse.MatchString(strings.TrimSpace(line))
}

type MundanityResult struct {
	Result
	DialogueLines int     `json:"dialogue_lines"`
	Ratio         float64 `json:"ratio"`
	Soft          bool    `json:"soft"`
}

// Mundanity measures how much of the dialogue reaches for the profound.
// Real people mostly talk about small things; a high ratio reads as
// generated. Units with too little dialogue report a zero ratio.
func Mundanity(u Unit, cfg Config) MundanityResult {
	lines := u.dialogue()
	res := MundanityResult{DialogueLines: len(lines)}
	if len(lines) < cfg.MundanityMinLines {
		return res
	}
	for _, line := range lines {
		for _, re := range profoundPatterns {
			if re.MatchString(line) {
				res.Count++
				res.addExample(line)
				break
			}
		}
	}
	res.Ratio = float64(res.Count) / float64(len(lines))
	res.HardReject = res.Ratio > cfg.MundanityHard
	res.Soft = !res.HardReject && res.Ratio > cfg.MundanitySoft
	return res
}
