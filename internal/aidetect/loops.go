package aidetect

import (
	"regexp"
	"strings"
)

var storyStartPatterns = compileAll(
	`(?m)^\s*FADE IN:?\s*$`,
	`(?i)\bopening (?:credits|titles|shot|image)\b`,
	`(?i)\bthe story begins\b`,
	`(?i)\bonce upon a time\b`,
)

var reintroductionPatterns = compileAll(
	`(?i)\bwe (?:first )?meet\b`,
	`(?i)\bfor the first time\b`,
	`(?i)\bis introduced\b`,
	`(?i)\bwe are introduced to\b`,
	`(?i)\bintroducing\b`,
)

// characterIntro matches the screenplay convention for a character's first
// appearance: the name in caps followed by an age, e.g. "SARAH (30s)".
var characterIntro = regexp.MustCompile(`\b([A-Z][A-Z'\-]+(?: [A-Z][A-Z'\-]+)?) \((?:\d{1,2}s?|early \d0s|mid-\d0s|late \d0s)\)`)

type LoopResult struct {
	Result
	StartMarkers    []string `json:"start_markers"`
	Reintroductions []string `json:"reintroductions"`
}

// DetectLoops flags a unit that restarts the story: an opening marker after
// the first unit, or a character or scene being introduced again. ordinal
// is 1-based. priorSummaries are the accepted summaries of earlier units.
func DetectLoops(u Unit, ordinal int, priorSummaries []string) LoopResult {
	var res LoopResult
	if ordinal <= 1 {
		return res
	}
	for _, re := range storyStartPatterns {
		for _, m := range re.FindAllString(u.Text, -1) {
			m = strings.TrimSpace(m)
			res.StartMarkers = append(res.StartMarkers, m)
			res.addExample(m)
		}
	}
	for _, re := range reintroductionPatterns {
		for _, m := range re.FindAllString(u.Text, -1) {
			res.Reintroductions = append(res.Reintroductions, m)
			res.addExample(m)
		}
	}
	prior := strings.ToLower(strings.Join(priorSummaries, "\n"))
	if prior != "" {
		for _, m := range characterIntro.FindAllStringSubmatch(u.Text, -1) {
			if strings.Contains(prior, strings.ToLower(m[1])) {
				res.Reintroductions = append(res.Reintroductions, m[0])
				res.addExample(m[0])
			}
		}
	}
	res.Count = len(res.StartMarkers) + len(res.Reintroductions)
	res.HardReject = res.Count > 0
	return res
}
