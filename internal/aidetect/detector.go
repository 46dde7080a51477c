// Package aidetect holds the pattern detectors that flag generated-text tells
// in a screenplay unit. Every detector is a pure function of the unit and
// its thresholds; none of them decide anything on their own. The gate
// package turns their combined output into an accept/regenerate decision.
package aidetect

import (
	"regexp"
	"strings"

	"screenpass/internal/screenplay"
)

// MaxExamples caps how many matches a Result carries for reporting.
const MaxExamples = 5

// Result is the outcome of one detector.
type Result struct {
	Count      int      `json:"count"`
	Examples   []string `json:"examples"`
	HardReject bool     `json:"hard_reject"`
}

func (r *Result) addExample(s string) {
	s = strings.TrimSpace(s)
	if s == "" || len(r.Examples) >= MaxExamples {
		return
	}
	for _, e := range r.Examples {
		if strings.EqualFold(e, s) {
			return
		}
	}
	r.Examples = append(r.Examples, s)
}

// Unit is a classified block of generated text.
type Unit struct {
	Text  string
	Lines []screenplay.Line
}

func NewUnit(text string) Unit {
	return Unit{Text: text, Lines: screenplay.Classify(text)}
}

func (u Unit) dialogue() []string {
	return screenplay.Texts(u.Lines, screenplay.Dialogue)
}

func (u Unit) action() []string {
	return screenplay.Texts(u.Lines, screenplay.Action)
}

// Config carries every detector threshold. The values are heuristics and
// are meant to be tuned, not relied upon.
type Config struct {
	ClinicalMin       int
	OnTheNoseMin      int
	BannedMin         int
	TimeJumpMax       int
	SceneMax          int
	InteriorRatioMax  float64
	InteriorMinScenes int
	GenericMax        int
	RepetitionMax     int
	PurpleMax         int
	GlueCombinedMin   int
	MundanityHard     float64
	MundanitySoft     float64
	MundanityMinLines int
	Voice             VoiceConfig
}

func DefaultConfig() Config {
	return Config{
		ClinicalMin:       3,
		OnTheNoseMin:      2,
		BannedMin:         3,
		TimeJumpMax:       2,
		SceneMax:          100,
		InteriorRatioMax:  0.85,
		InteriorMinScenes: 8,
		GenericMax:        20,
		RepetitionMax:     8,
		PurpleMax:         5,
		GlueCombinedMin:   10,
		MundanityHard:     0.50,
		MundanitySoft:     0.30,
		MundanityMinLines: 5,
		Voice:             DefaultVoiceConfig(),
	}
}

// countMatches runs every pattern over every line and records each match.
func countMatches(lines []string, patterns []*regexp.Regexp) Result {
	var r Result
	for _, line := range lines {
		for _, re := range patterns {
			for _, m := range re.FindAllString(line, -1) {
				r.Count++
				r.addExample(m)
			}
		}
	}
	return r
}

// uniqueMatches counts distinct lower-cased matches over text.
func uniqueMatches(text string, patterns []*regexp.Regexp) Result {
	var r Result
	seen := map[string]struct{}{}
	for _, re := range patterns {
		for _, m := range re.FindAllString(text, -1) {
			key := strings.ToLower(strings.Join(strings.Fields(m), " "))
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			r.Count++
			r.addExample(m)
		}
	}
	return r
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}
