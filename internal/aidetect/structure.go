package aidetect

import (
	"regexp"
	"strings"
	"unicode"

	"screenpass/internal/screenplay"
	"screenpass/internal/timeline"
)

var montagePatterns = compileAll(
	`(?i)\bmontage\b`,
	`(?i)\bseries of (?:quick )?(?:shots|images|cuts|vignettes|scenes)\b`,
	`(?i)\bsequence of (?:quick )?(?:shots|images)\b`,
	`(?i)\bquick cuts?\b`,
	`(?i)\bintercut(?:ting)? (?:series|sequence)\b`,
)

// ArtifactLinePatterns match whole lines of generator bookkeeping that must
// never reach the page. They are applied to trimmed lines.
var ArtifactLinePatterns = compileAll(
	`(?i)^\[(?:scene|sequence|seq|act|page|beat)\b[^\]]*\]$`,
	`(?i)^(?:\*\*|#+\s*)?(?:scene|sequence|act)\s+\d+\b.*$`,
	`(?i)^-{2,}.*-{2,}$`,
	`(?i)^(?:end of (?:sequence|scene|act)(?:\s+\d+)?|continued in (?:the )?next sequence)\.?$`,
	`(?i)^(?:\*\*|__)?\s*(?:note|author's note|writer's note)s?\s*:.*$`,
)

// ArtifactInlinePatterns match meta fragments embedded inside otherwise
// valid lines.
var ArtifactInlinePatterns = compileAll(
	`(?i)[ \t]*\((?:note|author's note|writer's note|as requested|this (?:scene|sequence) (?:shows|establishes|is))\b[^)]*\)`,
	`(?i)[ \t]*\[(?:insert|todo|tk|placeholder)\b[^\]]*\]`,
)

// TimeJumps counts distinct explicit time skips.
func TimeJumps(u Unit, cfg Config) Result {
	var r Result
	for _, m := range timeline.UniqueMarkers(timeline.JumpsFromText(u.Text, 0)) {
		r.Count++
		r.addExample(m)
	}
	r.HardReject = r.Count > cfg.TimeJumpMax
	return r
}

// Montages has zero tolerance: a single montage marker rejects the unit.
func Montages(u Unit, _ Config) Result {
	var r Result
	for _, re := range montagePatterns {
		for _, m := range re.FindAllString(u.Text, -1) {
			r.Count++
			r.addExample(m)
		}
	}
	r.HardReject = r.Count > 0
	return r
}

type SceneResult struct {
	Result
	Total         int     `json:"total"`
	Interior      int     `json:"interior"`
	Exterior      int     `json:"exterior"`
	InteriorRatio float64 `json:"interior_ratio"`
	TooMany       bool    `json:"too_many"`
	InteriorHeavy bool    `json:"interior_heavy"`
}

// SceneCount counts sluglines and the share of them that are interiors.
// The ratio only counts once a unit has enough scenes to mean anything.
func SceneCount(u Unit, cfg Config) SceneResult {
	var res SceneResult
	for _, l := range u.Lines {
		if l.Kind != screenplay.SceneHeading {
			continue
		}
		t := strings.TrimSpace(l.Text)
		res.Total++
		switch {
		case strings.HasPrefix(t, "INT./EXT."), strings.HasPrefix(t, "I/E"):
		case strings.HasPrefix(t, "INT."):
			res.Interior++
		default:
			res.Exterior++
		}
	}
	res.Count = res.Total
	if res.Total > 0 {
		res.InteriorRatio = float64(res.Interior) / float64(res.Total)
	}
	res.TooMany = res.Total > cfg.SceneMax
	res.InteriorHeavy = res.Total >= cfg.InteriorMinScenes && res.InteriorRatio > cfg.InteriorRatioMax
	res.HardReject = res.TooMany || res.InteriorHeavy
	return res
}

// WordRepetition counts distinct immediate repeats: a word of three or more
// letters said twice in a row ("the the") or a two word phrase repeated
// back to back. Repeats separated by punctuation are deliberate and ignored.
func WordRepetition(u Unit, cfg Config) Result {
	var r Result
	spans := screenplay.WordSpans(u.Text)
	words := make([]string, len(spans))
	for i, s := range spans {
		words[i] = strings.ToLower(u.Text[s[0]:s[1]])
	}
	gapIsSpace := func(i int) bool {
		return isBlank(u.Text[spans[i][1]:spans[i+1][0]])
	}
	seen := map[string]struct{}{}
	record := func(key string) {
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		r.Count++
		r.addExample(key)
	}
	for i := 0; i+1 < len(words); i++ {
		if len(words[i]) >= 3 && words[i] == words[i+1] && gapIsSpace(i) {
			record(words[i] + " " + words[i+1])
		}
		if i+3 < len(words) && words[i] == words[i+2] && words[i+1] == words[i+3] && words[i] != words[i+1] &&
			gapIsSpace(i) && gapIsSpace(i+1) && gapIsSpace(i+2) {
			record(strings.Join(words[i:i+4], " "))
			i += 2
		}
	}
	r.HardReject = r.Count > cfg.RepetitionMax
	return r
}

func isBlank(s string) bool {
	for _, c := range s {
		if !unicode.IsSpace(c) {
			return false
		}
	}
	return len(s) > 0
}

// TechnicalArtifacts counts leaked generator bookkeeping. Report only: the
// cleanup passes remove it.
func TechnicalArtifacts(u Unit, _ Config) Result {
	var r Result
	for _, l := range u.Lines {
		t := strings.TrimSpace(l.Text)
		if t == "" {
			continue
		}
		if matchAny(ArtifactLinePatterns, t) {
			r.Count++
			r.addExample(t)
			continue
		}
		for _, re := range ArtifactInlinePatterns {
			for _, m := range re.FindAllString(l.Text, -1) {
				r.Count++
				r.addExample(m)
			}
		}
	}
	return r
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// IsArtifactLine reports whether a trimmed line is pure generator
// bookkeeping.
func IsArtifactLine(trimmed string) bool {
	return matchAny(ArtifactLinePatterns, trimmed)
}
