package timeline

import (
	"regexp"
	"strings"
)

// Jump is one explicit time skip found in a unit.
type Jump struct {
	Marker  string `json:"marker"`
	Context string `json:"context"`
}

var jumpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:\d+|a|one|two|three|four|five|six|seven|eight|nine|ten|a few|several|many|some) (?:minutes?|hours?|days?|weeks?|months?|years?|decades?) later\b`),
	regexp.MustCompile(`(?i)\b(?:days|weeks|months|years) (?:pass|go by|went by|passed)\b`),
	regexp.MustCompile(`(?i)\blater that (?:day|night|week|month|year)\b`),
	regexp.MustCompile(`(?i)\btime passes\b`),
	regexp.MustCompile(`(?i)\b(?:the following|the next) (?:week|month|year|spring|summer|autumn|fall|winter)\b`),
	regexp.MustCompile(`(?i)\bsuper:\s*"?[^"\n]*\blater\b`),
}

var space = regexp.MustCompile(`\s+`)

// ExtractMarkers returns every time-jump phrase in order of appearance.
func ExtractMarkers(text string) []string {
	jumps := JumpsFromText(text, 0)
	out := make([]string, 0, len(jumps))
	for _, j := range jumps {
		out = append(out, j.Marker)
	}
	return out
}

// JumpsFromText returns time jumps with a little surrounding text, sorted by
// position. maxJumps <= 0 means no limit.
func JumpsFromText(text string, maxJumps int) []Jump {
	type hit struct{ start, end int }
	var hits []hit
	for _, re := range jumpPatterns {
		for _, m := range re.FindAllStringIndex(text, -1) {
			hits = append(hits, hit{m[0], m[1]})
		}
	}
	if len(hits) == 0 {
		return nil
	}
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].start < hits[j-1].start; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	out := make([]Jump, 0, len(hits))
	lastEnd := -1
	for _, h := range hits {
		if maxJumps > 0 && len(out) >= maxJumps {
			break
		}
		if h.start < lastEnd {
			continue
		}
		lastEnd = h.end
		start := max(0, h.start-40)
		end := min(len(text), h.end+60)
		out = append(out, Jump{
			Marker:  text[h.start:h.end],
			Context: compact(text[start:end]),
		})
	}
	return out
}

// UniqueMarkers counts distinct jump phrases, case-insensitively.
func UniqueMarkers(jumps []Jump) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, j := range jumps {
		key := strings.ToLower(compact(j.Marker))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, j.Marker)
	}
	return out
}

func compact(s string) string {
	return strings.TrimSpace(space.ReplaceAllString(s, " "))
}
