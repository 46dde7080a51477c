package credits

import (
	"maps"
	"sort"
	"strings"

	"screenpass/internal/screenplay"
)

// Violation is a prop mention that came too soon after the previous
// accepted one.
type Violation struct {
	Prop     string `json:"prop"`
	Distance int    `json:"distance"`
	Required int    `json:"required"`
	Excerpt  string `json:"excerpt"`
}

type CooldownResult struct {
	Text       string         `json:"-"`
	Positions  map[string]int `json:"positions"`
	Violations []Violation    `json:"violations"`
	// WordCount is the absolute offset the next unit starts at.
	WordCount int `json:"word_count"`
}

// EnforceCooldown removes prop mentions that sit closer than cooldownWords
// to the previous accepted mention of the same prop. Offsets are absolute
// across the document: currentWordCount plus the words before the match in
// this unit. A violating mention never becomes the new reference point.
func EnforceCooldown(text string, positions map[string]int, currentWordCount, cooldownWords int, props []Rule) CooldownResult {
	res := CooldownResult{
		Positions: make(map[string]int, len(positions)),
		WordCount: currentWordCount + screenplay.FieldCount(text),
	}
	maps.Copy(res.Positions, positions)

	var matches []match
	for _, p := range props {
		for _, loc := range p.Pattern.FindAllStringIndex(text, -1) {
			matches = append(matches, match{rule: p, start: loc[0], end: loc[1]})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	var edits []screenplay.Edit
	for _, m := range matches {
		offset := currentWordCount + screenplay.FieldCount(text[:m.start])
		name := m.rule.Name
		if prev, ok := res.Positions[name]; ok {
			if dist := offset - prev; dist < cooldownWords {
				res.Violations = append(res.Violations, Violation{
					Prop:     name,
					Distance: dist,
					Required: cooldownWords,
					Excerpt:  excerpt(text, m.start, m.end),
				})
				edits = append(edits, screenplay.Replace(text, m.start, m.end, replacement(m.rule, 0)))
				continue
			}
		}
		res.Positions[name] = offset
	}
	res.Text = screenplay.ApplyEdits(text, edits)
	return res
}

func excerpt(text string, start, end int) string {
	lo := strings.LastIndexByte(text[:start], '\n') + 1
	hi := strings.IndexByte(text[end:], '\n')
	if hi < 0 {
		hi = len(text)
	} else {
		hi += end
	}
	return strings.TrimSpace(text[lo:hi])
}
