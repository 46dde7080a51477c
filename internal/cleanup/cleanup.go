// Package cleanup holds the stateless passes that scrub a unit near the end
// of the pipeline. Every pass returns the new text and how many changes it
// made, and running a pass on its own output changes nothing.
package cleanup

import (
	"regexp"
	"strings"

	"screenpass/internal/aidetect"
	"screenpass/internal/screenplay"
)

// StripArtifacts removes generator bookkeeping: whole marker lines such as
// "[SCENE 4]" or "END OF SEQUENCE", and inline meta parentheticals.
func StripArtifacts(text string) (string, int) {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	changes := 0
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if t != "" && aidetect.IsArtifactLine(t) {
			changes++
			continue
		}
		for _, re := range aidetect.ArtifactInlinePatterns {
			if n := len(re.FindAllStringIndex(l, -1)); n > 0 {
				changes += n
				l = re.ReplaceAllString(l, "")
			}
		}
		out = append(out, l)
	}
	if changes == 0 {
		return text, 0
	}
	return collapseBlankRuns(out), changes
}

// collapseBlankRuns joins lines, keeping at most one blank line in a row.
func collapseBlankRuns(lines []string) string {
	out := make([]string, 0, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l) == "" && i > 0 && len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
			continue
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}

// bareStop is a line left holding only the punctuation of a stripped
// qualifier.
var bareStop = regexp.MustCompile(`(?m)^[ \t]*[.!?][ \t]*\n`)

// StripSemanticGlue deletes trailing qualifiers (", somehow.") and keeps
// the sentence's own punctuation.
func StripSemanticGlue(text string) (string, int) {
	changes := 0
	for {
		round := 0
		for _, p := range aidetect.GluePhrases {
			if n := len(p.Pattern.FindAllStringIndex(text, -1)); n > 0 {
				round += n
				text = p.Pattern.ReplaceAllString(text, p.Replacement)
			}
		}
		if round == 0 {
			if changes > 0 {
				text = bareStop.ReplaceAllString(text, "")
			}
			return text, changes
		}
		changes += round
	}
}

var lowerAfterStop = regexp.MustCompile(`([.!?])(["'”’)]?[ \t]+)([a-z])`)

// FixLowercaseAfterSentence capitalizes a sentence that starts in lower
// case. A trailing ellipsis means the thought continues, so it is skipped.
func FixLowercaseAfterSentence(text string) (string, int) {
	locs := lowerAfterStop.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text, 0
	}
	var edits []screenplay.Edit
	for _, m := range locs {
		punct, letter := m[2], m[6]
		if text[punct] == '.' && punct >= 2 && text[punct-1] == '.' && text[punct-2] == '.' {
			continue
		}
		if screenplay.IsAbbreviation(text, punct) {
			continue
		}
		if closesQuote(text[m[4]:m[5]]) && speechTag(text[letter:]) {
			continue
		}
		edits = append(edits, screenplay.Edit{Start: letter, End: letter + 1, Replacement: strings.ToUpper(text[letter : letter+1])})
	}
	return screenplay.ApplyEdits(text, edits), len(edits)
}

func closesQuote(gap string) bool {
	return strings.HasPrefix(gap, `"`) || strings.HasPrefix(gap, "'") || strings.HasPrefix(gap, "”") || strings.HasPrefix(gap, "’")
}

// speechTags are the words that continue a sentence after quoted speech:
// `"Now?" she asks`.
var speechTags = map[string]struct{}{
	"he": {}, "she": {}, "they": {}, "we": {}, "you": {}, "it": {},
	"says": {}, "said": {}, "asks": {}, "asked": {}, "whispers": {}, "shouts": {}, "mutters": {},
	"replies": {}, "yells": {}, "cries": {}, "calls": {}, "adds": {}, "answers": {}, "murmurs": {},
}

func speechTag(rest string) bool {
	end := 0
	for end < len(rest) && rest[end] >= 'a' && rest[end] <= 'z' {
		end++
	}
	_, ok := speechTags[rest[:end]]
	return ok
}

var summaryEnding = regexp.MustCompile(`(?i)^(?:and so,? |in the end,? |little did (?:he|she|they) know|together,? they |it was (?:only )?the beginning|this was only the beginning|what (?:he|she|they) didn't know|as the (?:sun sets|night falls|credits roll),? (?:he|she|they) (?:realize|know|understand)s?\b)|\b(?:would never be the same|everything had changed|the journey had (?:only )?just begun|nothing would ever be the same)\b`)

// StripSummaryEndings drops closing action lines that sum the unit up
// instead of ending on an image.
func StripSummaryEndings(text string) (string, int) {
	lines := screenplay.Classify(text)
	changes := 0
	end := len(lines)
	for end > 0 {
		l := lines[end-1]
		if l.Kind == screenplay.Blank {
			end--
			continue
		}
		if l.Kind != screenplay.Action || !summaryEnding.MatchString(strings.TrimSpace(l.Text)) {
			break
		}
		lines = append(lines[:end-1], lines[end:]...)
		end--
		changes++
	}
	if changes == 0 {
		return text, 0
	}
	out := strings.TrimRight(screenplay.Join(lines[:end]), " \t\n")
	if strings.HasSuffix(text, "\n") {
		out += "\n"
	}
	return out, changes
}

var stutterPattern = regexp.MustCompile(`\b([A-Za-z])-([A-Za-z])`)

// CapStutters keeps the first max stutters ("W-we") and collapses the rest
// back to the plain word.
func CapStutters(text string, max int) (string, int) {
	var edits []screenplay.Edit
	seen := 0
	for _, m := range stutterPattern.FindAllStringSubmatchIndex(text, -1) {
		a, b := text[m[2]:m[3]], text[m[4]:m[5]]
		if !strings.EqualFold(a, b) {
			continue
		}
		seen++
		if seen <= max {
			continue
		}
		edits = append(edits, screenplay.Edit{Start: m[0], End: m[5], Replacement: a})
	}
	return screenplay.ApplyEdits(text, edits), len(edits)
}
