package cleanup

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"screenpass/internal/screenplay"
)

const ellipsis = "..."

// ellipsisEdit swaps the ellipsis at pos for alt. A full stop capitalizes
// the next word; a dash closes up the following space.
func ellipsisEdit(text string, pos int, alt string) screenplay.Edit {
	end := pos + len(ellipsis)
	if alt == "." {
		i := end
		for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
			i++
		}
		if i > end && i < len(text) {
			r, size := utf8.DecodeRuneInString(text[i:])
			if unicode.IsLower(r) {
				return screenplay.Edit{Start: pos, End: i + size, Replacement: "." + text[end:i] + string(unicode.ToUpper(r))}
			}
		}
		return screenplay.Edit{Start: pos, End: end, Replacement: "."}
	}
	if end < len(text) && text[end] == ' ' {
		end++
	}
	return screenplay.Edit{Start: pos, End: end, Replacement: alt}
}

func ellipsisIndexes(line string) []int {
	var out []int
	for i := 0; ; {
		j := strings.Index(line[i:], ellipsis)
		if j < 0 {
			return out
		}
		out = append(out, i+j)
		i += j + len(ellipsis)
	}
}

// LimitEllipsesPerLine keeps at most max ellipses on any one line; the
// extras become full stops.
func LimitEllipsesPerLine(text string, max int) (string, int) {
	var edits []screenplay.Edit
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		idx := ellipsisIndexes(line)
		for k := max; k < len(idx); k++ {
			edits = append(edits, ellipsisEdit(text, offset+idx[k], "."))
		}
		offset += len(line) + 1
	}
	return screenplay.ApplyEdits(text, edits), len(edits)
}

// CapEllipses keeps at most max ellipses in the unit. Action and other
// non-dialogue lines give theirs up first, in reading order; dialogue only
// loses ellipses when nothing else is left. Removed ellipses alternate
// between a full stop and a dash.
func CapEllipses(text string, max int) (string, int) {
	if max < 0 {
		max = 0
	}
	lines := screenplay.Classify(text)
	var nonDialogue, dialogue []int
	offset := 0
	for _, l := range lines {
		for _, i := range ellipsisIndexes(l.Text) {
			if l.Kind == screenplay.Dialogue {
				dialogue = append(dialogue, offset+i)
			} else {
				nonDialogue = append(nonDialogue, offset+i)
			}
		}
		offset += len(l.Text) + 1
	}
	excess := len(nonDialogue) + len(dialogue) - max
	if excess <= 0 {
		return text, 0
	}
	order := append(nonDialogue, dialogue...)
	edits := make([]screenplay.Edit, 0, excess)
	for k, pos := range order[:excess] {
		alt := "."
		if k%2 == 1 {
			alt = "—"
		}
		edits = append(edits, ellipsisEdit(text, pos, alt))
	}
	return screenplay.ApplyEdits(text, edits), excess
}
