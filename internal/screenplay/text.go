package screenplay

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

var sentencePattern = regexp.MustCompile(`[^.!?…]+(?:[.!?…]+["'”’)\]]*|$)`)
var wordPattern = regexp.MustCompile(`[A-Za-z0-9]+(?:['’][A-Za-z]+)*`)

// Sentences splits s on terminal punctuation. Punctuation stays attached to
// its sentence; pieces without a word are dropped.
func Sentences(s string) []string {
	spans := SentenceSpans(s)
	out := make([]string, len(spans))
	for i, sp := range spans {
		out[i] = s[sp[0]:sp[1]]
	}
	return out
}

// SentenceSpans returns the byte range of every sentence in s, trimmed of
// surrounding space. The period of an abbreviation such as "Dr." does not
// end a sentence. Text between spans (a leading "...", a lone dash) belongs
// to no sentence.
func SentenceSpans(s string) [][2]int {
	var out [][2]int
	start := -1
	for _, m := range sentencePattern.FindAllStringIndex(s, -1) {
		if start < 0 {
			start = m[0]
		}
		if end := m[1]; end < len(s) && s[end-1] == '.' && IsAbbreviation(s, end-1) {
			continue
		}
		if a, b := trimSpan(s, start, m[1]); len(Words(s[a:b])) > 0 {
			out = append(out, [2]int{a, b})
		}
		start = -1
	}
	if start >= 0 {
		if a, b := trimSpan(s, start, len(s)); len(Words(s[a:b])) > 0 {
			out = append(out, [2]int{a, b})
		}
	}
	return out
}

// trimSpan narrows s[a:b] to start at its first word, or at the opening
// quotes right before it, and to end before trailing space.
func trimSpan(s string, a, b int) (int, int) {
	for b > a && isSpaceByte(s[b-1]) {
		b--
	}
	ws := WordSpans(s[a:b])
	if len(ws) == 0 {
		return a, b
	}
	p := a + ws[0][0]
	for p > a {
		r, size := utf8.DecodeLastRuneInString(s[a:p])
		if !strings.ContainsRune(openers, r) {
			break
		}
		p -= size
	}
	return p, b
}

const openers = "\"'(“‘["

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "st": {}, "vs": {}, "etc": {}, "e.g": {}, "i.e": {}, "jr": {}, "sr": {},
}

// IsAbbreviation reports whether the period at pos closes a short
// abbreviation like "Dr." or "vs.".
func IsAbbreviation(text string, pos int) bool {
	if pos < 0 || pos >= len(text) || text[pos] != '.' {
		return false
	}
	start := pos
	for start > 0 {
		c := text[start-1]
		if !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') && c != '.' {
			break
		}
		start--
	}
	_, ok := abbreviations[strings.ToLower(text[start:pos])]
	return ok
}

// Words returns the lexical words of s.
func Words(s string) []string {
	return wordPattern.FindAllString(s, -1)
}

// WordSpans returns byte offsets of every lexical word in s.
func WordSpans(s string) [][]int {
	return wordPattern.FindAllStringIndex(s, -1)
}

// FieldCount counts whitespace separated tokens. Word offsets used for
// distances across a document are measured in these units.
func FieldCount(s string) int {
	return len(strings.Fields(s))
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Decapitalize lower-cases the first letter of s unless the first word is
// "I" or looks like a name or acronym.
func Decapitalize(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}
	first := strings.Trim(words[0], `"'“‘(`)
	if _, ok := functionWords[strings.ToLower(first)]; !ok {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

var functionWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "he": {}, "she": {}, "it": {}, "they": {}, "we": {}, "you": {},
	"his": {}, "her": {}, "their": {}, "its": {}, "our": {}, "there": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "nothing": {}, "something": {}, "someone": {}, "nobody": {}, "no": {},
	"then": {}, "now": {}, "still": {}, "everyone": {}, "everything": {}, "silence": {},
}

// SentenceStart reports whether pos begins a sentence: only whitespace and
// opening quotes separate it from a line start or terminal punctuation.
func SentenceStart(text string, pos int) bool {
	for i := pos - 1; i >= 0; i-- {
		switch text[i] {
		case ' ', '\t', '"', '(', '\'':
			continue
		case '\n', '.', '!', '?':
			return true
		default:
			return false
		}
	}
	return true
}

// Edit replaces text[Start:End] with Replacement.
type Edit struct {
	Start       int
	End         int
	Replacement string
}

// Replace builds an edit that swaps text[start:end] for repl and keeps the
// sentence readable: an empty repl also swallows one neighbouring space and
// re-capitalizes the following word when the span opened a sentence.
func Replace(text string, start, end int, repl string) Edit {
	atStart := SentenceStart(text, start)
	if repl != "" {
		if atStart {
			repl = Capitalize(repl)
		}
		return Edit{Start: start, End: end, Replacement: repl}
	}
	if end < len(text) && text[end] == ' ' {
		end++
	} else if start > 0 && text[start-1] == ' ' {
		start--
	}
	if atStart && end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLower(r) {
			return Edit{Start: start, End: end + size, Replacement: string(unicode.ToUpper(r))}
		}
	}
	return Edit{Start: start, End: end}
}

// ApplyEdits applies non-overlapping edits from the end of text backwards so
// earlier offsets stay valid. An edit overlapping one already applied is
// skipped.
func ApplyEdits(text string, edits []Edit) string {
	if len(edits) == 0 {
		return text
	}
	sorted := append([]Edit{}, edits...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })
	limit := len(text)
	for _, e := range sorted {
		if e.Start < 0 || e.End > limit || e.Start > e.End {
			continue
		}
		text = text[:e.Start] + e.Replacement + text[e.End:]
		limit = e.Start
	}
	return text
}
