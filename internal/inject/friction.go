package inject

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"screenpass/internal/screenplay"
)

type frictionFunc func(line string, rng Rand) (string, bool)

// frictionTransforms are the ways a real speaker trips over a line.
var frictionTransforms = []frictionFunc{
	stutter,
	falseStart,
	filler,
	trailOff,
	pronounSwap,
	interruptedEnding,
}

var fillers = []string{"Uh,", "Um,", "I mean,"}

// Friction roughens dialogue. Each dialogue line gets one randomly chosen
// transform with the given probability, until max lines have changed.
// Action, cues and parentheticals are never touched.
func Friction(text string, rng Rand, probability float64, max int) (string, int) {
	if max <= 0 || probability <= 0 {
		return text, 0
	}
	lines := screenplay.Classify(text)
	changed := 0
	for i, l := range lines {
		if changed >= max {
			break
		}
		if l.Kind != screenplay.Dialogue || rng.Float64() >= probability {
			continue
		}
		indent, body := screenplay.Indent(l.Text)
		if strings.TrimSpace(body) == "" {
			continue
		}
		fn := frictionTransforms[rng.IntN(len(frictionTransforms))]
		if out, ok := fn(body, rng); ok {
			lines[i].Text = indent + out
			changed++
		}
	}
	if changed == 0 {
		return text, 0
	}
	return screenplay.Join(lines), changed
}

// firstWord returns the leading run of letters of line.
func firstWord(line string) string {
	end := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsLetter(r) && r != '\'' && r != '’' })
	if end < 0 {
		return line
	}
	return line[:end]
}

// stutter doubles the first letter of the opening word: "We" -> "W-we".
func stutter(line string, _ Rand) (string, bool) {
	w := firstWord(line)
	if utf8.RuneCountInString(w) < 2 {
		return line, false
	}
	r, size := utf8.DecodeRuneInString(w)
	return string(r) + "-" + string(unicode.ToLower(r)) + line[size:], true
}

// falseStart repeats the opening word as an aborted start.
func falseStart(line string, _ Rand) (string, bool) {
	w := firstWord(line)
	if w == "" || len(w) == len(line) {
		return line, false
	}
	return w + "— " + screenplay.Decapitalize(line), true
}

func filler(line string, rng Rand) (string, bool) {
	w := firstWord(line)
	if w == "" {
		return line, false
	}
	f := fillers[rng.IntN(len(fillers))]
	return f + " " + screenplay.Decapitalize(line), true
}

// trailOff lets the speaker lose the thread halfway and pick it back up.
func trailOff(line string, _ Rand) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return line, false
	}
	mid := len(fields) / 2
	w := fields[mid-1]
	if last, _ := utf8.DecodeLastRuneInString(w); strings.ContainsRune(".,;:!?—-…", last) {
		return line, false
	}
	fields[mid-1] = w + "..."
	return strings.Join(fields, " "), true
}

var pronounSwaps = map[string]string{
	"i":    "we",
	"we":   "I",
	"he":   "she",
	"she":  "he",
	"they": "we",
}

// pronounSwap has the speaker start with the wrong pronoun and correct it:
// "we should go" -> "I— we should go".
func pronounSwap(line string, _ Rand) (string, bool) {
	spans := screenplay.WordSpans(line)
	for i, s := range spans {
		if i >= 4 {
			break
		}
		word := line[s[0]:s[1]]
		swap, ok := pronounSwaps[strings.ToLower(word)]
		if !ok {
			continue
		}
		if word != "I" && screenplay.SentenceStart(line, s[0]) {
			swap = screenplay.Capitalize(swap)
			word = strings.ToLower(word)
		}
		return line[:s[0]] + swap + "— " + word + line[s[1]:], true
	}
	return line, false
}

// interruptedEnding cuts the closing punctuation off so the line yields.
func interruptedEnding(line string, _ Rand) (string, bool) {
	trimmed := strings.TrimRight(line, " ")
	if trimmed == "" || strings.HasSuffix(trimmed, "...") {
		return line, false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?':
		return trimmed[:len(trimmed)-1] + "—", true
	}
	return line, false
}
