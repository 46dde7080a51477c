// Package screenplay classifies screenplay text line by line and offers the
// sentence, word and span-editing helpers every pass builds on.
package screenplay

import (
	"regexp"
	"strings"
	"unicode"
)

type Kind int

const (
	Blank Kind = iota
	SceneHeading
	Transition
	CharacterCue
	Parenthetical
	Dialogue
	Action
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case SceneHeading:
		return "scene_heading"
	case Transition:
		return "transition"
	case CharacterCue:
		return "character_cue"
	case Parenthetical:
		return "parenthetical"
	case Dialogue:
		return "dialogue"
	case Action:
		return "action"
	default:
		return "unknown"
	}
}

// Line is one source line with its classification. Text keeps the original
// indentation so Join(Classify(s)) == s.
type Line struct {
	Kind Kind
	Text string
}

const (
	maxCueLength = 32
	maxCueWords  = 4
)

var sceneHeadingPattern = regexp.MustCompile(`^(?:INT\./EXT\.|EXT\./INT\.|I/E\.?|INT\.|EXT\.|EST\.)(?:\s|$)`)
var transitionPattern = regexp.MustCompile(`^(?:FADE (?:IN|OUT|TO BLACK)[:.]?|[A-Z][A-Z ]* TO:|SMASH CUT:?|MATCH CUT:?|CUT TO BLACK\.?|THE END\.?)$`)
var cueExtension = regexp.MustCompile(`\s*\((?:V\.O\.|O\.S\.|O\.C\.|CONT'D|CONT’D|CONT|PRE-LAP|FILTERED|ON PHONE|INTO PHONE)[^)]*\)`)

// Classify tags every line of text. Cue lines switch the dialogue flag on;
// blank lines, sluglines and transitions switch it off.
func Classify(text string) []Line {
	raw := strings.Split(text, "\n")
	out := make([]Line, 0, len(raw))
	inDialogue := false
	prev := Blank
	for _, l := range raw {
		t := strings.TrimSpace(l)
		kind := Action
		switch {
		case t == "":
			kind = Blank
			inDialogue = false
		case sceneHeadingPattern.MatchString(t):
			kind = SceneHeading
			inDialogue = false
		case transitionPattern.MatchString(t):
			kind = Transition
			inDialogue = false
		case (!inDialogue || prev == Dialogue) && IsCue(t):
			kind = CharacterCue
			inDialogue = true
		case inDialogue && strings.HasPrefix(t, "(") && strings.HasSuffix(t, ")"):
			kind = Parenthetical
		case inDialogue:
			kind = Dialogue
		}
		out = append(out, Line{Kind: kind, Text: l})
		prev = kind
	}
	return out
}

// IsCue reports whether a trimmed line looks like a character cue: short,
// all caps, not ending in sentence punctuation.
func IsCue(trimmed string) bool {
	name := CueName(trimmed)
	if name == "" || len(name) > maxCueLength {
		return false
	}
	if strings.HasSuffix(name, ":") || strings.HasSuffix(name, "!") || strings.HasSuffix(name, "?") || strings.HasSuffix(name, "...") {
		return false
	}
	if len(strings.Fields(name)) > maxCueWords {
		return false
	}
	hasLetter := false
	for _, r := range name {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// CueName strips extensions such as (V.O.) from a cue line.
func CueName(cue string) string {
	return strings.TrimSpace(cueExtension.ReplaceAllString(strings.TrimSpace(cue), ""))
}

// Join reassembles classified lines into text.
func Join(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// Texts returns the text of every line whose kind is one of kinds.
func Texts(lines []Line, kinds ...Kind) []string {
	out := []string{}
	for _, l := range lines {
		for _, k := range kinds {
			if l.Kind == k {
				out = append(out, l.Text)
				break
			}
		}
	}
	return out
}

// Block is one character cue with the dialogue lines spoken under it.
type Block struct {
	Speaker string
	Lines   []string
}

// Text joins the dialogue of the block into one string.
func (b Block) Text() string {
	parts := make([]string, 0, len(b.Lines))
	for _, l := range b.Lines {
		parts = append(parts, strings.TrimSpace(l))
	}
	return strings.Join(parts, " ")
}

// DialogueBlocks groups dialogue lines under the cue that introduced them.
// Cues with no dialogue are dropped.
func DialogueBlocks(lines []Line) []Block {
	var out []Block
	var cur *Block
	flush := func() {
		if cur != nil && len(cur.Lines) > 0 {
			out = append(out, *cur)
		}
		cur = nil
	}
	for _, l := range lines {
		switch l.Kind {
		case CharacterCue:
			flush()
			cur = &Block{Speaker: CueName(l.Text)}
		case Dialogue:
			if cur != nil {
				cur.Lines = append(cur.Lines, l.Text)
			}
		case Parenthetical:
		default:
			flush()
		}
	}
	flush()
	return out
}

// Indent splits a line into its leading whitespace and the rest.
func Indent(line string) (indent, body string) {
	trimmed := strings.TrimLeft(line, " \t")
	return line[:len(line)-len(trimmed)], trimmed
}
