package cleanup

import (
	"strings"

	"screenpass/internal/aidetect"
	"screenpass/internal/screenplay"
)

// genericAlternatives give a stock one-word reply a little content. Keys
// are the lower-cased reply without punctuation.
var genericAlternatives = map[string][]string{
	"yeah":     {"Yeah, I heard you.", "Yeah. For now."},
	"yes":      {"Yes, obviously.", "If that's what it takes."},
	"no":       {"Not a chance.", "No. Ask me again tomorrow."},
	"nope":     {"Not happening.", "Not today."},
	"okay":     {"Okay, fine. Your call.", "Okay. Don't make me regret it."},
	"ok":       {"Okay, fine. Your call.", "Okay. Don't make me regret it."},
	"sure":     {"If you say so.", "Sure, whatever helps."},
	"fine":     {"Fine. Have it your way.", "Fine, but I'm driving."},
	"right":    {"Right, sure.", "Right. Of course."},
	"what":     {"Say that again?", "Sorry, what did you just say?"},
	"hmm":      {"I'm thinking.", "Give me a second."},
	"uh-huh":   {"I'm listening.", "Go on."},
	"maybe":    {"Maybe. Don't hold your breath.", "Could be."},
	"whatever": {"Do what you want.", "I'm done arguing."},
	"really":   {"You're kidding me.", "Since when?"},
	"thanks":   {"I owe you one.", "Thanks. I mean it."},
	"exactly":  {"That's what I said.", "Finally, somebody gets it."},
	"true":     {"Can't argue with that.", "Fair enough."},
}

// ReplaceGenericResponses keeps the first max one-word dialogue replies and
// rewrites the rest with a fuller line.
func ReplaceGenericResponses(text string, max int) (string, int) {
	lines := screenplay.Classify(text)
	seen, changes := 0, 0
	used := map[string]int{}
	for i, l := range lines {
		if l.Kind != screenplay.Dialogue || !aidetect.IsGenericResponse(l.Text) {
			continue
		}
		seen++
		if seen <= max {
			continue
		}
		indent, body := screenplay.Indent(l.Text)
		key := strings.ToLower(strings.TrimRight(strings.TrimSpace(body), ".!?"))
		alts := genericAlternatives[key]
		if len(alts) == 0 {
			continue
		}
		lines[i].Text = indent + alts[used[key]%len(alts)]
		used[key]++
		changes++
	}
	if changes == 0 {
		return text, 0
	}
	return screenplay.Join(lines), changes
}
