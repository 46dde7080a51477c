package credits

import "regexp"

// Category decides how an over-budget match is rewritten.
type Category int

const (
	// CategoryPhrase matches are replaced from a rotation of neutral
	// substitutes, the empty string included.
	CategoryPhrase Category = iota
	// CategoryNoun matches become "it".
	CategoryNoun
	// CategoryPlural matches become "them".
	CategoryPlural
	// CategoryGesture matches (checking, staring) become "pauses".
	CategoryGesture
	// CategoryOther matches are deleted.
	CategoryOther
	// CategoryExit matches cycle through generic exits.
	CategoryExit
)

// Rule is one tracked pattern.
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Category Category
}

func rule(name, expr string, c Category) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile(expr), Category: c}
}

// TicRules are phrase-level verbal tics, capped per unit.
var TicRules = []Rule{
	rule("for a moment", `(?i)\bfor a (?:long |brief )?moment\b,?`, CategoryPhrase),
	rule("without a word", `(?i)\bwithout (?:a|another) word\b,?`, CategoryPhrase),
	rule("in silence", `(?i)\bin silence\b,?`, CategoryPhrase),
	rule("suddenly", `(?i)\bsuddenly\b,?`, CategoryPhrase),
	rule("finally", `(?i)\bfinally\b,?`, CategoryPhrase),
	rule("after a beat", `(?i)\bafter a (?:long )?beat\b,?`, CategoryPhrase),
}

// ObjectRules are physical-object habits, capped for the whole document.
var ObjectRules = []Rule{
	rule("checks watch", `(?i)\b(?:checks|glances at|looks at) (?:his|her|their) watch\b`, CategoryGesture),
	rule("stares at phone", `(?i)\bstares at (?:his|her|their|the) phone\b`, CategoryGesture),
	rule("locket", `(?i)\bthe locket\b`, CategoryNoun),
	rule("photograph", `(?i)\bthe (?:old )?photo(?:graph)?\b`, CategoryNoun),
	rule("keys", `(?i)\bthe keys\b`, CategoryPlural),
	rule("drums fingers", `(?i)[ \t]*,?[ \t]*drumming (?:his|her|their) fingers(?: on the (?:table|desk))?\b`, CategoryOther),
}

// ExitRules are scene-exit clichés, capped for the whole document.
var ExitRules = []Rule{
	rule("walks into the rain", `(?i)\b(?:walks|steps|disappears|vanishes) (?:out )?into the (?:rain|night|darkness|fog|crowd)\b`, CategoryExit),
	rule("walks away without looking back", `(?i)\bwalks away without looking back\b`, CategoryExit),
	rule("leaves without another word", `(?i)\bleaves without (?:another|a) word\b`, CategoryExit),
	rule("fades into the shadows", `(?i)\b(?:fades|melts|slips) into the shadows\b`, CategoryExit),
}

// PropRules are the props whose mentions must keep their distance.
var PropRules = []Rule{
	rule("watch", `(?i)\b(?:the|his|her|their|a) watch\b`, CategoryNoun),
	rule("phone", `(?i)\b(?:the|his|her|their|a) phone\b`, CategoryNoun),
	rule("locket", `(?i)\b(?:the|his|her|their|a) locket\b`, CategoryNoun),
	rule("cigarette", `(?i)\b(?:the|his|her|their|a) cigarette\b`, CategoryNoun),
	rule("keys", `(?i)\b(?:the|his|her|their) keys\b`, CategoryPlural),
	rule("glasses", `(?i)\b(?:the|his|her|their) glasses\b`, CategoryPlural),
}

var phraseSubstitutes = []string{"", "then"}

var exitAlternatives = []string{"leaves", "heads out", "goes"}

// replacement returns the text for the n-th over-budget match of r.
func replacement(r Rule, n int) string {
	switch r.Category {
	case CategoryPhrase:
		return phraseSubstitutes[n%len(phraseSubstitutes)]
	case CategoryNoun:
		return "it"
	case CategoryPlural:
		return "them"
	case CategoryGesture:
		return "pauses"
	case CategoryExit:
		return exitAlternatives[n%len(exitAlternatives)]
	default:
		return ""
	}
}
