package aidetect

import (
	"regexp"
	"strings"
)

// BannedPhraseList is matched as lower-case substrings over the whole unit.
var BannedPhraseList = []string{
	"delve",
	"tapestry",
	"a testament to",
	"symphony of",
	"a dance of",
	"in the grand scheme",
	"navigate the complexities",
	"it's important to note",
	"little did",
	"a sense of",
	"palpable",
	"the weight of the world",
	"couldn't help but",
	"sent shivers down",
	"a beacon of",
	"in a world where",
	"barely above a whisper",
	"let out a breath",
	"the air was thick with",
	"the air is thick with",
	"a flicker of",
	"unspoken understanding",
	"intricate",
	"resonate",
}

var purplePatterns = compileAll(
	`(?i)\bdust motes (?:dance|dancing|drift|drifting|float|floating|swirl|swirling)\b`,
	`(?i)\bshafts? of (?:golden |pale )?(?:sun)?light\b`,
	`(?i)\bthe silence (?:is|was) deafening\b`,
	`(?i)\bdeafening silence\b`,
	`(?i)\btime (?:stands|stood) still\b`,
	`(?i)\bheart (?:pounds|pounded|hammers|hammered) (?:in|against) (?:his|her|their) (?:chest|ribs)\b`,
	`(?i)\ba wave of (?:relief|emotion|nausea|grief)\b`,
	`(?i)\bbreath (?:he|she|they) (?:didn't|did not) know\b`,
	`(?i)\bevery fiber of\b`,
	`(?i)\bthe world (?:falls|fell) away\b`,
	`(?i)\bbathed in (?:golden |soft |warm |pale )?light\b`,
	`(?i)\bdappled (?:sun)?light\b`,
	`(?i)\bethereal\b`,
	`(?i)\bkaleidoscope of\b`,
	`(?i)\binky (?:black(?:ness)?|darkness)\b`,
	`(?i)\bvelvet(?:y)? darkness\b`,
	`(?i)\bhangs? heavy in the air\b`,
	`(?i)\beyes (?:glisten|glistened|sparkle|sparkled) with\b`,
	`(?i)\ba single tear\b`,
	`(?i)\bpaint(?:s|ed) the sky\b`,
	`(?i)\bthe sun dips below the horizon\b`,
)

// Phrase pairs a pattern with the text that replaces it when stripped.
type Phrase struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// GluePhrases are trailing qualifiers that pad a sentence without adding
// meaning. The captured group keeps the sentence's closing punctuation.
var GluePhrases = []Phrase{
	{regexp.MustCompile(`(?i),?[ \t]*and somehow,? that was (?:enough|everything)([.!?])`), "$1"},
	{regexp.MustCompile(`(?i),[ \t]*somehow([.!?])`), "$1"},
	{regexp.MustCompile(`(?i),?[ \t]*which said everything([.!?])`), "$1"},
	{regexp.MustCompile(`(?i),?[ \t]*and that said it all([.!?])`), "$1"},
	{regexp.MustCompile(`(?i),?[ \t]*and that was enough([.!?])`), "$1"},
	{regexp.MustCompile(`(?i),?[ \t]*as if to say (?:something|everything)([.!?])`), "$1"},
	{regexp.MustCompile(`(?i),?[ \t]*in a way that (?:mattered|meant something)([.!?])`), "$1"},
	{regexp.MustCompile(`(?i),?[ \t]*that spoke volumes([.!?])`), "$1"},
	{regexp.MustCompile(`(?i),?[ \t]*something unspoken passing between them([.!?])`), "$1"},
	{regexp.MustCompile(`(?i),[ \t]*in a way([.!?])`), "$1"},
	{regexp.MustCompile(`(?i),[ \t]*almost([.!?])`), "$1"},
}

// BannedPhrases counts every occurrence of the banned list.
func BannedPhrases(u Unit, cfg Config) Result {
	var r Result
	lower := strings.ToLower(u.Text)
	for _, p := range BannedPhraseList {
		n := strings.Count(lower, p)
		if n == 0 {
			continue
		}
		r.Count += n
		r.addExample(p)
	}
	r.HardReject = r.Count >= cfg.BannedMin
	return r
}

// PurpleProse counts distinct overwritten imagery clichés.
func PurpleProse(u Unit, cfg Config) Result {
	r := uniqueMatches(u.Text, purplePatterns)
	r.HardReject = r.Count > cfg.PurpleMax
	return r
}

// SemanticGlue counts trailing qualifier phrases. It never rejects on its
// own; the gate folds it into a combined density rule.
func SemanticGlue(u Unit, _ Config) Result {
	var r Result
	for _, p := range GluePhrases {
		for _, m := range p.Pattern.FindAllString(u.Text, -1) {
			r.Count++
			r.addExample(m)
		}
	}
	return r
}
