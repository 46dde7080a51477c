// Package credits keeps recurring phrases and props in budget. The limiters
// spend credits against a cap and rewrite whatever goes over it; the
// cooldown enforcer keeps two mentions of the same prop apart in the
// document.
package credits

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"screenpass/internal/screenplay"
)

// Result is the outcome of one limiter run. Credits is a fresh map; the map
// passed in is never modified.
type Result struct {
	Text     string         `json:"-"`
	Credits  map[string]int `json:"credits"`
	Warnings []string       `json:"warnings"`
	Replaced int            `json:"replaced"`
}

// LimitTics caps each tic at max occurrences within the current unit.
// credits holds what the unit has already spent.
func LimitTics(text string, credits map[string]int, max int) Result {
	return Limit(text, credits, TicRules, max, "tic")
}

// LimitObjects caps each object habit at max occurrences for the whole
// document.
func LimitObjects(text string, credits map[string]int, max int) Result {
	return Limit(text, credits, ObjectRules, max, "object")
}

// LimitExits caps each exit cliché at max occurrences for the whole
// document.
func LimitExits(text string, credits map[string]int, max int) Result {
	return Limit(text, credits, ExitRules, max, "exit")
}

type match struct {
	rule       Rule
	start, end int
}

// Limit walks matches of every rule left to right. While a rule still has
// credit the match is kept verbatim and one credit is spent; after that each
// match is rewritten according to the rule's category.
func Limit(text string, credits map[string]int, rules []Rule, max int, scope string) Result {
	res := Result{Text: text, Credits: make(map[string]int, len(credits))}
	maps.Copy(res.Credits, credits)

	var matches []match
	for _, r := range rules {
		for _, loc := range r.Pattern.FindAllStringIndex(text, -1) {
			matches = append(matches, match{rule: r, start: loc[0], end: loc[1]})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	found := map[string]int{}
	replaced := map[string]int{}
	var edits []screenplay.Edit
	lastEnd := -1
	for _, m := range matches {
		if m.start < lastEnd {
			continue
		}
		name := m.rule.Name
		found[name]++
		if res.Credits[name] < max {
			res.Credits[name]++
			lastEnd = m.end
			continue
		}
		repl := replacement(m.rule, res.Replaced)
		if repl != "" && nextToSame(text, m.start, m.end, repl) {
			repl = ""
		}
		edits = append(edits, screenplay.Replace(text, m.start, m.end, repl))
		replaced[name]++
		res.Replaced++
		lastEnd = m.end
	}
	res.Text = screenplay.ApplyEdits(text, edits)

	for _, r := range rules {
		if n := replaced[r.Name]; n > 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s %q: %d found, %d replaced (cap %d, %d used)", scope, r.Name, found[r.Name], n, max, res.Credits[r.Name]))
		}
	}
	return res
}

// nextToSame reports whether the word before or after text[start:end] on
// the same line is already word, so substituting it would double it.
func nextToSame(text string, start, end int, word string) bool {
	before := text[:start]
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	after := text[end:]
	if i := strings.IndexByte(after, '\n'); i >= 0 {
		after = after[:i]
	}
	if w := screenplay.Words(before); len(w) > 0 && strings.EqualFold(w[len(w)-1], word) {
		return true
	}
	w := screenplay.Words(after)
	return len(w) > 0 && strings.EqualFold(w[0], word)
}
