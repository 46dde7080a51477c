package story

import "maps"

// PersistentContext is the state threaded from one accepted unit to the next
// for the lifetime of a single document. It is never shared between documents.
type PersistentContext struct {
	TicCredits        map[string]int    `json:"tic_credits"`
	ObjectCredits     map[string]int    `json:"object_credits"`
	ExitCredits       map[string]int    `json:"exit_credits"`
	PropLastPosition  map[string]int    `json:"prop_last_position"`
	TotalWordCount    int               `json:"total_word_count"`
	SequenceSummaries []string          `json:"sequence_summaries"`
	CharacterStates   map[string]string `json:"character_states"`
}

// NewContext returns the empty context a document starts with.
func NewContext() PersistentContext {
	return PersistentContext{
		TicCredits:        map[string]int{},
		ObjectCredits:     map[string]int{},
		ExitCredits:       map[string]int{},
		PropLastPosition:  map[string]int{},
		SequenceSummaries: []string{},
		CharacterStates:   map[string]string{},
	}
}

// Clone returns a deep copy so callers can hand the copy to a pass without
// exposing their own maps to mutation.
func (c PersistentContext) Clone() PersistentContext {
	out := PersistentContext{
		TicCredits:        cloneCounts(c.TicCredits),
		ObjectCredits:     cloneCounts(c.ObjectCredits),
		ExitCredits:       cloneCounts(c.ExitCredits),
		PropLastPosition:  cloneCounts(c.PropLastPosition),
		TotalWordCount:    c.TotalWordCount,
		SequenceSummaries: append([]string{}, c.SequenceSummaries...),
		CharacterStates:   map[string]string{},
	}
	maps.Copy(out.CharacterStates, c.CharacterStates)
	return out
}

func cloneCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	maps.Copy(out, in)
	return out
}
