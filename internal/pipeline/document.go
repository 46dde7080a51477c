package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"screenpass/internal/inject"
	"screenpass/internal/screenplay"
	"screenpass/internal/story"
)

// Document threads one PersistentContext through its units, one at a time.
// A Document must not be used from more than one goroutine.
type Document struct {
	processor  *Processor
	rng        inject.Rand
	context    story.PersistentContext
	ordinal    int
	characters []story.CharacterProfile
}

func NewDocument(p *Processor, rng inject.Rand, characters []story.CharacterProfile) *Document {
	return &Document{
		processor:  p,
		rng:        rng,
		context:    story.NewContext(),
		ordinal:    1,
		characters: characters,
	}
}

// Resume continues a document from a stored context. next is the ordinal
// of the first unit still to be accepted.
func Resume(p *Processor, rng inject.Rand, ctx story.PersistentContext, next int, characters []story.CharacterProfile) *Document {
	d := NewDocument(p, rng, characters)
	d.context = ctx.Clone()
	if next > 1 {
		d.ordinal = next
	}
	return d
}

// Submit processes one attempt at the current ordinal. Tic credits start
// empty for every attempt since they only count within a unit. The
// document advances only when the unit is accepted; after a rejection the
// caller regenerates and submits the same position again.
func (d *Document) Submit(text string) Output {
	ctx := d.context.Clone()
	ctx.TicCredits = map[string]int{}
	out := d.processor.Process(Input{
		Text:           text,
		Context:        ctx,
		Ordinal:        d.ordinal,
		PriorSummaries: d.context.SequenceSummaries,
		Characters:     d.characters,
	}, d.rng)
	if out.HardReject {
		return out
	}
	out.Context.SequenceSummaries = append(out.Context.SequenceSummaries, Summarize(d.ordinal, out.Content))
	d.context = out.Context
	d.ordinal++
	return out
}

// Skip gives up on the current ordinal without accepting anything; the
// context stays as it was.
func (d *Document) Skip() { d.ordinal++ }

func (d *Document) Ordinal() int { return d.ordinal }

// Context returns a copy of the current context.
func (d *Document) Context() story.PersistentContext { return d.context.Clone() }

// Summarize builds the continuity note kept for an accepted unit: who
// speaks in it and where it opens. Loop detection matches character
// introductions against these notes.
func Summarize(ordinal int, text string) string {
	lines := screenplay.Classify(text)
	speakers := map[string]struct{}{}
	opening := ""
	for _, l := range lines {
		switch l.Kind {
		case screenplay.CharacterCue:
			speakers[screenplay.CueName(strings.TrimSpace(l.Text))] = struct{}{}
		case screenplay.SceneHeading:
			if opening == "" {
				opening = strings.TrimSpace(l.Text)
			}
		}
	}
	names := make([]string, 0, len(speakers))
	for n := range speakers {
		names = append(names, n)
	}
	sort.Strings(names)
	s := fmt.Sprintf("Sequence %d", ordinal)
	if opening != "" {
		s += " opens at " + opening
	}
	if len(names) > 0 {
		s += "; characters: " + strings.Join(names, ", ")
	}
	return s + "."
}
