package screenplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `INT. KITCHEN - NIGHT

Sarah stands at the sink. The tap drips.

SARAH (V.O.)
(quietly)
I never wanted this.
Not like this.

MARCUS
Then leave.

CUT TO:

EXT. STREET - CONTINUOUS

Rain hammers the pavement.`

func TestClassifyTagsEveryLine(t *testing.T) {
	lines := Classify(sample)
	kinds := make([]Kind, len(lines))
	for i, l := range lines {
		kinds[i] = l.Kind
	}
	assert.Equal(t, []Kind{
		SceneHeading, Blank, Action, Blank,
		CharacterCue, Parenthetical, Dialogue, Dialogue, Blank,
		CharacterCue, Dialogue, Blank,
		Transition, Blank,
		SceneHeading, Blank, Action,
	}, kinds)
}

func TestJoinRoundTrips(t *testing.T) {
	text := "  INT. ROOM - DAY\n\n   Indented action.\n"
	assert.Equal(t, text, Join(Classify(text)))
}

func TestCueWithoutBlankLineAfterDialogue(t *testing.T) {
	lines := Classify("SARAH\nGo.\nMARCUS\nNo.")
	require.Len(t, lines, 4)
	assert.Equal(t, CharacterCue, lines[2].Kind)
	assert.Equal(t, Dialogue, lines[3].Kind)
}

func TestShoutedLineIsNotCue(t *testing.T) {
	lines := Classify("Marcus turns.\n\nMARCUS\nGET DOWN!")
	assert.Equal(t, Dialogue, lines[3].Kind)
}

func TestDialogueBlocks(t *testing.T) {
	blocks := DialogueBlocks(Classify(sample))
	require.Len(t, blocks, 2)
	assert.Equal(t, "SARAH", blocks[0].Speaker)
	assert.Equal(t, "I never wanted this. Not like this.", blocks[0].Text())
	assert.Equal(t, "MARCUS", blocks[1].Speaker)
}

func TestSentences(t *testing.T) {
	got := Sentences(`He waits. "Now?" she asks! Nothing happens`)
	assert.Equal(t, []string{"He waits.", `"Now?"`, "she asks!", "Nothing happens"}, got)
	assert.Empty(t, Sentences("   "))
}

func TestSentencesKeepAbbreviationsWhole(t *testing.T) {
	got := Sentences("Dr. Reyes sits down now. Mr. Cole waits.")
	assert.Equal(t, []string{"Dr. Reyes sits down now.", "Mr. Cole waits."}, got)

	got = Sentences("She quotes St. Paul")
	assert.Equal(t, []string{"She quotes St. Paul"}, got)
}

func TestSentenceSpansSkipWordlessText(t *testing.T) {
	text := "...and nothing. She runs."
	spans := SentenceSpans(text)
	require.Len(t, spans, 2)
	assert.Equal(t, "and nothing.", text[spans[0][0]:spans[0][1]])
	assert.Equal(t, "She runs.", text[spans[1][0]:spans[1][1]])
	assert.Equal(t, 3, spans[0][0])
}

func TestIsAbbreviation(t *testing.T) {
	assert.True(t, IsAbbreviation("Ask Dr. Hale", 6))
	assert.False(t, IsAbbreviation("She left. Hale", 8))
	assert.False(t, IsAbbreviation("x", 5))
}

func TestReplaceDeletionKeepsSentenceReadable(t *testing.T) {
	text := "Honestly, you know, it's fine."
	e := Replace(text, 0, len("Honestly,"), "")
	assert.Equal(t, "You know, it's fine.", ApplyEdits(text, []Edit{e}))

	text = "He checks his watch."
	e = Replace(text, 3, len("He checks his watch"), "")
	assert.Equal(t, "He.", ApplyEdits(text, []Edit{e}))
}

func TestReplaceCapitalizesAtSentenceStart(t *testing.T) {
	text := "The watch ticks. The watch stops."
	e := Replace(text, 17, 26, "it")
	assert.Equal(t, "The watch ticks. It stops.", ApplyEdits(text, []Edit{e}))
}

func TestApplyEditsSkipsOverlap(t *testing.T) {
	got := ApplyEdits("abcdef", []Edit{{Start: 1, End: 3, Replacement: "X"}, {Start: 2, End: 4, Replacement: "Y"}})
	assert.Equal(t, "abYef", got)
}

func TestDecapitalize(t *testing.T) {
	assert.Equal(t, "he waits.", Decapitalize("He waits."))
	assert.Equal(t, "Sarah waits.", Decapitalize("Sarah waits."))
	assert.Equal(t, "I wait.", Decapitalize("I wait."))
}
