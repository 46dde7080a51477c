package slop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeVarianceMetronomic(t *testing.T) {
	sentence := "The old man walks slowly down the long dark hall."
	text := "INT. HALL - NIGHT\n\n" + strings.TrimSpace(strings.Repeat(sentence+" ", 15))

	report := AnalyzeVariance(text)
	require.Equal(t, 15, report.SentenceCount)
	assert.InDelta(t, 0.0, report.StdDev, 0.0001)
	assert.InDelta(t, 10.0, report.Mean, 0.0001)
	assert.True(t, report.IsMetronomic)
}

func TestAnalyzeVarianceAlternating(t *testing.T) {
	short := "He stops dead."
	long := "She crosses the flooded parking lot past the burned out van and the broken shopping carts toward the single light still burning in the diner window tonight."
	var parts []string
	for i := 0; i < 8; i++ {
		parts = append(parts, short, long)
	}
	report := AnalyzeVariance(strings.Join(parts, " "))
	require.Equal(t, 16, report.SentenceCount)
	assert.Greater(t, report.StdDev, MetronomicThreshold)
	assert.False(t, report.IsMetronomic)
	assert.Equal(t, 8, report.ShortCount)
	assert.Equal(t, 8, report.LongCount)
}

func TestAnalyzeVarianceTooFewSentences(t *testing.T) {
	report := AnalyzeVariance("He waits. She waits. Nothing happens.")
	assert.Equal(t, DefaultStdDev, report.StdDev)
	assert.False(t, report.IsMetronomic)
	assert.Equal(t, 3, report.SentenceCount)
}

func TestAnalyzeVarianceIgnoresDialogue(t *testing.T) {
	text := "SARAH\n" + strings.Repeat("I am talking now. ", 20)
	report := AnalyzeVariance(text)
	assert.Equal(t, 0, report.SentenceCount)
}

func TestEnforceSentenceVarianceMergesChoppyRun(t *testing.T) {
	text := "INT. ROOM - DAY\n\nThe door opens. He waits. Nothing happens. Then the lights in the hallway flicker twice and die."
	got, n := EnforceSentenceVariance(text)
	assert.Equal(t, 1, n)
	assert.Contains(t, got, "The door opens — and he waits — and nothing happens.")
	assert.Contains(t, got, "Then the lights in the hallway flicker twice and die.")
	assert.True(t, strings.HasPrefix(got, "INT. ROOM - DAY\n\n"))
}

func TestEnforceSentenceVarianceLeavesShortPairsAndDialogue(t *testing.T) {
	text := "He sits. She stands.\n\nMARCUS\nGo. Now. Run. Hide."
	got, n := EnforceSentenceVariance(text)
	assert.Equal(t, 0, n)
	assert.Equal(t, text, got)
}

func TestEnforceSentenceVarianceKeepsAbbreviations(t *testing.T) {
	text := "INT. CLINIC - DAY\n\nDr. Reyes sits down now. Mr. Cole waits.\n"
	got, n := EnforceSentenceVariance(text)
	assert.Equal(t, 0, n)
	assert.Equal(t, text, got)

	text = "INT. CLINIC - DAY\n\nDr. Reyes sits. Mr. Cole waits. Nobody speaks.\n"
	got, n = EnforceSentenceVariance(text)
	assert.Equal(t, 1, n)
	assert.Equal(t, "INT. CLINIC - DAY\n\nDr. Reyes sits — and Mr. Cole waits — and nobody speaks.\n", got)
}

func TestEnforceSentenceVarianceKeepsTextOutsideSentences(t *testing.T) {
	text := "INT. CELLAR - NIGHT\n\n...and nothing. She runs. He hides. They wait.\n"
	got, n := EnforceSentenceVariance(text)
	assert.Equal(t, 1, n)
	assert.Equal(t, "INT. CELLAR - NIGHT\n\n...and nothing — and she runs — and he hides — and they wait.\n", got)

	text = "INT. CELLAR - NIGHT\n\n  The door opens. He waits. Nothing happens. — Then a scream.\n"
	got, n = EnforceSentenceVariance(text)
	assert.Equal(t, 1, n)
	assert.Equal(t, "INT. CELLAR - NIGHT\n\n  The door opens — and he waits — and nothing happens. — Then a scream.\n", got)
}

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func TestExtremeVarianceSplitsMediumSentences(t *testing.T) {
	sentence := "The old man walks slowly down the long dark hall."
	text := strings.TrimSpace(strings.Repeat(sentence+" ", 12))

	got, n := ExtremeVariance(text, fixedRand(0))
	assert.Equal(t, 12, n)
	assert.Contains(t, got, "The old man walks slowly. Down the long dark hall.")

	untouched, n := ExtremeVariance(text, fixedRand(0.99))
	assert.Equal(t, 0, n)
	assert.Equal(t, text, untouched)
}

func TestExtremeVarianceNeverLengthens(t *testing.T) {
	sentence := "The old man walks slowly down the long dark hall."
	text := strings.TrimSpace(strings.Repeat(sentence+" ", 12))
	got, _ := ExtremeVariance(text, fixedRand(0))
	for _, s := range strings.Split(got, ". ") {
		assert.LessOrEqual(t, len(strings.Fields(s)), 10)
	}
}

func TestExtremeVarianceSkipsVariedText(t *testing.T) {
	short := "He stops dead."
	long := "She crosses the flooded parking lot past the burned out van and the broken shopping carts toward the single light still burning in the diner window tonight."
	medium := "The old man walks slowly down the long dark hall."
	var parts []string
	for i := 0; i < 6; i++ {
		parts = append(parts, short, long, medium)
	}
	text := strings.Join(parts, " ")
	got, n := ExtremeVariance(text, fixedRand(0))
	assert.Equal(t, 0, n)
	assert.Equal(t, text, got)
}
