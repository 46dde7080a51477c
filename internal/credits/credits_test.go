package credits

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitTicsPreservesFirstOccurrences(t *testing.T) {
	text := "Suddenly the door opens. Suddenly the lights die. Suddenly a scream. Suddenly silence. Suddenly nothing."
	res := LimitTics(text, map[string]int{}, 2)

	assert.True(t, strings.HasPrefix(res.Text, "Suddenly the door opens. Suddenly the lights die. "))
	assert.Equal(t, "Suddenly the door opens. Suddenly the lights die. A scream. Then silence. Nothing.", res.Text)
	assert.Equal(t, 2, res.Credits["suddenly"])
	assert.Equal(t, 3, res.Replaced)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "5 found, 3 replaced")
}

func TestLimitTicsNeverDoublesThen(t *testing.T) {
	in := map[string]int{"for a moment": 2}
	res := LimitTics("She pauses for a moment. He pauses for a moment, then sits.", in, 2)
	assert.Equal(t, "She pauses. He pauses then sits.", res.Text)
	assert.Equal(t, 2, res.Replaced)
}

func TestLimitObjectsNeverJoinsLines(t *testing.T) {
	in := map[string]int{"drums fingers": 3}
	res := LimitObjects("Marcus paces.\nDrumming his fingers on the desk, he waits.\n", in, 3)
	assert.Equal(t, 1, res.Replaced)
	assert.True(t, strings.HasPrefix(res.Text, "Marcus paces.\n"))
	assert.Equal(t, 2, strings.Count(res.Text, "\n"))
	assert.NotContains(t, res.Text, "Drumming")
}

func TestLimitTicsSpendsExistingCredits(t *testing.T) {
	in := map[string]int{"for a moment": 1}
	res := LimitTics("She waits for a moment. He waits for a moment.", in, 2)
	assert.Equal(t, "She waits for a moment. He waits.", res.Text)
	assert.Equal(t, 2, res.Credits["for a moment"])
	assert.Equal(t, 1, in["for a moment"], "input map must not change")
}

func TestLimitObjectsReplacementByCategory(t *testing.T) {
	full := map[string]int{"checks watch": 3, "locket": 3, "keys": 3, "drums fingers": 3}
	cases := []struct {
		in, want string
	}{
		{"She checks her watch.", "She pauses."},
		{"Sarah opens the locket.", "Sarah opens it."},
		{"He pockets the keys.", "He pockets them."},
		{"She waits, drumming her fingers on the table.", "She waits."},
		{"The locket is cold.", "It is cold."},
	}
	for _, tc := range cases {
		res := LimitObjects(tc.in, full, 3)
		assert.Equal(t, tc.want, res.Text, tc.in)
		assert.Equal(t, 1, res.Replaced, tc.in)
	}
}

func TestLimitExitsCyclesAlternatives(t *testing.T) {
	res := LimitExits("He walks into the rain. She walks into the night. Dev slips into the shadows.", nil, 0)
	assert.Equal(t, "He leaves. She heads out. Dev goes.", res.Text)
	assert.Empty(t, res.Credits)
}

func TestGlobalCreditsMonotonicAndCapped(t *testing.T) {
	units := []string{
		"He walks into the rain.",
		"She walks into the rain. He walks into the rain.",
		"They walk on. Marcus walks into the rain. Sarah walks away without looking back.",
		"Dev walks into the rain. Sarah walks away without looking back. Sarah walks away without looking back.",
	}
	const max = 3
	credits := map[string]int{}
	for i, u := range units {
		res := LimitExits(u, credits, max)
		for name, before := range credits {
			assert.GreaterOrEqual(t, res.Credits[name], before, "unit %d %s", i, name)
		}
		for name, n := range res.Credits {
			assert.LessOrEqual(t, n, max, "unit %d %s", i, name)
		}
		credits = res.Credits
	}
	assert.Equal(t, 3, credits["walks into the rain"])
	assert.Equal(t, 3, credits["walks away without looking back"])
}

func phoneText(gap int) string {
	return "the phone " + strings.Repeat("x ", gap) + "the phone"
}

func TestCooldownBoundary(t *testing.T) {
	const cooldown = 10

	// second mention sits cooldown-1 words after the first
	res := EnforceCooldown(phoneText(cooldown-3), map[string]int{}, 0, cooldown, PropRules)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, Violation{Prop: "phone", Distance: cooldown - 1, Required: cooldown, Excerpt: phoneText(cooldown - 3)}, res.Violations[0])
	assert.False(t, strings.HasSuffix(res.Text, "the phone"))
	assert.Equal(t, 0, res.Positions["phone"])

	// exactly cooldown words apart
	res = EnforceCooldown(phoneText(cooldown-2), map[string]int{}, 0, cooldown, PropRules)
	assert.Empty(t, res.Violations)
	assert.Equal(t, phoneText(cooldown-2), res.Text)
	assert.Equal(t, cooldown, res.Positions["phone"])
}

func TestCooldownComparesAgainstLastAcceptedMention(t *testing.T) {
	text := "the phone a b c the phone d e f g h the phone"
	res := EnforceCooldown(text, nil, 0, 10, PropRules)

	require.Len(t, res.Violations, 1)
	assert.Equal(t, 5, res.Violations[0].Distance)
	assert.Equal(t, "the phone a b c it d e f g h the phone", res.Text)
	assert.Equal(t, 12, res.Positions["phone"])
	assert.Equal(t, 14, res.WordCount)
}

func TestCooldownUsesAbsoluteOffsets(t *testing.T) {
	positions := map[string]int{"phone": 100}
	res := EnforceCooldown("The phone rings. Her keys jingle.", positions, 105, 10, PropRules)

	require.Len(t, res.Violations, 1)
	assert.Equal(t, 5, res.Violations[0].Distance)
	assert.Equal(t, "It rings. Her keys jingle.", res.Text)
	assert.Equal(t, 100, res.Positions["phone"])
	assert.Equal(t, 108, res.Positions["keys"])
	assert.Equal(t, 111, res.WordCount)
	assert.Equal(t, 100, positions["phone"])
	_, touched := positions["keys"]
	assert.False(t, touched)
}
