package prompts

import (
	"fmt"
	"strings"
)

const SurgicalHeader = `SURGICAL REWRITE REQUIRED
The previous draft of sequence %d was rejected. Rewrite the whole sequence and fix every issue below.
Keep the same story events, characters and scene order unless an issue says otherwise.`

const ClinicalTemplate = `CLINICAL DIALOGUE: characters speak like machines (%d clinical terms in dialogue, e.g. %s).
Rewrite those lines the way a tired person would actually say them: short words, contractions, half-finished thoughts. No technical vocabulary in dialogue unless the character is reading it aloud.`

const OnTheNoseTemplate = `ON-THE-NOSE DIALOGUE: characters announce their feelings (%d times, e.g. %s).
Cut every line that names an emotion. Show it through what they do or avoid instead: a changed subject, a refused drink, a joke that lands wrong.`

const BannedTemplate = `BANNED PHRASES: %d stock AI phrases found (%s).
Remove every one of them. Describe the specific thing in the scene instead of reaching for a familiar phrase.`

const LoopTemplate = `STORY LOOP: this sequence restarts or re-introduces material from earlier sequences (%s).
Do not open with FADE IN or an opening image, and do not introduce characters the audience already knows. Continue directly from where the previous sequence ended.`

const GlueDensityTemplate = `FILLER DENSITY: %d banned phrases and trailing qualifiers combined (threshold %d), e.g. %s.
End sentences on the concrete noun or verb. Delete qualifiers like "somehow", "which said everything" and "in a way".`

const VoiceTemplate = `VOICE HOMOGENEITY: the characters sound the same (%s).
Give each character a distinct rhythm and vocabulary. %s`

const MundanityTemplate = `PHILOSOPHICAL DIALOGUE: %.0f%% of dialogue lines reach for profound statements (e.g. %s).
People mostly talk about small, practical things. Replace the speeches with concrete talk about what is in front of them and let subtext carry the meaning.`

const MundanitySoftTemplate = `NOTE: %.0f%% of dialogue lines are philosophical. Prefer concrete, practical talk where possible.`

const TimeJumpTemplate = `TIME JUMPS: %d separate time skips (%s).
Keep this sequence in continuous time, or at most two jumps. Dramatize the intervening events instead of skipping them.`

const MontageTemplate = `MONTAGE: montages are not allowed (%s).
Replace the montage with one or two fully dramatized scenes that show the same change through specific action and dialogue.`

const SceneCountTemplate = `SCENE COUNT: %d scenes in one sequence (maximum %d).
Merge short scenes and let each remaining scene run long enough to turn.`

const InteriorTemplate = `INTERIOR RATIO: %.0f%% of scenes are interiors (maximum %.0f%%).
Move some scenes outside into specific, visual exterior locations.`

const GenericTemplate = `GENERIC RESPONSES: %d one-word replies (e.g. %s).
Give each reply content: an evasion, a question back, a specific detail.`

const RepetitionTemplate = `WORD REPETITION: %d repeated words or phrases (e.g. %s).
Remove accidental repetition.`

const PurpleTemplate = `PURPLE PROSE: %d overwritten images (e.g. %s).
Use plain, specific description. One precise detail beats three decorative ones.`

func Header(ordinal int) string {
	return strings.TrimSpace(fmt.Sprintf(SurgicalHeader, ordinal))
}

// Paragraph formats one template with its arguments.
func Paragraph(template string, args ...any) string {
	return strings.TrimSpace(fmt.Sprintf(template, args...))
}

// Quote renders examples as a short quoted list.
func Quote(examples []string, limit int) string {
	if len(examples) == 0 {
		return `"(none captured)"`
	}
	if limit > 0 && len(examples) > limit {
		examples = examples[:limit]
	}
	quoted := make([]string, len(examples))
	for i, e := range examples {
		quoted[i] = fmt.Sprintf("%q", strings.TrimSpace(e))
	}
	return strings.Join(quoted, ", ")
}

// Compose joins the header and paragraphs into one surgical prompt.
func Compose(ordinal int, paragraphs []string) string {
	if len(paragraphs) == 0 {
		return ""
	}
	parts := append([]string{Header(ordinal)}, paragraphs...)
	return strings.Join(parts, "\n\n")
}
