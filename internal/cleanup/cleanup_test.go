package cleanup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripArtifacts(t *testing.T) {
	in := "[SCENE 3]\n\nINT. BARN - NIGHT\n\nSarah waits (note: tension builds) by the door.\n\nEND OF SEQUENCE 2\n"
	out, n := StripArtifacts(in)
	assert.Equal(t, 3, n)
	assert.Equal(t, "\nINT. BARN - NIGHT\n\nSarah waits by the door.\n", out)
}

func TestStripSemanticGlue(t *testing.T) {
	out, n := StripSemanticGlue("She nods, somehow. He smiles, which said everything. They leave, and somehow, that was enough.")
	assert.Equal(t, 3, n)
	assert.Equal(t, "She nods. He smiles. They leave.", out)
}

func TestFixLowercaseAfterSentence(t *testing.T) {
	out, n := FixLowercaseAfterSentence("He stops. she turns. Wait... maybe not. Dr. smith nods! then\nleaves.")
	assert.Equal(t, 2, n)
	assert.Equal(t, "He stops. She turns. Wait... maybe not. Dr. smith nods! Then\nleaves.", out)
}

func TestStripSemanticGlueKeepsLineBreaks(t *testing.T) {
	out, n := StripSemanticGlue("INT. BARN - NIGHT\n\nHe turns away.\nAnd that was enough.\nShe nods, somehow.\n")
	assert.Equal(t, 2, n)
	assert.Equal(t, "INT. BARN - NIGHT\n\nHe turns away.\nShe nods.\n", out)
}

func TestFixLowercaseLeavesSpeechTags(t *testing.T) {
	out, n := FixLowercaseAfterSentence(`"Now?" she asks. "Go!" yells Marcus. "Fine." then he leaves.`)
	assert.Equal(t, 1, n)
	assert.Equal(t, `"Now?" she asks. "Go!" yells Marcus. "Fine." Then he leaves.`, out)
}

func ellipsisScene() string {
	var b strings.Builder
	b.WriteString("INT. HOUSE - NIGHT\n\n")
	for i := 0; i < 18; i++ {
		b.WriteString("The wind drops... the house creaks... nothing moves.\n\n")
	}
	b.WriteString("SARAH\nI don't... I can't...\n\nMARCUS\nJust... breathe...\n")
	return b.String()
}

func TestCapEllipsesPrefersActionLines(t *testing.T) {
	in := ellipsisScene()
	require.Equal(t, 40, strings.Count(in, "..."))

	out, n := CapEllipses(in, 10)
	assert.Equal(t, 30, n)
	assert.Equal(t, 10, strings.Count(out, "..."))
	assert.Contains(t, out, "I don't... I can't...")
	assert.Contains(t, out, "Just... breathe...")
	assert.Contains(t, out, "The wind drops. The house creaks—nothing moves.")
}

func TestCapEllipsesFallsBackToDialogue(t *testing.T) {
	in := "The door opens...\n\nSARAH\nWell... maybe... no...\n"
	out, n := CapEllipses(in, 1)
	assert.Equal(t, 3, n)
	assert.Equal(t, "The door opens.\n\nSARAH\nWell—maybe. No...\n", out)
}

func TestLimitEllipsesPerLine(t *testing.T) {
	out, n := LimitEllipsesPerLine("Wait... no... please... stop.\nFine...", 1)
	assert.Equal(t, 2, n)
	assert.Equal(t, "Wait... no. Please. Stop.\nFine...", out)
}

func TestStripSummaryEndings(t *testing.T) {
	in := "INT. BARN - NIGHT\n\nSarah shuts the door.\n\nAnd so, their lives would never be the same.\n"
	out, n := StripSummaryEndings(in)
	assert.Equal(t, 1, n)
	assert.Equal(t, "INT. BARN - NIGHT\n\nSarah shuts the door.\n", out)

	dialogue := "SARAH\nAnd so, we wait.\n"
	out, n = StripSummaryEndings(dialogue)
	assert.Zero(t, n)
	assert.Equal(t, dialogue, out)
}

func TestCapStutters(t *testing.T) {
	out, n := CapStutters("W-we go. I-I know. S-so what. N-no. T-shirt.", 2)
	assert.Equal(t, 2, n)
	assert.Equal(t, "W-we go. I-I know. So what. No. T-shirt.", out)
}

func TestReplaceGenericResponses(t *testing.T) {
	in := "SARAH\nYeah.\n\nMARCUS\nNo.\n\nSARAH\nYeah.\n\nMARCUS\nOkay.\n"
	out, n := ReplaceGenericResponses(in, 2)
	assert.Equal(t, 2, n)
	assert.Equal(t, "SARAH\nYeah.\n\nMARCUS\nNo.\n\nSARAH\nYeah, I heard you.\n\nMARCUS\nOkay, fine. Your call.\n", out)
}

func TestPassesAreIdempotent(t *testing.T) {
	input := "[SCENE 3]\n\nINT. BARN - NIGHT\n\nShe nods, somehow. he waits... and waits... and waits.\n\n" +
		"Sarah waits (note: tension builds) by the door, which said everything.\n\n" + ellipsisScene()
	passes := map[string]func(string) (string, int){
		"artifacts":    StripArtifacts,
		"glue":         StripSemanticGlue,
		"lowercase":    FixLowercaseAfterSentence,
		"ellipsis cap": func(s string) (string, int) { return CapEllipses(s, 10) },
		"stutters":     func(s string) (string, int) { return CapStutters(s, 1) },
	}
	for name, pass := range passes {
		once, _ := pass(input)
		twice, n := pass(once)
		assert.Equal(t, once, twice, name)
		assert.Zero(t, n, name)
	}
}
