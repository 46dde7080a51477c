package chunk

import (
	"fmt"
	"strings"
	"testing"
)

func screenplayText(scenes, wordsPerScene int) string {
	var b strings.Builder
	for s := 0; s < scenes; s++ {
		fmt.Fprintf(&b, "INT. ROOM %d - DAY\n\n", s)
		b.WriteString(strings.TrimSpace(strings.Repeat("word ", wordsPerScene)))
		b.WriteString("\n\n")
	}
	return b.String()
}

func TestUnitsSplitAtSceneHeadings(t *testing.T) {
	text := screenplayText(40, 100)
	lines := strings.Split(text, "\n")

	segments := Units(text, 1500)
	if len(segments) < 2 {
		t.Fatalf("expected several units, got %d", len(segments))
	}

	covered := make([]int, len(lines))
	parts := make([]string, 0, len(segments))
	for i, s := range segments {
		if s.Index != i {
			t.Fatalf("segment %d has index %d", i, s.Index)
		}
		if s.StartLine < 0 || s.EndLine > len(lines) || s.StartLine >= s.EndLine {
			t.Fatalf("invalid segment bounds: %+v", s)
		}
		if !strings.HasPrefix(s.Text, "INT. ") {
			t.Fatalf("segment %d does not start at a scene heading: %q", i, s.Text[:20])
		}
		for j := s.StartLine; j < s.EndLine; j++ {
			covered[j]++
		}
		parts = append(parts, s.Text)
	}

	for i, n := range covered {
		if n != 1 {
			t.Fatalf("line %d covered %d times", i, n)
		}
	}
	if strings.Join(parts, "\n") != text {
		t.Fatal("joined units differ from the input")
	}
}

func TestUnitsKeepLongScenesWhole(t *testing.T) {
	text := screenplayText(2, 3000)
	segments := Units(text, 1000)
	if len(segments) != 2 {
		t.Fatalf("expected one unit per scene, got %d", len(segments))
	}
}

func TestUnitsEmptyInput(t *testing.T) {
	if got := Units("  \n\n", 100); got != nil {
		t.Fatalf("expected no units, got %d", len(got))
	}
	if got := Units("INT. ROOM - DAY\n\nword", 0); len(got) != 1 {
		t.Fatalf("expected a single unit without a target, got %d", len(got))
	}
}
