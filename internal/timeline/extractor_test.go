package timeline

import "testing"

func TestExtractMarkers(t *testing.T) {
	markers := ExtractMarkers("Three weeks later, the farm is quiet. LATER THAT NIGHT Sarah returns.")
	if len(markers) != 2 {
		t.Fatalf("expected 2 markers, got %v", markers)
	}
	if markers[0] != "Three weeks later" {
		t.Fatalf("unexpected first marker %q", markers[0])
	}
}

func TestJumpsFromTextOrdersAndLimits(t *testing.T) {
	text := "Time passes. Two days later the storm hits. Months pass. Years later nobody remembers."
	jumps := JumpsFromText(text, 2)
	if len(jumps) != 2 {
		t.Fatalf("expected 2 jumps, got %d", len(jumps))
	}
	if jumps[0].Marker != "Time passes" || jumps[1].Marker != "Two days later" {
		t.Fatalf("unexpected order: %+v", jumps)
	}
}

func TestUniqueMarkers(t *testing.T) {
	jumps := JumpsFromText("Two days later. two days later. A week later.", 0)
	if got := UniqueMarkers(jumps); len(got) != 2 {
		t.Fatalf("expected 2 unique markers, got %v", got)
	}
}

func TestNoJumps(t *testing.T) {
	if jumps := JumpsFromText("Sarah opens the door.", 0); jumps != nil {
		t.Fatalf("expected no jumps, got %+v", jumps)
	}
}
