// Package chunk cuts a whole screenplay into the units the pipeline
// processes one at a time.
package chunk

import (
	"strings"

	"screenpass/internal/screenplay"
)

// Segment is lines [StartLine, EndLine) of the source text.
type Segment struct {
	Index     int
	StartLine int
	EndLine   int
	Words     int
	Text      string
}

// Units splits text into segments of roughly targetWords words. A new
// segment only ever starts at a scene heading, so a long scene stays whole.
// Every line lands in exactly one segment, and joining the segment texts
// with "\n" gives back the input.
func Units(text string, targetWords int) []Segment {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lines := screenplay.Classify(text)

	var segments []Segment
	start, words := 0, 0
	flush := func(end int) {
		segments = append(segments, Segment{
			Index:     len(segments),
			StartLine: start,
			EndLine:   end,
			Words:     words,
			Text:      screenplay.Join(lines[start:end]),
		})
		start, words = end, 0
	}
	for i, l := range lines {
		if l.Kind == screenplay.SceneHeading && targetWords > 0 && words >= targetWords && i > start {
			flush(i)
		}
		words += screenplay.FieldCount(l.Text)
	}
	flush(len(lines))
	return segments
}
