// Package inject adds the small irregularities generated drafts lack:
// sensory detail after sluglines, friction in dialogue, physical markers in
// place of named emotions. Every injector is capped and draws from an
// explicit random source, so a unit and a seed always give the same output.
package inject

import (
	"math"
	"strings"

	"screenpass/internal/screenplay"
)

// Rand is the random source the injectors draw from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// MaxSensory is the hard ceiling on sensory insertions per unit.
const MaxSensory = 15

var sensoryWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`smell smells smelled scent stink stinks reek reeks odor aroma perfume smoke
		sound sounds hum hums buzz buzzes creak creaks rattle rattles hiss hisses drip drips echo echoes
		thud clatter clink roar whisper whine
		cold warm hot damp wet rough smooth sticky gritty greasy slick soft sharp
		bitter sour sweet salty rust dust mildew grease sweat`) {
		sensoryWords[w] = struct{}{}
	}
}

var sensoryLines = map[string][]string{
	"smell": {
		"It smells of bleach and old coffee.",
		"Diesel fumes hang over everything.",
		"Somebody burned toast in here recently.",
		"Wet dog and cigarette smoke.",
	},
	"sound": {
		"A refrigerator hums somewhere out of sight.",
		"Pipes knock inside the walls.",
		"A car alarm whoops twice and gives up.",
		"Rain ticks against the window.",
	},
	"touch": {
		"The air is cold enough to see breath.",
		"Every surface is slightly sticky.",
		"Heat pours off the radiator.",
		"A draft slides under the door.",
	},
	"texture": {
		"Paint flakes off the doorframe.",
		"The carpet is worn to the threads by the door.",
		"Water stains bloom across the ceiling tiles.",
		"Grit crunches underfoot.",
	},
}

var sensoryOrder = []string{"smell", "sound", "touch", "texture"}

// SensoryDensity is the number of sensory words per thousand words.
func SensoryDensity(text string) float64 {
	words := screenplay.Words(text)
	if len(words) == 0 {
		return 0
	}
	n := 0
	for _, w := range words {
		if _, ok := sensoryWords[strings.ToLower(w)]; ok {
			n++
		}
	}
	return float64(n) * 1000 / float64(len(words))
}

// Sensory tops a thin unit up to target sensory words per thousand by
// placing short sensory lines directly under randomly chosen scene
// headings. No line is used twice in one call and at most max (never more
// than MaxSensory) lines go in.
func Sensory(text string, rng Rand, target float64, max int) (string, int) {
	if max > MaxSensory {
		max = MaxSensory
	}
	words := len(screenplay.Words(text))
	density := SensoryDensity(text)
	if words == 0 || max <= 0 || density >= target {
		return text, 0
	}
	needed := int(math.Ceil((target - density) * float64(words) / 1000))
	if needed > max {
		needed = max
	}

	lines := screenplay.Classify(text)
	var headings []int
	for i, l := range lines {
		if l.Kind == screenplay.SceneHeading {
			headings = append(headings, i)
		}
	}
	if len(headings) == 0 {
		return text, 0
	}
	for i := len(headings) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		headings[i], headings[j] = headings[j], headings[i]
	}
	if needed > len(headings) {
		needed = len(headings)
	}
	chosen := map[int]bool{}
	for _, h := range headings[:needed] {
		chosen[h] = true
	}

	var pool []string
	for _, cat := range sensoryOrder {
		pool = append(pool, sensoryLines[cat]...)
	}

	out := make([]string, 0, len(lines)+needed*3)
	inserted := 0
	for i, l := range lines {
		out = append(out, l.Text)
		if !chosen[i] || len(pool) == 0 {
			continue
		}
		k := rng.IntN(len(pool))
		line := pool[k]
		pool = append(pool[:k], pool[k+1:]...)
		out = append(out, "", line)
		if i+1 < len(lines) && lines[i+1].Kind != screenplay.Blank {
			out = append(out, "")
		}
		inserted++
	}
	return strings.Join(out, "\n"), inserted
}
