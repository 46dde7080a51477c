package inject

import (
	"regexp"
	"strings"

	"screenpass/internal/screenplay"
)

// tellingEmotion matches an emotion named outright in action. The
// replacement markers are predicates, so only the predicate is matched.
var tellingEmotion = regexp.MustCompile(`(?i)\b(?:feels|is|looks|seems|grows|becomes) (?:so |very |suddenly |increasingly )?(scared|afraid|terrified|frightened|angry|furious|enraged|sad|heartbroken|devastated|nervous|anxious|uneasy|ashamed|embarrassed|guilty|happy|elated|overjoyed)\b`)

var filledWith = regexp.MustCompile(`(?i)\bis (?:filled|overcome|overwhelmed) with (fear|dread|rage|anger|sadness|grief|anxiety|shame|joy)\b`)

var emotionOf = map[string]string{
	"scared": "fear", "afraid": "fear", "terrified": "fear", "frightened": "fear", "fear": "fear", "dread": "fear",
	"angry": "anger", "furious": "anger", "enraged": "anger", "rage": "anger", "anger": "anger",
	"sad": "sadness", "heartbroken": "sadness", "devastated": "sadness", "sadness": "sadness", "grief": "sadness",
	"nervous": "anxiety", "anxious": "anxiety", "uneasy": "anxiety", "anxiety": "anxiety",
	"ashamed": "shame", "embarrassed": "shame", "guilty": "shame", "shame": "shame",
	"happy": "joy", "elated": "joy", "overjoyed": "joy", "joy": "joy",
}

var somaticMarkers = map[string][]string{
	"fear": {
		"goes very still",
		"swallows hard",
		"backs up half a step",
		"grips the edge of the table",
	},
	"anger": {
		"clenches a fist",
		"sets the glass down too hard",
		"breathes through the nose",
		"stops blinking",
	},
	"sadness": {
		"stares at the floor",
		"blinks hard and looks away",
		"sits down heavily",
	},
	"anxiety": {
		"picks at a thumbnail",
		"checks the door twice",
		"can't keep still",
	},
	"shame": {
		"looks at the floor",
		"flushes red",
		"can't hold anyone's gaze",
	},
	"joy": {
		"grins",
		"can't stop smiling",
		"laughs out loud",
	},
}

// Somatic swaps named emotions in action lines for a physical marker of
// the same emotion. Dialogue is left alone; people do say "I'm scared".
func Somatic(text string, rng Rand, max int) (string, int) {
	if max <= 0 {
		return text, 0
	}
	lines := screenplay.Classify(text)
	changed := 0
	for i, l := range lines {
		if l.Kind != screenplay.Action || changed >= max {
			continue
		}
		out := l.Text
		for _, re := range []*regexp.Regexp{tellingEmotion, filledWith} {
			out = re.ReplaceAllStringFunc(out, func(m string) string {
				if changed >= max {
					return m
				}
				sub := re.FindStringSubmatch(m)
				markers := somaticMarkers[emotionOf[strings.ToLower(sub[1])]]
				if len(markers) == 0 {
					return m
				}
				changed++
				return markers[rng.IntN(len(markers))]
			})
		}
		lines[i].Text = out
	}
	if changed == 0 {
		return text, 0
	}
	return screenplay.Join(lines), changed
}
