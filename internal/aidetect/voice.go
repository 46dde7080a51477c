package aidetect

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"screenpass/internal/screenplay"
	"screenpass/internal/story"
)

// VoiceConfig tunes the voice homogeneity check. None of the constants are
// derived from anything principled.
type VoiceConfig struct {
	MinCharacters         int
	MinBlocksPerCharacter int
	RhythmTolerance       float64
	SimilarPairRatio      float64
	StarterMinUses        int
	MaxOverusedStarters   int
	ProfessorMinBlocks    int
	ProfessorMaxSentence  float64
}

func DefaultVoiceConfig() VoiceConfig {
	return VoiceConfig{
		MinCharacters:         3,
		MinBlocksPerCharacter: 2,
		RhythmTolerance:       2.0,
		SimilarPairRatio:      0.70,
		StarterMinUses:        3,
		MaxOverusedStarters:   2,
		ProfessorMinBlocks:    3,
		ProfessorMaxSentence:  18,
	}
}

var dialogueStarters = []string{
	"here's the thing",
	"the thing is",
	"you know",
	"i mean",
	"honestly",
	"listen",
	"look",
	"well",
	"okay",
	"hey",
	"see",
	"so",
}

var contraction = regexp.MustCompile(`(?i)\b[a-z]+['’](?:s|t|re|ve|ll|d|m)\b`)

type VoiceResult struct {
	Result
	Characters        int      `json:"characters"`
	OverusedStarters  []string `json:"overused_starters"`
	SimilarPairs      int      `json:"similar_pairs"`
	TotalPairs        int      `json:"total_pairs"`
	HomogeneousRhythm bool     `json:"homogeneous_rhythm"`
	ProfessorNotes    []string `json:"professor_notes"`
}

type speakerStats struct {
	name      string
	blocks    int
	sentences int
	words     int
	contracts int
}

func (s speakerStats) avgSentence() float64 {
	if s.sentences == 0 {
		return 0
	}
	return float64(s.words) / float64(s.sentences)
}

// VoiceHomogeneity looks for characters who all sound alike: shared stock
// openers ("Look,", "Listen,") and near-identical sentence rhythm. Profiles
// feed the professor humanization check, which only produces soft notes.
func VoiceHomogeneity(u Unit, profiles []story.CharacterProfile, cfg VoiceConfig) VoiceResult {
	var res VoiceResult
	blocks := screenplay.DialogueBlocks(u.Lines)
	if len(blocks) == 0 {
		return res
	}

	stats := map[string]*speakerStats{}
	starterUses := map[string]int{}
	starterSpeakers := map[string]map[string]struct{}{}
	for _, b := range blocks {
		st, ok := stats[b.Speaker]
		if !ok {
			st = &speakerStats{name: b.Speaker}
			stats[b.Speaker] = st
		}
		text := b.Text()
		st.blocks++
		for _, s := range screenplay.Sentences(text) {
			st.sentences++
			st.words += len(screenplay.Words(s))
		}
		st.contracts += len(contraction.FindAllString(text, -1))

		if starter := blockStarter(text); starter != "" {
			starterUses[starter]++
			if starterSpeakers[starter] == nil {
				starterSpeakers[starter] = map[string]struct{}{}
			}
			starterSpeakers[starter][b.Speaker] = struct{}{}
		}
	}

	for _, starter := range dialogueStarters {
		if starterUses[starter] >= cfg.StarterMinUses && len(starterSpeakers[starter]) >= 2 {
			res.OverusedStarters = append(res.OverusedStarters, starter)
			res.addExample(fmt.Sprintf("%q opens %d lines across %d characters", starter, starterUses[starter], len(starterSpeakers[starter])))
		}
	}

	names := make([]string, 0, len(stats))
	for name, st := range stats {
		if st.blocks >= cfg.MinBlocksPerCharacter && st.sentences > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	res.Characters = len(names)
	if len(names) >= cfg.MinCharacters {
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				res.TotalPairs++
				a, b := stats[names[i]].avgSentence(), stats[names[j]].avgSentence()
				if math.Abs(a-b) <= cfg.RhythmTolerance {
					res.SimilarPairs++
					res.addExample(fmt.Sprintf("%s/%s (%.1f vs %.1f words per sentence)", names[i], names[j], a, b))
				}
			}
		}
		res.HomogeneousRhythm = float64(res.SimilarPairs)/float64(res.TotalPairs) > cfg.SimilarPairRatio
	}

	res.ProfessorNotes = professorNotes(stats, profiles, cfg)
	res.Count = len(res.OverusedStarters) + res.SimilarPairs
	res.HardReject = len(res.OverusedStarters) >= cfg.MaxOverusedStarters || res.HomogeneousRhythm
	return res
}

func blockStarter(text string) string {
	lower := strings.ToLower(strings.TrimLeft(text, `"'“ `))
	for _, s := range dialogueStarters {
		if !strings.HasPrefix(lower, s) {
			continue
		}
		rest := lower[len(s):]
		if rest == "" || !isLetterByte(rest[0]) {
			return s
		}
	}
	return ""
}

func isLetterByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// professorNotes flags professor archetypes who only lecture: long
// sentences and not a single contraction.
func professorNotes(stats map[string]*speakerStats, profiles []story.CharacterProfile, cfg VoiceConfig) []string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	var notes []string
	for _, name := range names {
		p, ok := story.FindProfile(profiles, name)
		if !ok || p.Archetype != story.ArchetypeProfessor {
			continue
		}
		st := stats[name]
		if st.blocks < cfg.ProfessorMinBlocks {
			continue
		}
		if st.avgSentence() > cfg.ProfessorMaxSentence && st.contracts == 0 {
			notes = append(notes, fmt.Sprintf("%s lectures in %.0f-word sentences with no contractions", st.name, st.avgSentence()))
		}
	}
	return notes
}
