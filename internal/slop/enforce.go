package slop

import (
	"strings"

	"screenpass/internal/screenplay"
)

const (
	choppyWords  = 7
	minChoppyRun = 3

	boringMinWords = 8
	boringMaxWords = 14
	// SplitProbability is the chance a medium-length sentence is split.
	SplitProbability = 0.15
)

// Rand is the random source used by the stochastic passes.
type Rand interface {
	Float64() float64
}

// EnforceSentenceVariance merges every run of three or more consecutive
// short action sentences into one sentence joined with "— and". It returns
// the rewritten text and the number of runs combined.
func EnforceSentenceVariance(text string) (string, int) {
	return rewriteActionLines(text, mergeChoppyRuns)
}

func mergeChoppyRuns(sentences []string) ([]string, int) {
	out := make([]string, 0, len(sentences))
	combined := 0
	for i := 0; i < len(sentences); {
		j := i
		for j < len(sentences) && len(screenplay.Words(sentences[j])) < choppyWords {
			j++
		}
		if j-i >= minChoppyRun {
			out = append(out, mergeRun(sentences[i:j]))
			combined++
			i = j
			continue
		}
		if j == i {
			j = i + 1
		}
		out = append(out, sentences[i:j]...)
		i = j
	}
	return out, combined
}

func mergeRun(run []string) string {
	var b strings.Builder
	for k, s := range run {
		if k < len(run)-1 {
			s = strings.TrimRight(s, ".!?… ")
		}
		if k == 0 {
			b.WriteString(s)
			continue
		}
		s = screenplay.Decapitalize(s)
		if strings.HasPrefix(s, "and ") {
			b.WriteString(" — ")
		} else {
			b.WriteString(" — and ")
		}
		b.WriteString(s)
	}
	return b.String()
}

// ExtremeVariance splits medium-length action sentences in two at their
// midpoint, each with SplitProbability, while the unit's deviation is under
// ExtremeVarianceTarget. It only ever shortens: padding sentences with
// connective phrases is itself a detectable tell.
func ExtremeVariance(text string, rng Rand) (string, int) {
	if AnalyzeVariance(text).StdDev >= ExtremeVarianceTarget {
		return text, 0
	}
	return rewriteActionLines(text, func(sentences []string) ([]string, int) {
		splits := 0
		for i, s := range sentences {
			n := len(screenplay.Words(s))
			if n < boringMinWords || n > boringMaxWords {
				continue
			}
			if rng.Float64() >= SplitProbability {
				continue
			}
			if split, ok := splitAtMidpoint(s); ok {
				sentences[i] = split
				splits++
			}
		}
		return sentences, splits
	})
}

func splitAtMidpoint(s string) (string, bool) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return s, false
	}
	mid := len(fields) / 2
	first := strings.TrimRight(strings.Join(fields[:mid], " "), ",;:—- ")
	second := strings.Join(fields[mid:], " ")
	if first == "" || len(screenplay.Words(second)) == 0 {
		return s, false
	}
	if !strings.ContainsAny(first[len(first)-1:], ".!?") {
		first += "."
	}
	return first + " " + screenplay.Capitalize(second), true
}
