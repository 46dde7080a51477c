// Package slop measures and corrects the sentence rhythm of action lines.
// Uniform sentence length is one of the most reliable tells of generated
// prose, so these passes push action text toward human variance without
// touching dialogue or sluglines.
package slop

import (
	"math"
	"strings"

	"screenpass/internal/screenplay"
)

const (
	// MetronomicThreshold is the standard deviation below which action prose
	// reads as machine-even.
	MetronomicThreshold = 4.5
	// ExtremeVarianceTarget is the stricter bar used by ExtremeVariance.
	ExtremeVarianceTarget = 5.5
	// MinSentences is the sample size below which the statistic is too noisy.
	MinSentences = 10
	// DefaultStdDev is reported when there are fewer than MinSentences.
	DefaultStdDev = 5.0

	shortSentenceWords = 6
	longSentenceWords  = 20
)

type VarianceReport struct {
	StdDev        float64 `json:"std_dev"`
	Mean          float64 `json:"mean"`
	ShortCount    int     `json:"short_count"`
	LongCount     int     `json:"long_count"`
	SentenceCount int     `json:"sentence_count"`
	IsMetronomic  bool    `json:"is_metronomic"`
}

// AnalyzeVariance computes the population standard deviation of sentence
// lengths over the action lines of text.
func AnalyzeVariance(text string) VarianceReport {
	return AnalyzeLines(screenplay.Classify(text))
}

// AnalyzeLines is AnalyzeVariance over an already classified unit.
func AnalyzeLines(lines []screenplay.Line) VarianceReport {
	sentences := actionSentences(lines)
	lengths := make([]float64, 0, len(sentences))
	report := VarianceReport{SentenceCount: len(sentences)}
	for _, s := range sentences {
		n := len(screenplay.Words(s))
		if n < shortSentenceWords {
			report.ShortCount++
		}
		if n > longSentenceWords {
			report.LongCount++
		}
		lengths = append(lengths, float64(n))
	}
	mean, sd := meanStd(lengths)
	report.Mean = mean
	if len(lengths) < MinSentences {
		report.StdDev = DefaultStdDev
		return report
	}
	report.StdDev = sd
	report.IsMetronomic = sd < MetronomicThreshold
	return report
}

func actionSentences(lines []screenplay.Line) []string {
	var out []string
	for _, l := range lines {
		if l.Kind != screenplay.Action {
			continue
		}
		out = append(out, screenplay.Sentences(l.Text)...)
	}
	return out
}

func meanStd(values []float64) (mean, sd float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if len(values) == 1 {
		return mean, 0
	}
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

// rewriteActionLines hands each run of sentences in an action line to fn
// and splices fn's result back over the run's bytes when it reports a
// change. A run only spans sentences separated by whitespace, so anything
// else in the line (a leading "...", a dash between sentences) is kept.
func rewriteActionLines(text string, fn func(sentences []string) ([]string, int)) (string, int) {
	lines := screenplay.Classify(text)
	total := 0
	for i, l := range lines {
		if l.Kind != screenplay.Action {
			continue
		}
		var b strings.Builder
		changed, last := 0, 0
		for _, run := range sentenceRuns(l.Text) {
			sentences := make([]string, len(run))
			for k, sp := range run {
				sentences[k] = l.Text[sp[0]:sp[1]]
			}
			out, n := fn(sentences)
			if n == 0 {
				continue
			}
			start, end := run[0][0], run[len(run)-1][1]
			b.WriteString(l.Text[last:start])
			b.WriteString(strings.Join(out, " "))
			last = end
			changed += n
		}
		if changed == 0 {
			continue
		}
		b.WriteString(l.Text[last:])
		lines[i].Text = b.String()
		total += changed
	}
	if total == 0 {
		return text, 0
	}
	return screenplay.Join(lines), total
}

// sentenceRuns groups the sentence spans of line into runs whose gaps are
// pure whitespace.
func sentenceRuns(line string) [][][2]int {
	var runs [][][2]int
	for _, sp := range screenplay.SentenceSpans(line) {
		if n := len(runs); n > 0 {
			prev := runs[n-1][len(runs[n-1])-1]
			if strings.TrimSpace(line[prev[1]:sp[0]]) == "" {
				runs[n-1] = append(runs[n-1], sp)
				continue
			}
		}
		runs = append(runs, [][2]int{sp})
	}
	return runs
}
