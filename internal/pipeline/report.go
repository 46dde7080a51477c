package pipeline

import (
	"screenpass/internal/aidetect"
	"screenpass/internal/credits"
	"screenpass/internal/gate"
	"screenpass/internal/slop"
)

// LimiterReport is what one credit limiter did to the unit.
type LimiterReport struct {
	Replaced int      `json:"replaced"`
	Warnings []string `json:"warnings,omitempty"`
}

func limiterReport(r credits.Result) LimiterReport {
	return LimiterReport{Replaced: r.Replaced, Warnings: r.Warnings}
}

// FinalScan is the detector picture of the fully cleaned text.
type FinalScan struct {
	Banned     aidetect.Result `json:"banned_phrases"`
	Purple     aidetect.Result `json:"purple_prose"`
	Glue       aidetect.Result `json:"semantic_glue"`
	Generic    aidetect.Result `json:"generic_responses"`
	Repetition aidetect.Result `json:"word_repetition"`
	Artifacts  aidetect.Result `json:"technical_artifacts"`
}

// Report enumerates every metric and modification count of one unit. It
// is diagnostics only; nothing downstream branches on it.
type Report struct {
	Ordinal    int  `json:"ordinal"`
	HardReject bool `json:"hard_reject"`

	Reasons   []gate.Reason `json:"reasons,omitempty"`
	SoftNotes []string      `json:"soft_notes,omitempty"`

	WordsIn  int `json:"words_in"`
	WordsOut int `json:"words_out"`

	VarianceBefore    slop.VarianceReport `json:"variance_before"`
	VarianceAfter     slop.VarianceReport `json:"variance_after"`
	SentencesCombined int                 `json:"sentences_combined"`
	SentencesSplit    int                 `json:"sentences_split"`

	Tics     LimiterReport       `json:"tics"`
	Objects  LimiterReport       `json:"objects"`
	Exits    LimiterReport       `json:"exits"`
	Cooldown []credits.Violation `json:"cooldown_violations,omitempty"`

	Mundanity aidetect.MundanityResult `json:"mundanity"`

	GlueStripped           int `json:"glue_stripped"`
	ArtifactsStripped      int `json:"artifacts_stripped"`
	EllipsesLimited        int `json:"ellipses_limited"`
	SomaticInjected        int `json:"somatic_injected"`
	SummaryEndingsStripped int `json:"summary_endings_stripped"`
	FrictionInjected       int `json:"friction_injected"`
	SensoryInjected        int `json:"sensory_injected"`
	LowercaseFixed         int `json:"lowercase_fixed"`
	EllipsesCapped         int `json:"ellipses_capped"`
	StuttersCapped         int `json:"stutters_capped"`
	GenericReplaced        int `json:"generic_replaced"`

	Final FinalScan `json:"final"`
}

// Modifications sums every change the accepted passes made.
func (r Report) Modifications() int {
	return r.SentencesCombined + r.SentencesSplit + r.Tics.Replaced + r.Objects.Replaced + r.Exits.Replaced +
		len(r.Cooldown) + r.GlueStripped + r.ArtifactsStripped + r.EllipsesLimited + r.SomaticInjected +
		r.SummaryEndingsStripped + r.FrictionInjected + r.SensoryInjected + r.LowercaseFixed +
		r.EllipsesCapped + r.StuttersCapped + r.GenericReplaced
}
