// Package pipeline runs a generated screenplay unit through the gate and,
// if it passes, through every corrective pass in a fixed order.
package pipeline

import (
	"log/slog"
	"math/rand/v2"

	"screenpass/internal/aidetect"
	"screenpass/internal/cleanup"
	"screenpass/internal/credits"
	"screenpass/internal/gate"
	"screenpass/internal/inject"
	"screenpass/internal/screenplay"
	"screenpass/internal/slop"
	"screenpass/internal/story"
)

// Input is one generation attempt for the unit at Ordinal (1-based).
type Input struct {
	Text           string
	Context        story.PersistentContext
	Ordinal        int
	PriorSummaries []string
	Characters     []story.CharacterProfile
}

// Output of a hard-rejected unit carries the input text and the input
// context untouched.
type Output struct {
	Content        string                  `json:"content"`
	Context        story.PersistentContext `json:"context"`
	HardReject     bool                    `json:"hard_reject"`
	SurgicalPrompt string                  `json:"surgical_prompt,omitempty"`
	Report         Report                  `json:"report"`
}

// Options configure a single ProcessUnit call. A nil Rand is replaced by a
// PCG source seeded with Seed; a nil Logger by slog.Default().
type Options struct {
	Config Config
	Rand   inject.Rand
	Seed   uint64
	Logger *slog.Logger
}

// Processor holds what stays fixed across units: thresholds, the gate and
// the logger. It keeps no per-document state and is safe to share.
type Processor struct {
	config Config
	gate   *gate.Gate
	logger *slog.Logger
}

func NewProcessor(config Config, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		config: config,
		gate:   gate.NewGate(config.Detectors),
		logger: logger,
	}
}

// NewRand returns the deterministic source used when a caller only has a
// seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// ProcessUnit is a one-shot Processor call.
func ProcessUnit(in Input, opts Options) Output {
	rng := opts.Rand
	if rng == nil {
		rng = NewRand(opts.Seed)
	}
	return NewProcessor(opts.Config, opts.Logger).Process(in, rng)
}

// Process gates the unit and, when it is accepted, runs every pass in
// order: variance analysis and correction, the three credit limiters,
// prop cooldown, the mundanity report, extreme variance, glue and artifact
// stripping, the per-line ellipsis limit, somatic markers, summary endings,
// verbal friction, sensory detail, lowercase fixes, the ellipsis cap, the
// stutter cap, generic responses and finally the reporting scans.
func (p *Processor) Process(in Input, rng inject.Rand) Output {
	cfg := p.config
	log := p.logger.With("ordinal", in.Ordinal)

	decision := p.gate.Evaluate(gate.Input{
		Text:           in.Text,
		Ordinal:        in.Ordinal,
		PriorSummaries: in.PriorSummaries,
		Characters:     in.Characters,
	})
	report := Report{
		Ordinal:   in.Ordinal,
		Reasons:   decision.Reasons,
		SoftNotes: decision.SoftNotes,
		WordsIn:   screenplay.FieldCount(in.Text),
	}
	if decision.MustRegenerate {
		report.HardReject = true
		report.WordsOut = report.WordsIn
		log.Info("unit rejected", "stage", "gate", "hard_reject", true, "reasons", decision.ReasonNames())
		return Output{
			Content:        in.Text,
			Context:        in.Context,
			HardReject:     true,
			SurgicalPrompt: decision.SurgicalPrompt,
			Report:         report,
		}
	}

	text := in.Text
	ctx := in.Context.Clone()
	pass := func(stage string, changes int) {
		log.Debug("pass done", "stage", stage, "changes", changes)
	}

	report.VarianceBefore = slop.AnalyzeVariance(text)
	pass("variance_analysis", 0)
	if report.VarianceBefore.IsMetronomic {
		text, report.SentencesCombined = slop.EnforceSentenceVariance(text)
	}
	pass("variance_correction", report.SentencesCombined)

	tics := credits.LimitTics(text, ctx.TicCredits, cfg.TicMax)
	text, ctx.TicCredits, report.Tics = tics.Text, tics.Credits, limiterReport(tics)
	pass("tic_limiter", tics.Replaced)

	objects := credits.LimitObjects(text, ctx.ObjectCredits, cfg.ObjectMax)
	text, ctx.ObjectCredits, report.Objects = objects.Text, objects.Credits, limiterReport(objects)
	pass("object_limiter", objects.Replaced)

	exits := credits.LimitExits(text, ctx.ExitCredits, cfg.ExitMax)
	text, ctx.ExitCredits, report.Exits = exits.Text, exits.Credits, limiterReport(exits)
	pass("exit_limiter", exits.Replaced)

	cool := credits.EnforceCooldown(text, ctx.PropLastPosition, ctx.TotalWordCount, cfg.CooldownWords, credits.PropRules)
	text, ctx.PropLastPosition, ctx.TotalWordCount, report.Cooldown = cool.Text, cool.Positions, cool.WordCount, cool.Violations
	pass("cooldown", len(cool.Violations))

	report.Mundanity = aidetect.Mundanity(aidetect.NewUnit(text), cfg.Detectors)
	pass("mundanity", 0)

	text, report.SentencesSplit = slop.ExtremeVariance(text, rng)
	pass("extreme_variance", report.SentencesSplit)

	text, report.GlueStripped = cleanup.StripSemanticGlue(text)
	pass("glue_strip", report.GlueStripped)

	text, report.ArtifactsStripped = cleanup.StripArtifacts(text)
	pass("artifact_strip", report.ArtifactsStripped)

	text, report.EllipsesLimited = cleanup.LimitEllipsesPerLine(text, cfg.EllipsesPerLine)
	pass("ellipsis_limit", report.EllipsesLimited)

	text, report.SomaticInjected = inject.Somatic(text, rng, cfg.SomaticMax)
	pass("somatic", report.SomaticInjected)

	text, report.SummaryEndingsStripped = cleanup.StripSummaryEndings(text)
	pass("summary_endings", report.SummaryEndingsStripped)

	text, report.FrictionInjected = inject.Friction(text, rng, cfg.FrictionProbability, cfg.FrictionMax)
	pass("friction", report.FrictionInjected)

	text, report.SensoryInjected = inject.Sensory(text, rng, cfg.SensoryTarget, cfg.SensoryMax)
	pass("sensory", report.SensoryInjected)

	text, report.LowercaseFixed = cleanup.FixLowercaseAfterSentence(text)
	pass("lowercase_fix", report.LowercaseFixed)

	text, report.EllipsesCapped = cleanup.CapEllipses(text, cfg.EllipsisCap)
	pass("ellipsis_cap", report.EllipsesCapped)

	text, report.StuttersCapped = cleanup.CapStutters(text, cfg.StutterCap)
	pass("stutter_cap", report.StuttersCapped)

	text, report.GenericReplaced = cleanup.ReplaceGenericResponses(text, cfg.GenericResponseCap)
	pass("generic_responses", report.GenericReplaced)

	report.VarianceAfter = slop.AnalyzeVariance(text)
	report.Final = finalScan(text, cfg.Detectors)
	report.WordsOut = screenplay.FieldCount(text)
	// the next unit's offsets count the words actually delivered
	ctx.TotalWordCount = in.Context.TotalWordCount + report.WordsOut
	pass("final_scan", 0)

	log.Info("unit accepted", "stage", "pipeline", "hard_reject", false, "modifications", report.Modifications())
	return Output{Content: text, Context: ctx, Report: report}
}

func finalScan(text string, cfg aidetect.Config) FinalScan {
	u := aidetect.NewUnit(text)
	return FinalScan{
		Banned:     aidetect.BannedPhrases(u, cfg),
		Purple:     aidetect.PurpleProse(u, cfg),
		Glue:       aidetect.SemanticGlue(u, cfg),
		Generic:    aidetect.GenericResponses(u, cfg),
		Repetition: aidetect.WordRepetition(u, cfg),
		Artifacts:  aidetect.TechnicalArtifacts(u, cfg),
	}
}
