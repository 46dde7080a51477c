package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"screenpass/internal/chunk"
	"screenpass/internal/config"
	"screenpass/internal/db"
	"screenpass/internal/gate"
	"screenpass/internal/ingest"
	"screenpass/internal/pipeline"
	"screenpass/internal/story"
	"screenpass/internal/workspace"
)

// screenplayFile is a parsed source together with its processing job.
type screenplayFile struct {
	parsed *ingest.Parsed
	job    pipeline.Job
}

func loadScreenplay(path string, cfg *config.Config, characters []story.CharacterProfile) (*screenplayFile, error) {
	parsed, err := ingest.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	segments := chunk.Units(parsed.Text, cfg.UnitWords)
	if len(segments) == 0 {
		return nil, fmt.Errorf("parse %s: no screenplay text", path)
	}
	units := make([]string, len(segments))
	for i, s := range segments {
		units[i] = s.Text
	}
	return &screenplayFile{
		parsed: parsed,
		job:    pipeline.Job{Name: path, Units: units, Characters: characters, Seed: cfg.Seed},
	}, nil
}

// processScreenplay runs every unit of one screenplay through a Document,
// records each attempt and writes the project report and output. It stops
// at the first hard reject unless continueOnReject is set, in which case
// the rejected unit is left out of the output.
func processScreenplay(ctx context.Context, cfg *config.Config, store *db.Store, root string, sf *screenplayFile, continueOnReject bool, out io.Writer) (workspace.Report, error) {
	title := sf.parsed.Title
	logger := slog.Default().With("document", title)

	project, err := workspace.CreateProjectWithSource(root, title, filepath.Base(sf.parsed.SourcePath), sf.parsed.SourceBytes)
	if err != nil {
		return workspace.Report{}, err
	}
	docID, err := store.CreateDocument(ctx, title, sf.parsed.SourcePath)
	if err != nil {
		return workspace.Report{}, err
	}

	processor := pipeline.NewProcessor(cfg.Pipeline, logger)
	doc := pipeline.NewDocument(processor, pipeline.NewRand(sf.job.Seed), sf.job.Characters)

	report := workspace.Report{Title: title, DocumentID: docID, Units: []workspace.UnitSummary{}}
	var accepted []string
	for _, unit := range sf.job.Units {
		ordinal := doc.Ordinal()
		res := doc.Submit(unit)

		attempt := db.Attempt{
			DocumentID:     docID,
			Ordinal:        ordinal,
			Accepted:       !res.HardReject,
			SurgicalPrompt: res.SurgicalPrompt,
			Content:        res.Content,
			Report:         res.Report,
		}
		for _, r := range res.Report.Reasons {
			attempt.Reasons = append(attempt.Reasons, r.Detector)
		}
		if !res.HardReject {
			attempt.Context = res.Context
			attempt.NextOrdinal = doc.Ordinal()
		}
		if err := store.RecordAttempt(ctx, attempt); err != nil {
			return report, err
		}

		report.WordCount += res.Report.WordsIn
		report.Units = append(report.Units, unitSummary(ordinal, res))
		if !res.HardReject {
			report.Accepted++
			report.Modifications += res.Report.Modifications()
			accepted = append(accepted, strings.TrimRight(res.Content, "\n"))
			continue
		}

		report.Rejected++
		fmt.Fprintf(out, "%s: unit %d rejected (%s)\n\n%s\n\n", title, ordinal, strings.Join(attempt.Reasons, ", "), res.SurgicalPrompt)
		if !continueOnReject {
			break
		}
		doc.Skip()
	}

	if len(accepted) > 0 {
		path, err := project.SaveOutput(strings.Join(accepted, "\n\n") + "\n")
		if err != nil {
			return report, err
		}
		logger.Info("wrote output", "path", path)
	}
	if err := workspace.SaveReport(project.ReportPath, report); err != nil {
		return report, err
	}
	if err := workspace.SaveHTML(project.HTMLPath, report); err != nil {
		return report, err
	}
	return report, nil
}

func unitSummary(ordinal int, res pipeline.Output) workspace.UnitSummary {
	s := workspace.UnitSummary{Ordinal: ordinal, Accepted: !res.HardReject}
	for _, r := range res.Report.Reasons {
		s.Reasons = append(s.Reasons, r.Detector)
	}
	if res.HardReject {
		return s
	}
	s.Modifications = res.Report.Modifications()
	s.Warnings = append(s.Warnings, res.Report.Tics.Warnings...)
	s.Warnings = append(s.Warnings, res.Report.Objects.Warnings...)
	s.Warnings = append(s.Warnings, res.Report.Exits.Warnings...)
	for _, v := range res.Report.Cooldown {
		s.Warnings = append(s.Warnings, fmt.Sprintf("%s reused after %d words (needs %d)", v.Prop, v.Distance, v.Required))
	}
	s.Warnings = append(s.Warnings, res.Report.SoftNotes...)
	return s
}

// analyzeScreenplay runs only the gate over each unit, treating every
// earlier unit as accepted for loop detection.
func analyzeScreenplay(cfg *config.Config, sf *screenplayFile) []gate.Decision {
	g := gate.NewGate(cfg.Pipeline.Detectors)
	decisions := make([]gate.Decision, 0, len(sf.job.Units))
	var summaries []string
	for i, unit := range sf.job.Units {
		ordinal := i + 1
		decisions = append(decisions, g.Evaluate(gate.Input{
			Text:           unit,
			Ordinal:        ordinal,
			PriorSummaries: summaries,
			Characters:     sf.job.Characters,
		}))
		summaries = append(summaries, pipeline.Summarize(ordinal, unit))
	}
	return decisions
}
