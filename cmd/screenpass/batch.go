package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"screenpass/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "Process several screenplays in parallel",
	Long: `Process independent screenplays concurrently. Units within one
screenplay are still handled strictly in order. Rejected units are
skipped rather than stopping the screenplay.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	addProcessingFlags(batchCmd)
	batchCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Screenplays processed at once (default one per CPU)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	characters, err := loadCharacters(flagCharacters)
	if err != nil {
		return err
	}

	files := make(map[string]*screenplayFile, len(args))
	jobs := make([]pipeline.Job, 0, len(args))
	for _, path := range args {
		if _, dup := files[path]; dup {
			continue
		}
		sf, err := loadScreenplay(path, cfg, characters)
		if err != nil {
			return err
		}
		files[path] = sf
		jobs = append(jobs, sf.job)
	}

	// Reports go to the terminal one screenplay at a time.
	var mu sync.Mutex
	out := cmd.OutOrStdout()
	errs := pipeline.RunDocuments(jobs, cfg.Workers, func(job pipeline.Job) error {
		sf := files[job.Name]
		var buf strings.Builder
		report, err := processScreenplay(ctx, cfg, store, root, sf, true, &buf)
		mu.Lock()
		defer mu.Unlock()
		io.WriteString(out, buf.String())
		if err != nil {
			slog.Error("screenplay failed", "file", job.Name, "error", err)
			return fmt.Errorf("%s: %w", job.Name, err)
		}
		fmt.Fprintf(out, "%s: %d accepted, %d rejected, %d modifications\n",
			report.Title, report.Accepted, report.Rejected, report.Modifications)
		return nil
	})
	return errors.Join(errs...)
}
