package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var processContinue bool

var processCmd = &cobra.Command{
	Use:   "process FILE",
	Short: "Gate and clean a screenplay unit by unit",
	Long: `Split a screenplay into units, run each through the gate and the
correction passes, and store every attempt.

Processing stops at the first rejected unit and prints the surgical
prompt for regenerating it, unless --continue is given.

Examples:
  screenpass process draft.fountain
  screenpass process draft.pdf --seed 7 --unit-words 1800 --continue`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	addProcessingFlags(processCmd)
	processCmd.Flags().BoolVar(&processContinue, "continue", false, "Keep going after a rejected unit")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
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
	sf, err := loadScreenplay(args[0], cfg, characters)
	if err != nil {
		return err
	}
	slog.Info("processing screenplay",
		"title", sf.parsed.Title,
		"units", len(sf.job.Units),
		"characters", len(characters),
		"seed", cfg.Seed,
	)

	report, err := processScreenplay(ctx, cfg, store, root, sf, processContinue || cfg.ContinueOnReject, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d accepted, %d rejected, %d modifications\n",
		report.Title, report.Accepted, report.Rejected, report.Modifications)
	return nil
}
