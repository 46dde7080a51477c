package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"screenpass/internal/config"
	"screenpass/internal/db"
	"screenpass/internal/workspace"
)

// Flags shared by the commands that process screenplays.
var (
	flagSeed      uint64
	flagUnitWords int
	flagDB        string
	flagWorkers   int
)

func addProcessingFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&flagSeed, "seed", 0, "Seed for the injection passes (default from config)")
	cmd.Flags().IntVar(&flagUnitWords, "unit-words", 0, "Approximate words per unit (default from config)")
	addDBFlag(cmd)
	addCharactersFlag(cmd)
}

func addCharactersFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagCharacters, "characters", "", "JSON file of character profiles (name, role, archetype, voice_traits)")
}

func addDBFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDB, "db", "", "Path to the sqlite database (default from config)")
}

// loadConfig reads the environment, lets workspace settings fill in what
// the environment leaves unset, then applies any flags the user passed.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}

	root, err := ensureWorkspace(cfg)
	if err != nil {
		return nil, "", err
	}
	settings, err := workspace.LoadSettings(root)
	if err != nil {
		return nil, "", err
	}
	if _, ok := os.LookupEnv("SCREENPASS_SEED"); !ok && settings.Seed != 0 {
		cfg.Seed = settings.Seed
	}
	if _, ok := os.LookupEnv("SCREENPASS_UNIT_WORDS"); !ok && settings.UnitWords > 0 {
		cfg.UnitWords = settings.UnitWords
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("unit-words") {
		cfg.UnitWords = flagUnitWords
	}
	if flags.Changed("db") {
		cfg.DatabasePath = flagDB
	}
	if flags.Changed("workers") {
		cfg.Workers = flagWorkers
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("validate config: %w", err)
	}
	return cfg, root, nil
}

func ensureWorkspace(cfg *config.Config) (string, error) {
	if cfg.WorkspacePath != "" {
		return workspace.EnsureAt(cfg.WorkspacePath)
	}
	return workspace.EnsureDefault()
}

func openStore(ctx context.Context, cfg *config.Config) (*db.Store, error) {
	store, err := db.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return store, nil
}
