package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"screenpass/internal/config"
	"screenpass/internal/workspace"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the workspace directory",
	Long: `Create the workspace (configs/, projects/, reports/) and a default
settings file. The location is ~/Screenpass unless SCREENPASS_WORKSPACE
is set.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	root, err := ensureWorkspace(cfg)
	if err != nil {
		return fmt.Errorf("workspace initialization failed: %w", err)
	}
	settings, err := workspace.LoadSettings(root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Workspace ready at: %s\n", filepath.Clean(root))
	fmt.Fprintf(out, "Unit size: %d words\n", settings.UnitWords)
	fmt.Fprintf(out, "Seed: %d\n", settings.Seed)
	return nil
}
