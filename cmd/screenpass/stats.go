package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  `Display how many documents, stored contexts and unit attempts the database holds.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	addDBFlag(statsCmd)
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	counts := map[string]int{}
	for _, table := range []string{"documents", "contexts", "unit_attempts"} {
		n, err := store.CountRows(ctx, table)
		if err != nil {
			return fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
	}
	accepted, rejected, err := store.AttemptCounts(ctx)
	if err != nil {
		return fmt.Errorf("count attempts: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Screenpass Statistics ===")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Database: %s\n", cfg.DatabasePath)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Documents: %d\n", counts["documents"])
	fmt.Fprintf(out, "  With saved context: %d\n", counts["contexts"])
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Unit attempts:")
	fmt.Fprintf(out, "  Total: %d\n", counts["unit_attempts"])
	fmt.Fprintf(out, "  Accepted: %d\n", accepted)
	fmt.Fprintf(out, "  Rejected: %d\n", rejected)
	return nil
}
