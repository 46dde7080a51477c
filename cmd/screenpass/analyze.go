package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"screenpass/internal/timeline"
)

var analyzeVerbose bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Run the gate over a screenplay without changing anything",
	Long: `Split a screenplay into units and report, for each one, whether the
gate would reject it. Nothing is written to the database or to any project.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&flagUnitWords, "unit-words", 0, "Approximate words per unit (default from config)")
	addCharactersFlag(analyzeCmd)
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print the surgical prompt for rejected units")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	characters, err := loadCharacters(flagCharacters)
	if err != nil {
		return err
	}
	sf, err := loadScreenplay(args[0], cfg, characters)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	rejected := 0
	for i, d := range analyzeScreenplay(cfg, sf) {
		if !d.MustRegenerate {
			fmt.Fprintf(out, "unit %d: ok\n", i+1)
		} else {
			rejected++
			fmt.Fprintf(out, "unit %d: reject (%s)\n", i+1, strings.Join(d.ReasonNames(), ", "))
			if analyzeVerbose {
				fmt.Fprintf(out, "\n%s\n\n", d.SurgicalPrompt)
			}
		}
		for _, note := range d.SoftNotes {
			fmt.Fprintf(out, "  note: %s\n", note)
		}
		if markers := timeline.ExtractMarkers(sf.job.Units[i]); len(markers) > 0 {
			fmt.Fprintf(out, "  time jumps: %s\n", strings.Join(markers, "; "))
		}
	}
	fmt.Fprintf(out, "%s: %d units, %d would be rejected\n", sf.parsed.Title, len(sf.job.Units), rejected)
	return nil
}
