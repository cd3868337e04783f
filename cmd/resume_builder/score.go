package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/observability"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Estimate the ATS score of a resume",
	Long:  "Scores the saved resume (or a snapshot file) with the ATS heuristic and prints the tier and guidance.",
	RunE:  runScore,
}

var (
	scoreInput string
	scoreJSON  bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreInput, "in", "i", "", "Path to a snapshot JSON file (default: the configured storage)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}

	doc, err := loadDocument(cmd.Context(), cfg, scoreInput)
	if err != nil {
		return err
	}
	result := ats.Evaluate(doc)

	if scoreJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal score: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if cfg.Verbose {
		printer.PrintDocument(doc)
	}
	printer.PrintScore(result)
	return nil
}
