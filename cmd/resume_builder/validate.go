package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a snapshot file against the resume schema",
	Long:  "Validates a saved snapshot JSON file against the embedded resume document schema and lists every violation.",
	RunE:  runValidate,
}

var validateInput string

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to a snapshot JSON file (required)")
	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	printer := observability.NewPrinter(cmd.OutOrStdout())

	err := schemas.ValidateSnapshotFile(validateInput)
	if err == nil {
		printer.PrintValidation(validateInput, nil)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		printer.PrintValidation(validateInput, validationErr)
		return fmt.Errorf("snapshot %s has %d schema violations", validateInput, len(validationErr.Errors))
	}
	return fmt.Errorf("failed to validate snapshot: %w", err)
}
