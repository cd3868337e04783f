// Package main provides the resume_builder CLI: the interactive builder, the
// HTTP API server and batch commands over saved snapshots.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Step-by-step resume builder",
	Long: "Resume Builder walks through an eight-step form, keeps a live preview in one of five templates, " +
		"estimates an ATS score and exports the result as DOC, HTML or PDF.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
