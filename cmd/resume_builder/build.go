package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/tui"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fill in the resume interactively",
	Long: `Open the interactive builder in the terminal. Every edit is saved as you type,
so quitting and running build again picks up where you left off.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session, backend, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close() //nolint:errcheck

	if err := tui.Run(ctx, session); err != nil {
		return fmt.Errorf("builder failed: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.OutOrStdout())
		printer.PrintSteps(session.StepStates())
		printer.PrintDocument(session.Document())
		printer.PrintScore(session.Score())
	}
	return nil
}
