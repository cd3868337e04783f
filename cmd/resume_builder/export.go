package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resume as DOC, HTML or PDF",
	Long: `Renders the resume with its selected template and writes one file per requested
format. Several formats are produced concurrently; PDF needs a Chrome or Chromium binary.`,
	RunE: runExport,
}

var (
	exportInput    string
	exportFormats  string
	exportOutDir   string
	exportTemplate string
)

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "in", "i", "", "Path to a snapshot JSON file (default: the configured storage)")
	exportCmd.Flags().StringVarP(&exportFormats, "format", "f", "doc", "Comma-separated formats: doc, html, pdf")
	exportCmd.Flags().StringVarP(&exportOutDir, "out-dir", "o", ".", "Directory to write the exported files to")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Template to export with instead of the selected one")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}

	formats, err := export.ParseFormats(exportFormats)
	if err != nil {
		return err
	}

	doc, err := loadDocument(cmd.Context(), cfg, exportInput)
	if err != nil {
		return err
	}
	tmpl, err := resolveTemplate(doc.SelectedTemplate, exportTemplate)
	if err != nil {
		return err
	}
	markup, err := rendering.Render(doc, tmpl)
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	exporter := export.NewExporter(export.NewChromeRenderer(cfg.ChromePath, cfg.Verbose), cfg.Verbose)
	artifacts, err := exporter.ExportAll(cmd.Context(), markup, formats)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(exportOutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, a := range artifacts {
		path := filepath.Join(exportOutDir, a.Filename)
		if err := os.WriteFile(path, a.Data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, len(a.Data)) //nolint:errcheck
	}
	return nil
}
