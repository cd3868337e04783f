package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the resume preview as HTML",
	Long: `Renders the saved resume (or a snapshot file) into preview markup. With --watch the
snapshot is re-rendered every time it changes on disk.`,
	RunE: runRender,
}

var (
	renderInput    string
	renderOutput   string
	renderTemplate string
	renderWatch    bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to a snapshot JSON file (default: the configured storage)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to write the HTML to (default: stdout)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template to render with instead of the selected one")
	renderCmd.Flags().BoolVarP(&renderWatch, "watch", "w", false, "Re-render whenever the snapshot file changes")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}

	render := func(ctx context.Context) error {
		doc, err := loadDocument(ctx, cfg, renderInput)
		if err != nil {
			return err
		}
		return renderDocument(cmd.OutOrStdout(), doc, renderTemplate, renderOutput, cfg.Verbose)
	}

	if err := render(cmd.Context()); err != nil {
		return err
	}
	if !renderWatch {
		return nil
	}

	path, err := watchedSnapshot(cfg, renderInput)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("[render] watching %s", path)
	return watchSnapshot(ctx, path, func() error {
		return render(ctx)
	})
}

// resolveTemplate returns the override when one is given, else the selection.
func resolveTemplate(selected types.Template, override string) (types.Template, error) {
	if override == "" {
		return selected.OrDefault(), nil
	}
	tmpl, ok := types.ParseTemplate(override)
	if !ok {
		return "", &builder.ErrUnknownTemplate{Template: override}
	}
	return tmpl, nil
}

// renderDocument writes the preview markup to outPath, or to w when outPath is empty.
func renderDocument(w io.Writer, doc types.ResumeDocument, override, outPath string, verbose bool) error {
	tmpl, err := resolveTemplate(doc.SelectedTemplate, override)
	if err != nil {
		return err
	}
	markup, err := rendering.Render(doc, tmpl)
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	if outPath == "" {
		_, err = fmt.Fprintln(w, string(markup))
		return err
	}
	if err := os.WriteFile(outPath, []byte(markup), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	if verbose {
		outline, err := rendering.ExtractOutline(markup)
		if err != nil {
			return err
		}
		observability.NewPrinter(w).PrintOutline(outline)
	}
	log.Printf("[render] wrote %s (%s)", outPath, tmpl)
	return nil
}

// watchedSnapshot returns the file that holds the snapshot being rendered.
func watchedSnapshot(cfg config.Config, input string) (string, error) {
	if input != "" {
		return filepath.Abs(input)
	}
	if cfg.Storage != storage.KindFile {
		return "", fmt.Errorf("--watch needs --in or file storage, got %s storage", cfg.Storage)
	}
	backend, err := storage.NewFile(cfg.DataDir)
	if err != nil {
		return "", err
	}
	defer backend.Close() //nolint:errcheck
	return filepath.Abs(backend.Path(storeKey(cfg)))
}

// watchSnapshot calls onChange whenever path is written or replaced, until
// ctx is done. Failed re-renders are logged and watching continues.
func watchSnapshot(ctx context.Context, path string, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	// Watch the directory: editors and the file backend replace the file by rename
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := onChange(); err != nil {
				log.Printf("[render] re-render failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[render] watch error: %v", err)
		}
	}
}
