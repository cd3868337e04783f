package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	configPath  string
	verbose     bool
	storageKind string
	dataDir     string
	storageKey  string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a JSON or TOML config file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print detailed progress information")
	flags.StringVar(&storageKind, "storage", "", "Snapshot backend: memory, file, sqlite or postgres")
	flags.StringVar(&dataDir, "data-dir", "", "Directory for the file and sqlite backends")
	flags.StringVar(&storageKey, "key", "", "Snapshot key to build, render or export")
}

// settings resolves the effective configuration. Flags win over the config
// file, which wins over the built-in defaults.
func settings(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("storage") {
		cfg.Storage = storageKind
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("key") {
		cfg.StorageKey = storageKey
	}
	if verbose {
		cfg.Verbose = true
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	if merged.Verbose {
		log.Printf("[config] storage=%s data_dir=%s template=%s", merged.Storage, merged.DataDir, merged.Template)
	}
	return merged, nil
}

func storageOptions(cfg config.Config) storage.Options {
	return storage.Options{
		Kind:        cfg.Storage,
		DataDir:     cfg.DataDir,
		DatabaseURL: cfg.DatabaseURL,
	}
}

// openSession opens the configured backend and rehydrates the session saved
// under the configured key. A new document starts on the configured template.
func openSession(ctx context.Context, cfg config.Config) (*builder.Session, storage.Storage, error) {
	backend, err := storage.Open(ctx, storageOptions(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	session := builder.New(store.New(backend, storeKey(cfg)))
	result := session.Open(ctx)
	if cfg.Verbose {
		log.Printf("[builder] snapshot %s", result.Status)
	}
	if !result.Restored() && cfg.Template != "" {
		if err := session.SelectTemplate(ctx, cfg.Template); err != nil {
			backend.Close() //nolint:errcheck
			return nil, nil, err
		}
	}
	return session, backend, nil
}

// loadDocument reads the document from a snapshot file when path is set and
// from the configured backend otherwise.
func loadDocument(ctx context.Context, cfg config.Config, path string) (types.ResumeDocument, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return types.ResumeDocument{}, fmt.Errorf("failed to read snapshot file: %w", err)
		}
		doc, status, err := store.Decode(data)
		if err != nil {
			return types.ResumeDocument{}, fmt.Errorf("snapshot %s is %s: %w", path, status, err)
		}
		return doc, nil
	}

	backend, err := storage.Open(ctx, storageOptions(cfg))
	if err != nil {
		return types.ResumeDocument{}, fmt.Errorf("failed to open storage: %w", err)
	}
	defer backend.Close() //nolint:errcheck

	st := store.New(backend, storeKey(cfg))
	result := st.Load(ctx)
	switch {
	case result.Restored():
	case result.Status == store.LoadMissing:
		if cfg.Verbose {
			log.Printf("[store] no snapshot under %q, using an empty document", st.Key())
		}
	default:
		return types.ResumeDocument{}, fmt.Errorf("snapshot %q is %s: %w", st.Key(), result.Status, result.Err)
	}
	return st.Get(), nil
}

// storeKey is the snapshot key the configured session is saved under.
func storeKey(cfg config.Config) string {
	if cfg.StorageKey == "" {
		return store.DefaultKey
	}
	return cfg.StorageKey
}
