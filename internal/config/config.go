// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Default settings
const (
	DefaultStorage  = "file"
	DefaultDataDir  = ".resume_builder"
	DefaultTemplate = "modern"
	DefaultPort     = 8080
)

// Config represents the CLI configuration that can be loaded from a JSON or TOML file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Storage
	Storage     string `json:"storage,omitempty" toml:"storage,omitempty" validate:"omitempty,oneof=memory file sqlite postgres"` // Snapshot backend
	DataDir     string `json:"data_dir,omitempty" toml:"data_dir,omitempty"`                                                      // Directory for file and sqlite backends
	DatabaseURL string `json:"database_url,omitempty" toml:"database_url,omitempty"`                                              // PostgreSQL connection URL
	StorageKey  string `json:"storage_key,omitempty" toml:"storage_key,omitempty"`                                                // Snapshot key for local builds

	// Rendering
	Template   string `json:"template,omitempty" toml:"template,omitempty" validate:"omitempty,oneof=modern minimal fresher creative executive"` // Default preview template
	ChromePath string `json:"chrome_path,omitempty" toml:"chrome_path,omitempty"`                                                             // Chrome binary for PDF export

	// Server
	Port int `json:"port,omitempty" toml:"port,omitempty" validate:"omitempty,min=1,max=65535"` // HTTP port

	// Behavior
	Verbose bool `json:"verbose,omitempty" toml:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON or TOML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// It doesn't check for required fields since those depend on the command.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Storage == "postgres" && c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required for postgres storage")
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Storage == "" {
		result.Storage = defaults.Storage
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.StorageKey == "" {
		result.StorageKey = defaults.StorageKey
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Defaults returns the built-in configuration, with DATABASE_URL and
// CHROME_PATH taken from the environment.
func Defaults() Config {
	return Config{
		Storage:     DefaultStorage,
		DataDir:     DefaultDataDir,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Template:    DefaultTemplate,
		ChromePath:  os.Getenv("CHROME_PATH"),
		Port:        DefaultPort,
	}
}
