package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"storage": "sqlite",
		"data_dir": "/tmp/resumes",
		"template": "executive",
		"port": 9090,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "sqlite", cfg.Storage)
	assert.Equal(t, "/tmp/resumes", cfg.DataDir)
	assert.Equal(t, "executive", cfg.Template)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
storage = "postgres"
database_url = "postgres://localhost/resume_builder"
storage_key = "my-resume"
template = "minimal"
port = 8081
verbose = true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Storage)
	assert.Equal(t, "postgres://localhost/resume_builder", cfg.DatabaseURL)
	assert.Equal(t, "my-resume", cfg.StorageKey)
	assert.Equal(t, "minimal", cfg.Template)
	assert.Equal(t, 8081, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `storage = `)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config TOML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty", cfg: Config{}},
		{name: "valid", cfg: Config{Storage: "sqlite", Template: "creative", Port: 8080}},
		{name: "unknown storage", cfg: Config{Storage: "redis"}, wantErr: "Storage"},
		{name: "unknown template", cfg: Config{Template: "neon"}, wantErr: "Template"},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: "Port"},
		{name: "postgres without url", cfg: Config{Storage: "postgres"}, wantErr: "database_url"},
		{name: "missing chrome", cfg: Config{ChromePath: "/nonexistent/chrome"}, wantErr: "chrome binary not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Storage:  "file",
		DataDir:  ".resume_builder",
		Template: "modern",
		Port:     8080,
	}

	partial := Config{
		Storage:  "sqlite",
		Template: "executive",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "sqlite", merged.Storage)
	assert.Equal(t, "executive", merged.Template)

	// Default values should fill in empty fields
	assert.Equal(t, ".resume_builder", merged.DataDir)
	assert.Equal(t, 8080, merged.Port)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Storage: "memory", Port: 9000}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "memory", merged.Storage)
	assert.Equal(t, 9000, merged.Port)
	assert.Empty(t, merged.DataDir)
}

func TestDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("CHROME_PATH", "")

	d := Defaults()
	assert.Equal(t, DefaultStorage, d.Storage)
	assert.Equal(t, DefaultDataDir, d.DataDir)
	assert.Equal(t, DefaultTemplate, d.Template)
	assert.Equal(t, DefaultPort, d.Port)
	assert.Equal(t, "postgres://example", d.DatabaseURL)
	assert.Empty(t, d.ChromePath)
	assert.NoError(t, d.Validate())
}
