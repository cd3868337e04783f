package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/types"
)

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"build", "serve", "render", "score", "export", "validate"} {
		assert.Contains(t, names, want)
	}
}

func TestScoreCommand_FromSnapshotFile(t *testing.T) {
	in := writeTestFile(t, "resume.json", sampleSnapshot)

	out, err := execute(t, "score", "--in", in)

	require.NoError(t, err)
	assert.Contains(t, out, "ATS SCORE")
	assert.Contains(t, out, "Score:  100 / 100")
	assert.Contains(t, out, "well-optimized")
}

func TestScoreCommand_EmptyStorageJSON(t *testing.T) {
	out, err := execute(t, "score", "--storage", "memory", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"score": 50`)
	assert.Contains(t, out, `"tier": "needs-more-sections"`)
}

func TestScoreCommand_InvalidSnapshot(t *testing.T) {
	in := writeTestFile(t, "resume.json", `{"skills": ["Go", "Go"]}`)

	_, err := execute(t, "score", "--in", in)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "is invalid")
}

func TestScoreCommand_MalformedSnapshot(t *testing.T) {
	in := writeTestFile(t, "resume.json", `{not json`)

	_, err := execute(t, "score", "--in", in)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "is malformed")
}

func TestRenderCommand_Stdout(t *testing.T) {
	in := writeTestFile(t, "resume.json", sampleSnapshot)

	out, err := execute(t, "render", "--in", in, "--template", "creative")

	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "TU Delft")
}

func TestRenderCommand_UnknownTemplate(t *testing.T) {
	in := writeTestFile(t, "resume.json", sampleSnapshot)

	_, err := execute(t, "render", "--in", in, "--template", "neon")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template: neon")
}

func TestRenderCommand_VerboseFileOutput(t *testing.T) {
	in := writeTestFile(t, "resume.json", sampleSnapshot)
	outPath := filepath.Join(t.TempDir(), "preview.html")

	out, err := execute(t, "render", "--in", in, "--out", outPath, "--verbose")

	require.NoError(t, err)
	assert.Contains(t, out, "PREVIEW OUTLINE")

	html, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Jane Doe")
}

func TestRenderCommand_WatchNeedsFile(t *testing.T) {
	_, err := execute(t, "render", "--storage", "memory", "--watch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch needs --in or file storage")
}

func TestExportCommand_DocAndHTML(t *testing.T) {
	in := writeTestFile(t, "resume.json", sampleSnapshot)
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, "export", "--in", in, "--format", "doc,html", "--out-dir", outDir)

	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	doc, err := os.ReadFile(filepath.Join(outDir, "resume.doc"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "Jane Doe")

	page, err := os.ReadFile(filepath.Join(outDir, "resume.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<!DOCTYPE html>")
}

func TestExportCommand_UnsupportedFormat(t *testing.T) {
	_, err := execute(t, "export", "--storage", "memory", "--format", "docx")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		in := writeTestFile(t, "resume.json", sampleSnapshot)

		out, err := execute(t, "validate", "--in", in)

		require.NoError(t, err)
		assert.Contains(t, out, "VALID SNAPSHOT")
	})

	t.Run("violations", func(t *testing.T) {
		in := writeTestFile(t, "resume.json", `{"skills": "Go", "selectedTemplate": "fancy"}`)

		out, err := execute(t, "validate", "--in", in)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema violations")
		assert.Contains(t, out, "SCHEMA VIOLATIONS")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "validate", "--in", filepath.Join(t.TempDir(), "nope.json"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to validate snapshot")
	})

	t.Run("missing flag", func(t *testing.T) {
		_, err := execute(t, "validate")

		require.Error(t, err)
		assert.Contains(t, err.Error(), `required flag(s) "in" not set`)
	})
}

func TestServeCommand_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := execute(t, "serve", "--storage", "memory", "--port", "0")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create server")
}

func TestSettings_ConfigFileAndStorage(t *testing.T) {
	dataDir := t.TempDir()
	cfgPath := writeTestFile(t, "config.toml", "storage = \"file\"\ndata_dir = \""+dataDir+"\"\n")

	cfg := config.Config{Storage: "file", DataDir: dataDir}
	session, backend, err := openSession(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, session.SetField(context.Background(), builder.FieldFullName, "Jane"))
	require.NoError(t, backend.Close())

	out, err := execute(t, "score", "--config", cfgPath)

	require.NoError(t, err)
	assert.Contains(t, out, "Score:  55 / 100")
}

func TestSettings_FlagsOverrideConfig(t *testing.T) {
	// postgres without a URL only validates once the flag replaces it
	cfgPath := writeTestFile(t, "config.json", `{"storage": "postgres"}`)

	_, err := execute(t, "score", "--config", cfgPath, "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database_url")

	out, err := execute(t, "score", "--config", cfgPath, "--storage", "memory", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"score": 50`)
}

func TestSettings_BadConfigFile(t *testing.T) {
	_, err := execute(t, "score", "--config", filepath.Join(t.TempDir(), "missing.toml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestOpenSession_NewDocumentUsesConfiguredTemplate(t *testing.T) {
	cfg := config.Config{Storage: "memory", Template: "executive"}

	session, backend, err := openSession(context.Background(), cfg)
	require.NoError(t, err)
	defer backend.Close() //nolint:errcheck

	assert.Equal(t, types.TemplateExecutive, session.Document().SelectedTemplate)
}

func TestOpenSession_RestoredDocumentKeepsTemplate(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "resumeBuilderData.json"), []byte(sampleSnapshot), 0644))

	cfg := config.Config{Storage: "file", DataDir: dataDir, Template: "executive"}
	session, backend, err := openSession(context.Background(), cfg)
	require.NoError(t, err)
	defer backend.Close() //nolint:errcheck

	assert.Equal(t, types.TemplateModern, session.Document().SelectedTemplate)
	assert.Equal(t, "Jane Doe", session.Document().Personal.FullName)
}

func TestResolveTemplate(t *testing.T) {
	tmpl, err := resolveTemplate("", "")
	require.NoError(t, err)
	assert.Equal(t, types.DefaultTemplate, tmpl)

	tmpl, err = resolveTemplate(types.TemplateMinimal, "")
	require.NoError(t, err)
	assert.Equal(t, types.TemplateMinimal, tmpl)

	tmpl, err = resolveTemplate(types.TemplateMinimal, "fresher")
	require.NoError(t, err)
	assert.Equal(t, types.TemplateFresher, tmpl)

	_, err = resolveTemplate(types.TemplateMinimal, "neon")
	var unknown *builder.ErrUnknownTemplate
	assert.ErrorAs(t, err, &unknown)
}

func TestWatchedSnapshot(t *testing.T) {
	dir := t.TempDir()

	path, err := watchedSnapshot(config.Config{Storage: "file", DataDir: dir}, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "resumeBuilderData.json"), path)

	path, err = watchedSnapshot(config.Config{Storage: "memory"}, "resume.json")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))

	_, err = watchedSnapshot(config.Config{Storage: "sqlite"}, "")
	assert.Error(t, err)
}

func TestWatchSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- watchSnapshot(ctx, path, func() error {
			select {
			case changed <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// Keep writing until the watcher is up and reports the change
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
wait:
	for {
		select {
		case <-changed:
			break wait
		case <-ticker.C:
			require.NoError(t, os.WriteFile(path, []byte(sampleSnapshot), 0644))
		case <-deadline:
			t.Fatal("watcher did not report the change")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
