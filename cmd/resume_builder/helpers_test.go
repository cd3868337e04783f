package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// sampleSnapshot fills every section the score rewards.
const sampleSnapshot = `{
	"personal": {"fullName": "Jane Doe", "jobTitle": "Backend Engineer", "email": "jane@example.com"},
	"summary": "Builds reliable services.",
	"education": [{"degree": "BSc Computer Science", "school": "TU Delft", "year": "2018"}],
	"experience": [{"title": "Engineer", "company": "Acme", "start": "2019", "end": "Present", "desc": "Ran the API\nOwned billing"}],
	"projects": [{"title": "resume-builder", "tech": "Go"}],
	"certifications": [{"name": "CKA", "org": "CNCF", "year": "2022"}],
	"skills": ["Go", "SQL"],
	"extras": {"languages": "English", "showLanguages": true},
	"selectedTemplate": "modern"
}`

// execute runs the root command in-process and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CHROME_PATH", "")
	t.Setenv("DATABASE_URL", "")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so runs do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// writeTestFile writes content to name under a fresh temp dir.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
