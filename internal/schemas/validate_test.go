package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateSnapshot(t *testing.T) {
	tests := []struct {
		name      string
		snapshot  string
		wantError bool
	}{
		{name: "empty object", snapshot: `{}`},
		{name: "full document", snapshot: `{
			"personal": {"fullName": "Jane", "email": "jane@example.com"},
			"summary": "Engineer",
			"education": [{"degree": "BSc", "school": "TU"}],
			"experience": [{"title": "Dev", "company": "Acme", "desc": "line1\nline2"}],
			"projects": [{"title": "rb", "link": "https://example.com"}],
			"certifications": [{"name": "CKA", "org": "CNCF", "year": "2022"}],
			"skills": ["Go", "SQL"],
			"extras": {"languages": "English", "showLanguages": true},
			"selectedTemplate": "executive"
		}`},
		{name: "null collections", snapshot: `{"education": null, "skills": null}`},
		{name: "not json", snapshot: `{not json`, wantError: true},
		{name: "array root", snapshot: `[]`, wantError: true},
		{name: "skills wrong type", snapshot: `{"skills": "Go"}`, wantError: true},
		{name: "duplicate skills", snapshot: `{"skills": ["Go", "Go"]}`, wantError: true},
		{name: "entry field wrong type", snapshot: `{"education": [{"degree": 3}]}`, wantError: true},
		{name: "unknown template", snapshot: `{"selectedTemplate": "fancy"}`, wantError: true},
		{name: "visibility flag wrong type", snapshot: `{"extras": {"showHobbies": "yes"}}`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshot([]byte(tt.snapshot))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateSnapshot_ReportsFieldPath(t *testing.T) {
	err := ValidateSnapshot([]byte(`{"experience": [{"title": 1}]}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Errors[0].Field, "experience")
}

func TestValidateSnapshotFile(t *testing.T) {
	dir := t.TempDir()

	valid := writeFile(t, dir, "valid.json", `{"summary": "ok"}`)
	assert.NoError(t, ValidateSnapshotFile(valid))

	invalid := writeFile(t, dir, "invalid.json", `{"summary": 5}`)
	assert.Error(t, ValidateSnapshotFile(invalid))

	err := ValidateSnapshotFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read snapshot")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}
