// Package schemas provides JSON Schema validation for persisted resume snapshots.
package schemas

import (
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/resume-builder/schemas"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// snapshotSchema is compiled once from the embedded schema file
var snapshotSchema, snapshotSchemaErr = gojsonschema.NewSchema(
	gojsonschema.NewStringLoader(schemafiles.ResumeDocument),
)

// ValidateSnapshot validates raw snapshot bytes against the resume document schema.
// Malformed JSON is reported as a ValidationError at the root.
func ValidateSnapshot(data []byte) error {
	if snapshotSchemaErr != nil {
		return &SchemaLoadError{
			Path:    schemafiles.ResumeDocumentFile,
			Message: "embedded schema is invalid",
			Cause:   snapshotSchemaErr,
		}
	}

	result, err := snapshotSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &ValidationError{
			Errors: []FieldError{{Field: "(root)", Message: err.Error()}},
		}
	}
	return toValidationError(result)
}

// ValidateSnapshotFile validates a snapshot file against the resume document schema
func ValidateSnapshotFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	return ValidateSnapshot(data)
}

// toValidationError converts a gojsonschema result into a structured error, or nil when valid
func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
