package export

import "fmt"

// ExportError represents a failure producing one export format
type ExportError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export %s: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("export %s: %s", e.Format, e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// ErrUnsupportedFormat indicates an export format that does not exist
type ErrUnsupportedFormat struct {
	Format string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported export format: %s", e.Format)
}
