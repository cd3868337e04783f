package storage

import "fmt"

// Error represents a backend failure
type Error struct {
	Op      string
	Key     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	prefix := "storage " + e.Op
	if e.Key != "" {
		prefix = fmt.Sprintf("storage %s %q", e.Op, e.Key)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrClosed is returned by backends used after Close.
var ErrClosed = &Error{Op: "use", Message: "storage is closed"}
