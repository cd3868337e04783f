// Package rendering renders the live resume preview as HTML markup.
package rendering

import (
	"fmt"
	"strings"
)

// Stage names the rendering pass that failed.
type Stage string

// Rendering passes
const (
	StageBase      Stage = "base"
	StageTransform Stage = "transform"
	StageOutline   Stage = "outline"
)

// RenderError reports a failure in one rendering pass. Template is empty for
// passes that do not depend on the selected template.
type RenderError struct {
	Stage    Stage
	Template string
	Message  string
	Cause    error
}

func (e *RenderError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s render failed", e.Stage)
	if e.Template != "" {
		fmt.Fprintf(&sb, " (%s)", e.Template)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
