// Package export turns preview markup into downloadable documents. Markup is
// treated as opaque: exports never read or change builder state.
package export

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/rendering"
)

// Format is an export target.
type Format string

// Supported formats
const (
	FormatDOC  Format = "doc"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatDOC, FormatHTML, FormatPDF}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", &ErrUnsupportedFormat{Format: s}
}

// ParseFormats parses a comma-separated format list, dropping duplicates.
func ParseFormats(list string) ([]Format, error) {
	var formats []Format
	seen := map[Format]bool{}
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, &ErrUnsupportedFormat{Format: list}
	}
	return formats, nil
}

// Artifact is one exported file.
type Artifact struct {
	Format      Format
	Filename    string
	ContentType string
	Data        []byte
}

// PDFRenderer prints a standalone HTML page to PDF.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// Exporter produces export artifacts. A nil PDF renderer disables PDF export.
type Exporter struct {
	pdf     PDFRenderer
	verbose bool
}

// NewExporter creates an exporter.
func NewExporter(pdf PDFRenderer, verbose bool) *Exporter {
	return &Exporter{pdf: pdf, verbose: verbose}
}

// Export produces a single format.
func (e *Exporter) Export(ctx context.Context, markup rendering.Markup, format Format) (*Artifact, error) {
	switch format {
	case FormatDOC:
		data, err := WordDocument(markup)
		if err != nil {
			return nil, &ExportError{Format: format, Message: "failed to build document", Cause: err}
		}
		return &Artifact{Format: format, Filename: "resume.doc", ContentType: "application/msword", Data: data}, nil

	case FormatHTML:
		data, err := PrintPage(markup)
		if err != nil {
			return nil, &ExportError{Format: format, Message: "failed to build page", Cause: err}
		}
		return &Artifact{Format: format, Filename: "resume.html", ContentType: "text/html; charset=utf-8", Data: data}, nil

	case FormatPDF:
		if e.pdf == nil {
			return nil, &ExportError{Format: format, Message: "no PDF renderer configured"}
		}
		pageHTML, err := PrintPage(markup)
		if err != nil {
			return nil, &ExportError{Format: format, Message: "failed to build page", Cause: err}
		}
		if e.verbose {
			log.Printf("[export] printing %d bytes of HTML to PDF", len(pageHTML))
		}
		data, err := e.pdf.RenderPDF(ctx, string(pageHTML))
		if err != nil {
			return nil, &ExportError{Format: format, Message: "failed to print PDF", Cause: err}
		}
		return &Artifact{Format: format, Filename: "resume.pdf", ContentType: "application/pdf", Data: data}, nil
	}
	return nil, &ErrUnsupportedFormat{Format: string(format)}
}

// ExportAll produces several formats concurrently. Artifacts come back in the
// order the formats were requested; the first failure cancels the rest.
func (e *Exporter) ExportAll(ctx context.Context, markup rendering.Markup, formats []Format) ([]*Artifact, error) {
	artifacts := make([]*Artifact, len(formats))
	g, gCtx := errgroup.WithContext(ctx)

	for i, format := range formats {
		g.Go(func() error {
			artifact, err := e.Export(gCtx, markup, format)
			if err != nil {
				return fmt.Errorf("exporting %s: %w", format, err)
			}
			artifacts[i] = artifact
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
