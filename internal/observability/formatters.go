// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintScore outputs the ATS estimate with its guidance.
func (p *Printer) PrintScore(result ats.Result) {
	filled := result.Score / 5
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:  %d / 100\n", result.Score))
	sb.WriteString(fmt.Sprintf("        %s\n", bar))
	sb.WriteString(fmt.Sprintf("Tier:   %s\n", result.Tier))
	sb.WriteString("\n")
	sb.WriteString(result.Guidance)

	p.printBox("ATS SCORE", sb.String())
}

// PrintSteps outputs the step indicator, one line per step.
func (p *Printer) PrintSteps(states []builder.StepState) {
	if len(states) == 0 {
		return
	}

	var sb strings.Builder
	for i, st := range states {
		marker := "○"
		switch st.Status {
		case builder.StatusCompleted:
			marker = "✓"
		case builder.StatusActive:
			marker = "▶"
		}
		sb.WriteString(fmt.Sprintf("%s %d. %s", marker, int(st.Step), st.Name))
		if i < len(states)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("STEPS", sb.String())
}

// PrintDocument outputs a per-section summary of the document.
func (p *Printer) PrintDocument(doc types.ResumeDocument) {
	var sb strings.Builder

	name := doc.Personal.FullName
	if name == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:      %s\n", name))
	if doc.Personal.JobTitle != "" {
		sb.WriteString(fmt.Sprintf("Title:     %s\n", doc.Personal.JobTitle))
	}
	sb.WriteString(fmt.Sprintf("Template:  %s\n", doc.SelectedTemplate.OrDefault()))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Summary:         %s\n", presence(doc.Summary != "")))
	sb.WriteString(fmt.Sprintf("Education:       %d\n", len(doc.Education)))
	sb.WriteString(fmt.Sprintf("Experience:      %d\n", len(doc.Experience)))
	sb.WriteString(fmt.Sprintf("Projects:        %d\n", len(doc.Projects)))
	sb.WriteString(fmt.Sprintf("Certifications:  %d\n", len(doc.Certifications)))

	if len(doc.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkills (%d):\n", len(doc.Skills)))
		count := min(len(doc.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", doc.Skills[i]))
		}
		if len(doc.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Skills)-maxItemsToShow))
		}
	}

	shown := []string{}
	for _, kind := range types.ExtraKinds {
		if doc.Extras.Shown(kind) {
			shown = append(shown, string(kind))
		}
	}
	if len(shown) > 0 {
		sb.WriteString(fmt.Sprintf("\nExtras:  %s\n", strings.Join(shown, ", ")))
	}

	p.printBox("RESUME SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

func presence(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

// PrintOutline outputs the rendered sections and their first items.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintOutline(outline *rendering.Outline) {
	if outline == nil {
		return
	}
	if len(outline.Sections) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "PREVIEW: header only ("+outline.Name+")")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(outline.Name + "\n")
	for _, line := range outline.Header {
		sb.WriteString("  " + line + "\n")
	}
	for _, section := range outline.Sections {
		sb.WriteString(fmt.Sprintf("\n%s\n", strings.ToUpper(section.Title)))
		count := min(len(section.Items), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", section.Items[i]))
		}
		if len(section.Items) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(section.Items)-3))
		}
	}

	p.printBox("PREVIEW OUTLINE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs the result of a snapshot schema check.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(path string, errs *schemas.ValidationError) {
	if errs == nil || len(errs.Errors) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ VALID SNAPSHOT")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %d problems\n\n", path, len(errs.Errors)))
	for i, fe := range errs.Errors {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", fe.Field))
		sb.WriteString(fmt.Sprintf("  %s\n", fe.Message))
		if i < len(errs.Errors)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SCHEMA VIOLATIONS", strings.TrimSuffix(sb.String(), "\n"))
}
