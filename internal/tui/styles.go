// Package tui provides the interactive terminal resume builder.
package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the colour palette of the builder.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Border    lipgloss.Color
}

// DefaultTheme returns the default palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#2563EB"), // Blue
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Warning:   lipgloss.Color("#F9E2AF"), // Yellow
		Error:     lipgloss.Color("#F38BA8"), // Red
		Border:    lipgloss.Color("#45475A"),
	}
}

// Styles holds the rendered styles derived from a theme.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Muted     lipgloss.Style
	Label     lipgloss.Style
	Focused   lipgloss.Style
	Completed lipgloss.Style
	Active    lipgloss.Style
	Pending   lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Chip      lipgloss.Style
	Panel     lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles builds styles from a theme; nil means DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtitle:  lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Muted:     lipgloss.NewStyle().Foreground(theme.Muted),
		Label:     lipgloss.NewStyle().Width(12),
		Focused:   lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Completed: lipgloss.NewStyle().Foreground(theme.Success),
		Active:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Underline(true),
		Pending:   lipgloss.NewStyle().Foreground(theme.Muted),
		Error:     lipgloss.NewStyle().Foreground(theme.Error),
		Success:   lipgloss.NewStyle().Foreground(theme.Success),
		Warning:   lipgloss.NewStyle().Foreground(theme.Warning),
		Chip:      lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(theme.Secondary),
		Panel:     lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(theme.Border),
		Help:      lipgloss.NewStyle().Foreground(theme.Muted),
	}
}
