package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// maxOutlineItems caps how many items per section the preview panel shows
const maxOutlineItems = 3

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewSteps())
	b.WriteString("\n\n")

	form := m.viewForm()
	preview := m.viewPreview()
	if m.width >= 100 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			m.styles.Panel.Width(m.width/2-2).Render(form),
			m.styles.Panel.Width(m.width/2-2).Render(preview),
		))
	} else {
		b.WriteString(m.styles.Panel.Render(form))
		b.WriteString("\n")
		b.WriteString(m.styles.Panel.Render(preview))
	}
	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	b.WriteString("\n")
	b.WriteString(m.viewHelp())
	return b.String()
}

func (m *Model) viewHeader() string {
	doc := m.session.Document()
	return fmt.Sprintf("%s  %s",
		m.styles.Title.Render("Resume Builder"),
		m.styles.Muted.Render(fmt.Sprintf("template: %s  zoom: %d%%", doc.SelectedTemplate.OrDefault(), m.session.Zoom())),
	)
}

func (m *Model) viewSteps() string {
	parts := make([]string, 0, int(builder.LastStep))
	for _, s := range m.session.StepStates() {
		label := fmt.Sprintf("%d.%s", s.Step, s.Name)
		switch s.Status {
		case builder.StatusCompleted:
			parts = append(parts, m.styles.Completed.Render("✓ "+label))
		case builder.StatusActive:
			parts = append(parts, m.styles.Active.Render("▶ "+label))
		default:
			parts = append(parts, m.styles.Pending.Render("○ "+label))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) viewForm() string {
	step := m.session.Step()
	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Step %d of %d: %s", step, builder.LastStep, step)))
	b.WriteString("\n\n")

	if step == builder.StepSkills {
		b.WriteString(m.viewSkills())
		return b.String()
	}

	targets := m.targets()
	if len(targets) == 0 {
		b.WriteString(m.styles.Muted.Render("No entries. Press ctrl+a to add one."))
		return b.String()
	}

	doc := m.session.Document()
	lastRow := -1
	for i, t := range targets {
		if t.isEntry() && t.position != lastRow {
			if lastRow >= 0 {
				b.WriteString("\n")
			}
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%s #%d", t.category, t.position+1)))
			b.WriteString("\n")
			lastRow = t.position
		}

		label := m.styles.Label.Render(t.field)
		value := m.value(t)
		if i == m.focus {
			b.WriteString(m.styles.Focused.Render("> ") + label + m.input.View())
		} else {
			b.WriteString("  " + label + value)
		}
		if step == builder.StepExtras && !doc.Extras.Visible(types.ExtraKind(t.field)) {
			b.WriteString(m.styles.Muted.Render("  (hidden)"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewSkills() string {
	var b strings.Builder
	b.WriteString(m.styles.Focused.Render("> ") + m.input.View())
	b.WriteString("\n\n")

	skills := m.session.Skills()
	if len(skills) == 0 {
		b.WriteString(m.styles.Muted.Render("No skills yet."))
	} else {
		chips := make([]string, 0, len(skills))
		for _, s := range skills {
			chips = append(chips, m.styles.Chip.Render(s))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	}
	b.WriteString("\n")

	doc := m.session.Document()
	var suggested []string
	for _, s := range builder.SuggestedSkills {
		if !doc.HasSkill(s) {
			suggested = append(suggested, s)
		}
	}
	if len(suggested) > 0 {
		b.WriteString(m.styles.Muted.Render("Suggestions: " + strings.Join(suggested, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewPreview() string {
	var b strings.Builder
	result := m.session.Score()
	b.WriteString(m.viewScore(result.Score, string(result.Tier)))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(result.Guidance))
	b.WriteString("\n\n")

	if err := m.session.PreviewError(); err != nil {
		b.WriteString(m.styles.Error.Render("Preview unavailable: " + err.Error()))
		return b.String()
	}
	outline, err := rendering.ExtractOutline(m.session.Preview())
	if err != nil {
		b.WriteString(m.styles.Error.Render("Preview unavailable: " + err.Error()))
		return b.String()
	}
	b.WriteString(RenderOutline(outline, m.styles))
	return b.String()
}

func (m *Model) viewScore(score int, tier string) string {
	filled := score / 5
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
	style := m.styles.Warning
	if score >= 90 {
		style = m.styles.Success
	}
	return fmt.Sprintf("ATS %s %s", style.Render(bar), style.Render(fmt.Sprintf("%d/100 %s", score, tier)))
}

func (m *Model) viewStatus() string {
	if m.err != nil {
		return m.styles.Error.Render(m.err.Error())
	}
	if m.status != "" {
		return m.styles.Success.Render(m.status)
	}
	return ""
}

func (m *Model) viewHelp() string {
	step := m.session.Step()
	_, entries := step.Category()
	nav := m.session.Navigation()

	var parts []string
	for _, b := range m.keys.StepHelp(entries, step == builder.StepExtras) {
		h := b.Help()
		desc := h.Desc
		switch {
		case h.Key == m.keys.NextStep.Help().Key:
			desc = strings.ToLower(nav.NextLabel)
		case h.Key == m.keys.PrevStep.Help().Key && !nav.ShowPrevious:
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, desc))
	}
	return m.styles.Help.Render(strings.Join(parts, " • "))
}

// RenderOutline formats a preview outline as indented plain text.
func RenderOutline(outline *rendering.Outline, s *Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(outline.Name))
	b.WriteString("\n")
	for _, line := range outline.Header {
		b.WriteString(s.Muted.Render(line))
		b.WriteString("\n")
	}
	for _, sec := range outline.Sections {
		b.WriteString("\n")
		b.WriteString(s.Subtitle.Render(strings.ToUpper(sec.Title)))
		b.WriteString("\n")
		for i, item := range sec.Items {
			if i == maxOutlineItems {
				b.WriteString(s.Muted.Render(fmt.Sprintf("  ... and %d more", len(sec.Items)-maxOutlineItems)))
				b.WriteString("\n")
				break
			}
			b.WriteString("  " + item + "\n")
		}
	}
	return b.String()
}
