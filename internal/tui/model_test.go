package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

func newTestModel(t *testing.T) (*Model, *storage.Memory) {
	t.Helper()
	backend := storage.NewMemory()
	session := builder.New(store.New(backend, ""))
	return New(context.Background(), session), backend
}

func press(m *Model, msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typeText(m *Model, text string) {
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyNext     = tea.KeyMsg{Type: tea.KeyCtrlN}
	keyPrev     = tea.KeyMsg{Type: tea.KeyCtrlP}
	keyAdd      = tea.KeyMsg{Type: tea.KeyCtrlA}
	keyRemove   = tea.KeyMsg{Type: tea.KeyCtrlX}
	keyMoveUp   = tea.KeyMsg{Type: tea.KeyUp, Alt: true}
	keyToggle   = tea.KeyMsg{Type: tea.KeyCtrlE}
	keyTemplate = tea.KeyMsg{Type: tea.KeyCtrlT}
	keyZoomIn   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'='}, Alt: true}
	keyZoomOut  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}, Alt: true}
	keyReset    = tea.KeyMsg{Type: tea.KeyCtrlR}
	keyBack     = tea.KeyMsg{Type: tea.KeyBackspace}
)

func advanceTo(m *Model, step builder.Step) {
	for m.session.Step() < step {
		press(m, keyNext)
	}
}

func TestNew(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, builder.StepPersonal, m.session.Step())
	assert.Equal(t, builder.FieldFullName, m.Focused())
	assert.False(t, m.Complete())
	assert.NotNil(t, m.Init())
}

func TestTypingEditsFocusedField(t *testing.T) {
	m, backend := newTestModel(t)

	typeText(m, "Jane Doe")

	assert.Equal(t, "Jane Doe", m.session.Document().Personal.FullName)
	data, ok, err := backend.Read(context.Background(), store.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(data), "Jane Doe")

	press(m, keyBack)
	assert.Equal(t, "Jane Do", m.session.Document().Personal.FullName)
}

func TestFocusNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, keyTab)
	assert.Equal(t, builder.FieldJobTitle, m.Focused())

	press(m, keyEnter)
	assert.Equal(t, builder.FieldPhone, m.Focused())

	press(m, keyShiftTab, keyShiftTab)
	assert.Equal(t, builder.FieldFullName, m.Focused())

	press(m, keyShiftTab)
	assert.Equal(t, builder.FieldAddress, m.Focused(), "focus wraps around")

	typeText(m, "Pune")
	press(m, keyTab)
	assert.Equal(t, "Pune", m.session.Document().Personal.Address)
	press(m, keyShiftTab)
	assert.Equal(t, "Pune", m.input.Value(), "input shows the stored value")
}

func TestStepNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, keyNext)
	assert.Equal(t, builder.StepSummary, m.session.Step())
	assert.Equal(t, builder.FieldSummary, m.Focused())

	press(m, keyPrev)
	assert.Equal(t, builder.StepPersonal, m.session.Step())

	press(m, keyPrev)
	assert.Equal(t, builder.StepPersonal, m.session.Step())
}

func TestAdvancePastLastStepCompletes(t *testing.T) {
	m, _ := newTestModel(t)

	advanceTo(m, builder.LastStep)
	assert.False(t, m.Complete())

	press(m, keyNext)
	assert.True(t, m.Complete())
	assert.Equal(t, builder.LastStep, m.session.Step())
	assert.Contains(t, m.View(), "Resume complete")

	press(m, keyPrev)
	assert.False(t, m.Complete())
}

func TestEntryEditing(t *testing.T) {
	m, _ := newTestModel(t)
	advanceTo(m, builder.StepEducation)
	assert.Equal(t, "#1 degree", m.Focused())

	typeText(m, "BSc")
	press(m, keyAdd)
	assert.Equal(t, "#2 degree", m.Focused())
	typeText(m, "MSc")

	doc := m.session.Document()
	require.Len(t, doc.Education, 2)
	assert.Equal(t, "BSc", doc.Education[0].Degree)
	assert.Equal(t, "MSc", doc.Education[1].Degree)

	press(m, keyMoveUp)
	assert.Equal(t, "#1 degree", m.Focused())
	doc = m.session.Document()
	assert.Equal(t, "MSc", doc.Education[0].Degree)
	assert.Equal(t, "BSc", doc.Education[1].Degree)

	press(m, keyMoveUp)
	assert.Equal(t, "MSc", m.session.Document().Education[0].Degree, "first row cannot move up")

	press(m, keyRemove)
	doc = m.session.Document()
	require.Len(t, doc.Education, 1)
	assert.Equal(t, "BSc", doc.Education[0].Degree)
	assert.Equal(t, "BSc", m.input.Value())
}

func TestRemovingLastEntryLeavesNoTargets(t *testing.T) {
	m, _ := newTestModel(t)
	advanceTo(m, builder.StepExperience)

	press(m, keyRemove)
	assert.Equal(t, "", m.Focused())
	assert.Contains(t, m.View(), "No entries")

	typeText(m, "ignored")
	assert.Empty(t, m.session.Document().Experience)

	press(m, keyAdd)
	assert.Equal(t, "#1 title", m.Focused())
}

func TestSkills(t *testing.T) {
	m, _ := newTestModel(t)
	advanceTo(m, builder.StepSkills)
	assert.Equal(t, "add skill", m.Focused())

	typeText(m, "  Go ")
	assert.Empty(t, m.session.Skills(), "skills are committed on enter")
	press(m, keyEnter)
	assert.Equal(t, []string{"Go"}, m.session.Skills())
	assert.Equal(t, "", m.input.Value())

	typeText(m, "Go")
	press(m, keyEnter)
	assert.Equal(t, []string{"Go"}, m.session.Skills())
	assert.Contains(t, m.View(), "already listed")

	typeText(m, "SQL")
	press(m, keyEnter)
	press(m, keyRemove)
	assert.Equal(t, []string{"Go"}, m.session.Skills())
}

func TestToggleExtra(t *testing.T) {
	m, _ := newTestModel(t)
	advanceTo(m, builder.StepExtras)
	press(m, keyTab)
	assert.Equal(t, builder.FieldHobbies, m.Focused())

	visible := m.session.Document().Extras.Visible(types.ExtraHobbies)
	press(m, keyToggle)
	assert.Equal(t, !visible, m.session.Document().Extras.Visible(types.ExtraHobbies))
}

func TestTemplateAndZoom(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, keyTemplate)
	assert.Equal(t, types.TemplateMinimal, m.session.Document().SelectedTemplate)

	for range types.Templates[1:] {
		press(m, keyTemplate)
	}
	assert.Equal(t, types.TemplateModern, m.session.Document().SelectedTemplate, "cycle wraps")

	press(m, keyZoomIn)
	assert.Equal(t, builder.ZoomDefault+builder.ZoomStep, m.session.Zoom())
	press(m, keyZoomOut, keyZoomOut)
	assert.Equal(t, builder.ZoomDefault-builder.ZoomStep, m.session.Zoom())
	assert.Equal(t, "", m.session.Document().Personal.FullName, "commands do not reach the input")
}

func TestReset(t *testing.T) {
	m, _ := newTestModel(t)
	typeText(m, "Jane")
	press(m, keyNext)

	press(m, keyReset)

	assert.Equal(t, builder.StepPersonal, m.session.Step())
	assert.Equal(t, "", m.session.Document().Personal.FullName)
	assert.Equal(t, "", m.input.Value())
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "", m.View())
}

func TestWindowSize(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Contains(t, m.View(), "Resume Builder")
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t)
	typeText(m, "Jane Doe")

	view := m.View()
	assert.Contains(t, view, "Resume Builder")
	assert.Contains(t, view, "1.personal")
	assert.Contains(t, view, "Step 1 of 8")
	assert.Contains(t, view, "Jane Doe")
	assert.Contains(t, view, "55/100")
	assert.NotContains(t, view, "previous step", "no previous affordance on the first step")

	advanceTo(m, builder.LastStep)
	view = m.View()
	assert.Contains(t, view, "finish")
	assert.Contains(t, view, "previous step")
	assert.Contains(t, view, "✓ 1.personal")
}

func TestRenderOutline(t *testing.T) {
	outline := &rendering.Outline{
		Name:   "Jane Doe",
		Header: []string{"Engineer"},
		Sections: []rendering.SectionOutline{
			{Key: "skills", Title: "Skills", Items: []string{"Go", "SQL", "Docker", "Kubernetes"}},
		},
	}

	out := RenderOutline(outline, NewStyles(nil))

	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Engineer")
	assert.Contains(t, out, "SKILLS")
	assert.Contains(t, out, "Docker")
	assert.NotContains(t, out, "Kubernetes")
	assert.Contains(t, out, "... and 1 more")
}
