package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/types"
)

// target is one focusable input of the visible step.
type target struct {
	field    string
	category builder.Category
	position int
	skill    bool
}

func (t target) isEntry() bool {
	return t.category != ""
}

func (t target) label() string {
	switch {
	case t.skill:
		return "add skill"
	case t.isEntry():
		return fmt.Sprintf("#%d %s", t.position+1, t.field)
	default:
		return t.field
	}
}

// Model is the bubbletea model of the interactive builder. Every edit goes
// straight to the session, which commits, persists and re-renders.
type Model struct {
	ctx     context.Context
	session *builder.Session
	styles  *Styles
	keys    *KeyMap

	input  textinput.Model
	focus  int
	status string
	err    error

	width    int
	height   int
	complete bool
	quitting bool
}

// New creates a builder model over a session.
func New(ctx context.Context, session *builder.Session) *Model {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = 50
	ti.Focus()

	m := &Model{
		ctx:     ctx,
		session: session,
		styles:  NewStyles(nil),
		keys:    DefaultKeyMap(),
		input:   ti,
		width:   80,
		height:  24,
	}
	m.loadInput()
	return m
}

// Run starts the interactive builder and blocks until the user quits.
func Run(ctx context.Context, session *builder.Session) error {
	p := tea.NewProgram(New(ctx, session), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Focused returns the label of the focused input.
func (m *Model) Focused() string {
	targets := m.targets()
	if len(targets) == 0 {
		return ""
	}
	return targets[m.focus].label()
}

// Complete reports whether the user finished the last step.
func (m *Model) Complete() bool {
	return m.complete
}

// Err returns the error of the last rejected action.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	step := m.session.Step()
	category, entryStep := step.Category()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case step == builder.StepSkills && msg.Type == tea.KeyTab:
		// tab accepts a suggested skill
		return m.forward(msg)

	case key.Matches(msg, m.keys.NextField):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.PrevField):
		m.moveFocus(-1)

	case key.Matches(msg, m.keys.Submit):
		if step == builder.StepSkills {
			m.addSkill()
			return m, nil
		}
		m.moveFocus(1)

	case key.Matches(msg, m.keys.NextStep):
		m.complete = m.session.Advance(m.ctx)
		if m.complete {
			m.status = "Resume complete. Export it with the export command."
		} else {
			m.status = ""
		}
		m.focus = 0
		m.loadInput()
	case key.Matches(msg, m.keys.PrevStep):
		m.session.Retreat(m.ctx)
		m.complete = false
		m.status = ""
		m.focus = 0
		m.loadInput()

	case entryStep && key.Matches(msg, m.keys.AddEntry):
		if _, err := m.session.AddEntry(m.ctx, category); err != nil {
			m.err = err
			break
		}
		rows, _ := m.session.Entries(category)
		fields, _ := m.session.EntryFields(category)
		m.focus = (len(rows) - 1) * len(fields)
		m.loadInput()
	case entryStep && key.Matches(msg, m.keys.RemoveEntry):
		m.removeEntry(category)
	case entryStep && key.Matches(msg, m.keys.MoveUp):
		m.moveEntry(category, -1)
	case entryStep && key.Matches(msg, m.keys.MoveDown):
		m.moveEntry(category, 1)

	case step == builder.StepSkills && key.Matches(msg, m.keys.RemoveEntry):
		skills := m.session.Skills()
		if len(skills) > 0 {
			m.session.RemoveSkill(m.ctx, skills[len(skills)-1])
			m.loadInput()
		}

	case step == builder.StepExtras && key.Matches(msg, m.keys.ToggleExtra):
		m.toggleExtra()

	case key.Matches(msg, m.keys.Template):
		m.cycleTemplate()
	case key.Matches(msg, m.keys.ZoomIn):
		m.session.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		m.session.ZoomOut()
	case key.Matches(msg, m.keys.Reset):
		m.session.Reset(m.ctx)
		m.complete = false
		m.status = "Started over."
		m.focus = 0
		m.loadInput()

	default:
		return m.forward(msg)
	}
	return m, nil
}

// forward passes a key to the input and applies the edit when the value changed.
func (m *Model) forward(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.apply(value)
	}
	return m, cmd
}

// apply writes the input value to the focused target.
func (m *Model) apply(value string) {
	targets := m.targets()
	if len(targets) == 0 {
		return
	}
	t := targets[m.focus]
	switch {
	case t.skill:
		// committed on enter
	case t.isEntry():
		m.err = m.session.SetEntryField(m.ctx, t.category, t.position, t.field, value)
	default:
		m.err = m.session.SetField(m.ctx, t.field, value)
	}
}

func (m *Model) addSkill() {
	value := m.input.Value()
	if m.session.AddSkill(m.ctx, value) {
		m.status = fmt.Sprintf("Added %q.", m.session.Skills()[len(m.session.Skills())-1])
	} else {
		m.status = "Skill is empty or already listed."
	}
	m.input.SetValue("")
}

func (m *Model) removeEntry(category builder.Category) {
	t, ok := m.focusedTarget()
	if !ok || !t.isEntry() {
		return
	}
	if err := m.session.RemoveEntry(m.ctx, category, t.position); err != nil {
		m.err = err
		return
	}
	m.clampFocus()
	m.loadInput()
}

func (m *Model) moveEntry(category builder.Category, delta int) {
	t, ok := m.focusedTarget()
	if !ok || !t.isEntry() {
		return
	}
	to := t.position + delta
	rows, _ := m.session.Entries(category)
	if to < 0 || to >= len(rows) {
		return
	}
	if err := m.session.MoveEntry(m.ctx, category, t.position, to); err != nil {
		m.err = err
		return
	}
	fields, _ := m.session.EntryFields(category)
	m.focus += delta * len(fields)
	m.loadInput()
}

func (m *Model) toggleExtra() {
	t, ok := m.focusedTarget()
	if !ok {
		return
	}
	kind := types.ExtraKind(t.field)
	visible := !m.session.Document().Extras.Visible(kind)
	if err := m.session.SetExtraVisible(m.ctx, t.field, visible); err != nil {
		m.err = err
	}
}

func (m *Model) cycleTemplate() {
	current := m.session.Document().SelectedTemplate.OrDefault()
	next := types.Templates[0]
	for i, tmpl := range types.Templates {
		if tmpl == current {
			next = types.Templates[(i+1)%len(types.Templates)]
			break
		}
	}
	if err := m.session.SelectTemplate(m.ctx, string(next)); err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("Template: %s", next)
}

// targets lists the focusable inputs of the visible step in order.
func (m *Model) targets() []target {
	step := m.session.Step()
	if step == builder.StepSkills {
		return []target{{skill: true}}
	}
	if category, ok := step.Category(); ok {
		rows, _ := m.session.Entries(category)
		fields, _ := m.session.EntryFields(category)
		targets := make([]target, 0, len(rows)*len(fields))
		for pos := range rows {
			for _, f := range fields {
				targets = append(targets, target{field: f, category: category, position: pos})
			}
		}
		return targets
	}
	fields := step.Fields()
	targets := make([]target, 0, len(fields))
	for _, f := range fields {
		targets = append(targets, target{field: f})
	}
	return targets
}

func (m *Model) focusedTarget() (target, bool) {
	targets := m.targets()
	if len(targets) == 0 {
		return target{}, false
	}
	return targets[m.focus], true
}

func (m *Model) moveFocus(delta int) {
	n := len(m.targets())
	if n == 0 {
		return
	}
	m.focus = (m.focus + delta + n) % n
	m.loadInput()
}

func (m *Model) clampFocus() {
	n := len(m.targets())
	if m.focus >= n {
		m.focus = n - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
}

// loadInput shows the focused target's current value in the input.
func (m *Model) loadInput() {
	m.clampFocus()
	t, ok := m.focusedTarget()
	if !ok {
		m.input.SetValue("")
		return
	}
	m.input.ShowSuggestions = t.skill
	if t.skill {
		m.input.Placeholder = "type a skill and press enter"
		m.input.SetSuggestions(builder.SuggestedSkills)
		m.input.SetValue("")
		return
	}
	m.input.Placeholder = t.field
	m.input.SetValue(m.value(t))
	m.input.CursorEnd()
}

func (m *Model) value(t target) string {
	if t.isEntry() {
		rows, err := m.session.Entries(t.category)
		if err != nil || t.position >= len(rows) {
			return ""
		}
		return rows[t.position].Fields[t.field]
	}
	v, _ := m.session.Field(t.field)
	return v
}
