package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the builder's keybindings. Printable keys always go to the
// focused input, so every command uses a modifier.
type KeyMap struct {
	Quit        key.Binding
	NextField   key.Binding
	PrevField   key.Binding
	Submit      key.Binding
	NextStep    key.Binding
	PrevStep    key.Binding
	AddEntry    key.Binding
	RemoveEntry key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	ToggleExtra key.Binding
	Template    key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	Reset       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		NextStep: key.NewBinding(
			key.WithKeys("ctrl+n", "pgdown"),
			key.WithHelp("ctrl+n", "next step"),
		),
		PrevStep: key.NewBinding(
			key.WithKeys("ctrl+p", "pgup"),
			key.WithHelp("ctrl+p", "previous step"),
		),
		AddEntry: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "add entry"),
		),
		RemoveEntry: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "remove"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("alt+up"),
			key.WithHelp("alt+↑", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("alt+down"),
			key.WithHelp("alt+↓", "move down"),
		),
		ToggleExtra: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "show/hide"),
		),
		Template: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "template"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("alt+="),
			key.WithHelp("alt+=", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("alt+-"),
			key.WithHelp("alt+-", "zoom out"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "start over"),
		),
	}
}

// StepHelp returns the bindings relevant to a kind of step.
func (k *KeyMap) StepHelp(entries, extras bool) []key.Binding {
	bindings := []key.Binding{k.NextField, k.NextStep, k.PrevStep}
	if entries {
		bindings = append(bindings, k.AddEntry, k.RemoveEntry, k.MoveUp, k.MoveDown)
	}
	if extras {
		bindings = append(bindings, k.ToggleExtra)
	}
	return append(bindings, k.Template, k.ZoomIn, k.ZoomOut, k.Quit)
}
