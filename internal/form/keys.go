package form

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the form keybindings.
type KeyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Down      key.Binding
	Up        key.Binding
	Bottom    key.Binding
	Activate  key.Binding
	Submit    key.Binding
	Escape    key.Binding
}

// Keys are the form keybindings. The gg and dd sequences are recognized
// separately by Pending.
var Keys = KeyMap{
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "force quit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "save"),
	),
	Activate: key.NewBinding(
		key.WithKeys("i", "enter"),
		key.WithHelp("i/enter", "edit"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "next"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "normal mode"),
	),
}

// SequenceHelp describes the two-key sequences for the help line.
var SequenceHelp = []key.Binding{
	key.NewBinding(key.WithKeys("g"), key.WithHelp("gg", "top")),
	key.NewBinding(key.WithKeys("d"), key.WithHelp("dd", "clear")),
}

// NormalHelp returns the bindings shown while navigating.
func NormalHelp() []key.Binding {
	help := []key.Binding{Keys.Down, Keys.Up, Keys.Activate}
	help = append(help, SequenceHelp...)
	return append(help, Keys.Bottom, Keys.Quit)
}

// InsertHelp returns the bindings shown while editing.
func InsertHelp(overlay bool) []key.Binding {
	if overlay {
		return []key.Binding{Keys.Down, Keys.Up, Keys.Activate, Keys.Escape}
	}
	return []key.Binding{Keys.Submit, Keys.Escape, Keys.ForceQuit}
}
