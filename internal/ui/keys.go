package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the model's own bindings. Navigation keys belong to the
// file picker.
type keyMap struct {
	Detect key.Binding
	Select key.Binding
	Browse key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Detect: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "detect AI content"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select file"),
		),
		Browse: key.NewBinding(
			key.WithKeys("up", "down", "left", "right", "h", "j", "k", "l"),
			key.WithHelp("↑↓←→", "browse"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Detect, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Browse, k.Select},
		{k.Detect},
		{k.Help, k.Quit},
	}
}
