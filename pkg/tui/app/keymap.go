package app

import "github.com/charmbracelet/bubbles/v2/key"

// KeyMap holds the reader's global bindings.
type KeyMap struct {
	Down        key.Binding
	Up          key.Binding
	PageDown    key.Binding
	PageUp      key.Binding
	Top         key.Binding
	Bottom      key.Binding
	NextHeading key.Binding
	PrevHeading key.Binding
	ToggleTOC   key.Binding
	Help        key.Binding
	Close       key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown", "space", " "), key.WithHelp("space", "page down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("b", "page up")),
		Top:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		NextHeading: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next heading")),
		PrevHeading: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous heading")),
		ToggleTOC:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "contents")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Close:       key.NewBinding(key.WithKeys("esc")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
