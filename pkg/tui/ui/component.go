package ui

import tea "github.com/charmbracelet/bubbletea/v2"

// Component defines the contract for the reader's Bubble Tea widgets.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Focusable is a Component that takes keyboard input only while focused.
type Focusable interface {
	Component
	Focus()
	Blur()
	Focused() bool
}
