// Package backtotop renders the floating "back to top" control.
package backtotop

import (
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/longread/pkg/tui/events"
	"tableflip.dev/longread/pkg/tui/ui"
)

// Label is the button text.
const Label = "↑ top"

// Model shows the button once the reader has scrolled far enough.
type Model struct {
	id      events.ComponentID
	visible bool
	width   int
	binding key.Binding
	style   lipgloss.Style
}

var _ ui.Component = (*Model)(nil)

// New returns a hidden button.
func New(id events.ComponentID, style lipgloss.Style) *Model {
	return &Model{
		id:      id,
		binding: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "back to top")),
		style:   style,
	}
}

// SetVisible toggles the button.
func (m *Model) SetVisible(v bool) { m.visible = v }

// Visible reports whether the button is shown.
func (m *Model) Visible() bool { return m.visible }

// Binding returns the key that activates the button.
func (m *Model) Binding() key.Binding { return m.binding }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update emits a ScrollTopMsg when the binding is pressed while visible.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if k, ok := msg.(tea.KeyPressMsg); ok && key.Matches(k, m.binding) {
		return m, events.ScrollTopCmd(m.id)
	}
	return m, nil
}

// SetSize implements ui.Component. Only the width is used, for alignment.
func (m *Model) SetSize(width, _ int) { m.width = max(width, 0) }

// View renders the button right-aligned, or nothing while hidden.
func (m *Model) View() string {
	if !m.visible {
		return ""
	}
	button := m.style.Render(Label)
	if m.width <= lipgloss.Width(button) {
		return button
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, button)
}
