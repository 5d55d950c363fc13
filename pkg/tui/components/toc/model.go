// Package toc renders the scroll-synced table of contents.
package toc

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/longread/pkg/outline"
	"tableflip.dev/longread/pkg/tui/events"
	"tableflip.dev/longread/pkg/tui/theme"
	"tableflip.dev/longread/pkg/tui/ui"
)

const title = "Contents"

// KeyMap lists the bindings the outline reacts to while focused.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous entry")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next entry")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "jump to heading")),
	}
}

// Model is the outline side panel.
type Model struct {
	id       events.ComponentID
	headings outline.Headings
	active   string
	cursor   int
	top      int
	focused  bool

	width  int
	height int

	keys   KeyMap
	styles theme.TOCTheme
}

var _ ui.Focusable = (*Model)(nil)

// New returns an empty outline panel.
func New(id events.ComponentID, styles theme.TOCTheme) *Model {
	return &Model{id: id, keys: DefaultKeyMap(), styles: styles}
}

// ID returns the component id used on emitted events.
func (m *Model) ID() events.ComponentID { return m.id }

// SetOutline replaces the entries. The cursor stays on the same id when it
// is still present.
func (m *Model) SetOutline(headings outline.Headings) {
	if m.headings.Equal(headings) {
		return
	}
	var current string
	if m.cursor < len(m.headings) {
		current = m.headings[m.cursor].ID
	}
	m.headings = headings
	m.cursor = 0
	if i := headings.Index(current); i >= 0 {
		m.cursor = i
	}
	m.follow()
}

// SetActive highlights the entry for id. While unfocused the cursor follows
// the active entry.
func (m *Model) SetActive(id string) {
	if id == m.active {
		return
	}
	m.active = id
	if !m.focused {
		if i := m.headings.Index(id); i >= 0 {
			m.cursor = i
		}
	}
	m.follow()
}

// Active returns the highlighted id.
func (m *Model) Active() string { return m.active }

// Visible reports whether there is anything to show.
func (m *Model) Visible() bool { return len(m.headings) > 0 }

// Selected returns the entry under the cursor.
func (m *Model) Selected() (outline.Heading, bool) {
	if m.cursor < 0 || m.cursor >= len(m.headings) {
		return outline.Heading{}, false
	}
	return m.headings[m.cursor], true
}

// Focus implements ui.Focusable.
func (m *Model) Focus() { m.focused = true }

// Blur implements ui.Focusable. The cursor returns to the active entry.
func (m *Model) Blur() {
	m.focused = false
	if i := m.headings.Index(m.active); i >= 0 {
		m.cursor = i
	}
	m.follow()
}

// Focused implements ui.Focusable.
func (m *Model) Focused() bool { return m.focused }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component. Keys are only handled while focused.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !m.focused || len(m.headings) == 0 {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.MoveCursor(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.MoveCursor(1)
	case key.Matches(keyMsg, m.keys.Select):
		if h, ok := m.Selected(); ok {
			return m, events.HeadingSelectCmd(m.id, h.ID, h.Text)
		}
	}
	return m, nil
}

// MoveCursor moves the cursor by delta entries, clamped to the list.
func (m *Model) MoveCursor(delta int) {
	if len(m.headings) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.headings)-1)
	m.follow()
}

// SetSize implements ui.Component. Width includes the frame.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 0)
	m.height = max(height, 0)
	m.follow()
}

func (m *Model) rows() int {
	return max(m.height-1, 0)
}

// follow scrolls the list so the cursor row is visible.
func (m *Model) follow() {
	rows := m.rows()
	if rows == 0 {
		m.top = 0
		return
	}
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+rows {
		m.top = m.cursor - rows + 1
	}
	m.top = min(max(m.top, 0), max(len(m.headings)-rows, 0))
}

// View implements ui.Component.
func (m *Model) View() string {
	if !m.Visible() || m.width == 0 || m.height == 0 {
		return ""
	}
	inner := max(m.width-m.styles.Frame.GetHorizontalFrameSize(), 1)

	lines := make([]string, 0, m.height)
	lines = append(lines, m.styles.Title.Render(truncate.StringWithTail(title, uint(inner), "…")))
	end := min(m.top+m.rows(), len(m.headings))
	for i := m.top; i < end; i++ {
		lines = append(lines, m.renderEntry(i, inner))
	}
	for len(lines) < m.height {
		lines = append(lines, "")
	}
	return m.styles.Frame.Width(m.width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderEntry(i, width int) string {
	h := m.headings[i]
	indent := strings.Repeat("  ", max(h.Level-1, 0))
	label := truncate.StringWithTail(indent+h.Text, uint(width), "…")
	label += strings.Repeat(" ", max(width-lipgloss.Width(label), 0))

	style := m.styles.Entry
	if h.ID == m.active {
		style = m.styles.Active
	}
	if m.focused && i == m.cursor {
		style = style.Inherit(m.styles.Cursor)
	}
	return style.Render(label)
}
