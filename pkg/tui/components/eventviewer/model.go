// Package eventviewer renders the --debug log of messages and engine snapshots.
package eventviewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/longread/pkg/scrollsync"
	"tableflip.dev/longread/pkg/tui/events"
	"tableflip.dev/longread/pkg/tui/ui"
)

const defaultMaxEntries = 200

// Level indicates the severity of a logged event.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Entry is one logged event.
type Entry struct {
	Timestamp time.Time
	Source    string
	Summary   string
	Detail    string
	Level     Level
}

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Model is a newest-first event log in a bordered viewport.
type Model struct {
	viewport   viewport.Model
	entries    []Entry
	maxEntries int

	width  int
	height int
}

var _ ui.Component = (*Model)(nil)

// NewModel returns a log holding at most maxEntries entries. Zero picks a
// default.
func NewModel(maxEntries int) *Model {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &Model{
		viewport:   viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		maxEntries: maxEntries,
	}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	m.Record(msg)
	return m, nil
}

// Record logs msg when it implements events.Describer and reports whether
// it did.
func (m *Model) Record(msg tea.Msg) bool {
	d, ok := msg.(events.Describer)
	if !ok {
		return false
	}
	level := LevelInfo
	if loaded, ok := msg.(events.DocumentLoadedMsg); ok && loaded.Err != nil {
		level = LevelError
	}
	m.Append(Entry{
		Source:  "tea",
		Summary: fmt.Sprintf("%T", msg),
		Detail:  d.Describe(),
		Level:   level,
	})
	return true
}

// RecordSnapshot logs an engine snapshot. Identical consecutive snapshots
// are collapsed.
func (m *Model) RecordSnapshot(s scrollsync.Snapshot) {
	detail := fmt.Sprintf("gen:%d state:%s active:%q progress:%.1f top:%t headings:%d",
		s.Generation, s.State, s.Active, s.Signal.Progress, s.Signal.ShowBackToTop, len(s.Outline))
	if len(m.entries) > 0 && m.entries[0].Source == "engine" && m.entries[0].Detail == detail {
		return
	}
	m.Append(Entry{Source: "engine", Summary: "snapshot", Detail: detail})
}

// Append puts entry at the top of the log.
func (m *Model) Append(entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Source == "" {
		entry.Source = "tea"
	}
	m.entries = append([]Entry{entry}, m.entries...)
	if len(m.entries) > m.maxEntries {
		m.entries = m.entries[:m.maxEntries]
	}
	m.refresh()
	m.viewport.SetYOffset(0)
}

// Entries returns the log, newest first.
func (m *Model) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// SetSize implements ui.Component. The size includes the border.
func (m *Model) SetSize(width, height int) {
	width, height = max(width, 4), max(height, 3)
	if m.width == width && m.height == height {
		return
	}
	m.width, m.height = width, height
	m.viewport.SetWidth(width - 2)
	// border and header
	m.viewport.SetHeight(max(height-3, 1))
	m.refresh()
}

// View implements ui.Component.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Left, headerStyle.Render("Events"), m.viewport.View())
	return frameStyle.Width(m.width).Height(m.height).Render(body)
}

func (m *Model) refresh() {
	if len(m.entries) == 0 {
		m.viewport.SetContent(faintStyle.Render("No events yet"))
		return
	}
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		msg := e.Summary
		if e.Detail != "" {
			msg += ": " + e.Detail
		}
		style := infoStyle
		if e.Level == LevelError {
			style = errorStyle
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			faintStyle.Render(e.Timestamp.Format("15:04:05.000")),
			faintStyle.Render("["+e.Source+"]"),
			style.Render(msg)))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}
