package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// Describer is implemented by messages that can summarize themselves for
// the debug event viewer.
type Describer interface {
	Describe() string
}

// HeadingSelectMsg is emitted when the user activates an outline entry.
type HeadingSelectMsg struct {
	Component ComponentID
	ID        string
	Text      string
}

// Describe renders the selection in a human-friendly format for logs.
func (m HeadingSelectMsg) Describe() string {
	return fmt.Sprintf(`id:%q text:%q`, m.ID, m.Text)
}

// HeadingSelectCmd wraps HeadingSelectMsg into a tea.Cmd.
func HeadingSelectCmd(component ComponentID, id, text string) tea.Cmd {
	return func() tea.Msg {
		return HeadingSelectMsg{Component: component, ID: id, Text: text}
	}
}

// ScrollTopMsg is emitted when the back-to-top control is activated.
type ScrollTopMsg struct {
	Component ComponentID
}

// Describe implements Describer.
func (m ScrollTopMsg) Describe() string {
	return fmt.Sprintf(`component:%q`, m.Component)
}

// ScrollTopCmd wraps ScrollTopMsg into a tea.Cmd.
func ScrollTopCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return ScrollTopMsg{Component: component}
	}
}

// DocumentChangedMsg announces that the source file changed on disk.
type DocumentChangedMsg struct {
	Path string
}

// Describe implements Describer.
func (m DocumentChangedMsg) Describe() string {
	return fmt.Sprintf(`path:%q`, m.Path)
}

// DocumentLoadedMsg carries freshly read source text.
type DocumentLoadedMsg struct {
	Path string
	Text string
	Err  error
}

// Describe implements Describer.
func (m DocumentLoadedMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf(`path:%q err:%q`, m.Path, m.Err.Error())
	}
	return fmt.Sprintf(`path:%q bytes:%d`, m.Path, len(m.Text))
}

// ActiveHeadingMsg reports a change of the heading considered in view.
type ActiveHeadingMsg struct {
	ID         string
	Generation uint64
}

// Describe implements Describer.
func (m ActiveHeadingMsg) Describe() string {
	return fmt.Sprintf(`id:%q generation:%d`, m.ID, m.Generation)
}
