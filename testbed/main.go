// Command testbed mounts one reader component at a time inside a framed
// harness with the event viewer docked underneath.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/longread/pkg/tui/components/eventviewer"
	"tableflip.dev/longread/pkg/tui/ui"
)

type options struct {
	full   bool
	width  int
	height int
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "testbed",
		Short: "Run the reader component testbed",
	}

	rootCmd.PersistentFlags().BoolVar(&opts.full, "full", false, "use the full terminal window")
	rootCmd.PersistentFlags().IntVar(&opts.width, "width", 80, "window width when not fullscreen")
	rootCmd.PersistentFlags().IntVar(&opts.height, "height", 20, "window height when not fullscreen")

	rootCmd.AddCommand(newTOCCmd(&opts))
	rootCmd.AddCommand(newProgressCmd(&opts))
	rootCmd.AddCommand(newHelpCmd(&opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

const (
	minFrameHeight = 8
	minEventHeight = 5
	maxEventHeight = 12
)

// testbedModel frames a single component and logs every message that
// describes itself.
type testbedModel struct {
	opts      options
	component ui.Component
	events    *eventviewer.Model

	termWidth   int
	termHeight  int
	innerWidth  int
	innerHeight int
	eventHeight int

	// onMsg lets a harness react to messages before the component does.
	onMsg func(tea.Msg) tea.Cmd
}

func newTestbedModel(opts options, component ui.Component) *testbedModel {
	return &testbedModel{
		opts:      opts,
		component: component,
		events:    eventviewer.NewModel(400),
	}
}

func (m *testbedModel) Init() tea.Cmd { return m.component.Init() }

func (m *testbedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.events.Record(msg) {
		if k, ok := msg.(tea.KeyPressMsg); ok {
			m.events.Append(eventviewer.Entry{Summary: "key", Detail: k.String()})
		}
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.layout()
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	if m.onMsg != nil {
		cmds = append(cmds, m.onMsg(msg))
	}
	_, cmd := m.component.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *testbedModel) layout() {
	m.eventHeight = 0
	if avail := m.termHeight - minFrameHeight; avail >= minEventHeight {
		m.eventHeight = min(max(m.termHeight/4, minEventHeight), maxEventHeight, avail)
		m.events.SetSize(m.termWidth, m.eventHeight)
	}
	frameSpace := max(m.termHeight-m.eventHeight, minFrameHeight)

	width := min(max(m.opts.width, 20), max(m.termWidth-4, 20))
	height := min(max(m.opts.height, minFrameHeight), frameSpace)
	if m.opts.full {
		width, height = m.termWidth, frameSpace
	}
	m.innerWidth = max(width-2, 1)
	m.innerHeight = max(height-2, 1)
	m.component.SetSize(m.innerWidth, m.innerHeight)
}

func (m *testbedModel) View() string {
	if m.termWidth == 0 || m.termHeight == 0 {
		return "Resizing…"
	}
	content := lipgloss.NewStyle().
		Width(m.innerWidth).
		Height(m.innerHeight).
		MaxHeight(m.innerHeight).
		Render(m.component.View())
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(content)
	placed := lipgloss.Place(m.termWidth, max(m.termHeight-m.eventHeight, 1), lipgloss.Center, lipgloss.Top, frame)

	if m.eventHeight == 0 {
		return placed
	}
	return strings.Join([]string{placed, m.events.View()}, "\n")
}
