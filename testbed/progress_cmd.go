package main

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/longread/pkg/scrollsync"
	"tableflip.dev/longread/pkg/tui/components/backtotop"
	"tableflip.dev/longread/pkg/tui/components/progressbar"
	"tableflip.dev/longread/pkg/tui/events"
	"tableflip.dev/longread/pkg/tui/theme"
	"tableflip.dev/longread/pkg/tui/ui"
)

func newProgressCmd(opts *options) *cobra.Command {
	var docHeight, viewHeight float64

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Drive the progress bar and back-to-top button with j/k",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(newTestbedModel(*opts, newProgressHarness(docHeight, viewHeight)))
		},
	}
	cmd.Flags().Float64Var(&docHeight, "document", 4000, "simulated document height")
	cmd.Flags().Float64Var(&viewHeight, "viewport", 800, "simulated viewport height")
	return cmd
}

// progressHarness fakes a scroll offset and feeds it through
// scrollsync.Compute.
type progressHarness struct {
	doc, view, offset float64

	bar   *progressbar.Model
	top   *backtotop.Model
	width int
}

var _ ui.Component = (*progressHarness)(nil)

func newProgressHarness(doc, view float64) *progressHarness {
	th := theme.Default()
	h := &progressHarness{
		doc:  doc,
		view: view,
		bar:  progressbar.New(th.Progress),
		top:  backtotop.New("testbed-top", th.Button),
	}
	h.apply()
	return h
}

func (h *progressHarness) apply() {
	s := scrollsync.Compute(h.offset, h.doc, h.view, scrollsync.DefaultBackToTopThreshold)
	h.bar.SetPercent(s.Progress)
	h.top.SetVisible(s.ShowBackToTop)
}

func (h *progressHarness) Init() tea.Cmd { return nil }

func (h *progressHarness) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if _, ok := msg.(events.ScrollTopMsg); ok {
		h.offset = 0
		h.apply()
		return h, nil
	}
	k, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return h, nil
	}
	switch k.String() {
	case "j", "down":
		h.offset = min(h.offset+50, max(h.doc-h.view, 0))
	case "k", "up":
		h.offset = max(h.offset-50, 0)
	}
	h.apply()
	_, cmd := h.top.Update(msg)
	return h, cmd
}

func (h *progressHarness) SetSize(width, height int) {
	h.width = width
	h.bar.SetWidth(width)
	h.top.SetSize(width, 1)
}

func (h *progressHarness) View() string {
	status := lipgloss.NewStyle().Faint(true).Render(
		strings.Join([]string{"offset", formatFloat(h.offset), "of", formatFloat(h.doc - h.view)}, " "))
	return lipgloss.JoinVertical(lipgloss.Left, h.bar.View(), "", status, "", h.top.View())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 0, 64)
}
