package main

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/longread/pkg/outline"
	"tableflip.dev/longread/pkg/tui/components/toc"
	"tableflip.dev/longread/pkg/tui/events"
	"tableflip.dev/longread/pkg/tui/theme"
)

const sampleOutline = `# Introduction
## Why another reader
## Getting Started
### Step 1: Install
### Step 2: Configure
### Step 3: Open a document
## Keybindings
# Reference
## Configuration file
## Environment
## Exit codes
# Changelog
`

func newTOCCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "toc",
		Short: "Render the contents panel; enter marks the entry active",
		RunE: func(cmd *cobra.Command, args []string) error {
			panel := toc.New("testbed-toc", theme.Default().TOC)
			panel.SetOutline(outline.Extract(sampleOutline))
			panel.Focus()
			m := newTestbedModel(*opts, panel)
			m.onMsg = func(msg tea.Msg) tea.Cmd {
				if sel, ok := msg.(events.HeadingSelectMsg); ok {
					panel.SetActive(sel.ID)
				}
				return nil
			}
			return run(m)
		},
	}
}
