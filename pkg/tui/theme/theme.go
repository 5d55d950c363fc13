package theme

import (
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Theme centralizes Lip Gloss styles for the reader.
type Theme struct {
	Progress ProgressTheme
	TOC      TOCTheme
	Footer   FooterTheme
	Panel    PanelTheme
	Button   lipgloss.Style
}

// ProgressTheme colors the reading-progress bar. The fill blends From, Via
// and To from left to right.
type ProgressTheme struct {
	From  string
	Via   string
	To    string
	Fill  string
	Track lipgloss.Style
}

// TOCTheme styles the table of contents.
type TOCTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Entry  lipgloss.Style
	Active lipgloss.Style
	Cursor lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help    lipgloss.Style
	Status  lipgloss.Style
	Percent lipgloss.Style
}

// PanelTheme styles framed overlays.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Progress: ProgressTheme{
			From:  "#22c55e",
			Via:   "#06b6d4",
			To:    "#ec4899",
			Fill:  "▀",
			Track: lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		},
		TOC: TOCTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, true, false, false).
				BorderForeground(lipgloss.Color("238")).
				PaddingRight(1),
			Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")),
			Entry:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Active: lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
			Cursor: lipgloss.NewStyle().Reverse(true),
		},
		Footer: FooterTheme{
			Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Percent: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
	}
}

// GlamourStyle resolves the "auto" document style for out: plain output
// when it is not a terminal, otherwise dark or light after the terminal
// background. Explicit styles pass through.
func GlamourStyle(style string, out *os.File) string {
	if style != "" && style != "auto" {
		return style
	}
	if out == nil || !isatty.IsTerminal(out.Fd()) {
		return "notty"
	}
	if termenv.NewOutput(out).HasDarkBackground() {
		return "dark"
	}
	return "light"
}
