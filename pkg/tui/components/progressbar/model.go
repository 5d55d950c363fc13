// Package progressbar draws the one-row reading-progress indicator.
package progressbar

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/longread/pkg/tui/theme"
)

// Model renders a gradient bar filled to a percentage of its width.
type Model struct {
	width   int
	percent float64

	from, via, to colorful.Color
	fill          string
	track         lipgloss.Style
}

// New returns a bar styled by th.
func New(th theme.ProgressTheme) *Model {
	fill := th.Fill
	if fill == "" {
		fill = "█"
	}
	return &Model{
		from:  parseHex(th.From, colorful.Color{R: 0.13, G: 0.77, B: 0.37}),
		via:   parseHex(th.Via, colorful.Color{R: 0.02, G: 0.71, B: 0.83}),
		to:    parseHex(th.To, colorful.Color{R: 0.93, G: 0.28, B: 0.6}),
		fill:  fill,
		track: th.Track,
	}
}

func parseHex(hex string, fallback colorful.Color) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c
}

// SetWidth sets the number of cells.
func (m *Model) SetWidth(width int) { m.width = max(width, 0) }

// SetPercent sets the fill, clamped to 0-100.
func (m *Model) SetPercent(p float64) {
	if math.IsNaN(p) {
		p = 0
	}
	m.percent = math.Min(100, math.Max(0, p))
}

// Percent returns the current fill.
func (m *Model) Percent() float64 { return m.percent }

// Filled returns how many cells are drawn as filled.
func (m *Model) Filled() int {
	return int(math.Round(m.percent / 100 * float64(m.width)))
}

// View renders the bar.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	filled := m.Filled()
	var b strings.Builder
	for i := 0; i < filled; i++ {
		c := m.colorAt(float64(i) / float64(max(m.width-1, 1)))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(m.fill))
	}
	if rest := m.width - filled; rest > 0 {
		b.WriteString(m.track.Render(strings.Repeat(m.fill, rest)))
	}
	return b.String()
}

// colorAt blends the gradient at position t in [0, 1].
func (m *Model) colorAt(t float64) colorful.Color {
	switch {
	case t <= 0:
		return m.from
	case t >= 1:
		return m.to
	case t < 0.5:
		return m.from.BlendLuv(m.via, t*2).Clamped()
	default:
		return m.via.BlendLuv(m.to, (t-0.5)*2).Clamped()
	}
}
