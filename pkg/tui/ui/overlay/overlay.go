// Package overlay draws one rendered view on top of another.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Placement controls overlay alignment. Left and Top honor the margins.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
}

// Compose draws foreground over a width×height background. Cells of the
// background outside the foreground's box stay visible.
func Compose(background string, width, height int, foreground string, placement Placement) string {
	bg := normalize(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bg, "\n")
	}

	fg := strings.Split(foreground, "\n")
	fgWidth := 0
	for _, line := range fg {
		fgWidth = max(fgWidth, ansi.StringWidth(line))
	}
	fgWidth = min(fgWidth, width)
	fgHeight := min(len(fg), height)

	x, y := offsets(width, height, fgWidth, fgHeight, placement)
	for row := 0; row < fgHeight; row++ {
		base := bg[y+row]
		left := ansi.Truncate(base, x, "")
		right := ansi.Cut(base, x+fgWidth, width)
		bg[y+row] = left + pad(fg[row], fgWidth) + right
	}
	return strings.Join(bg, "\n")
}

func normalize(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = pad(lines[i], width)
	}
	return lines
}

func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}

func offsets(width, height, w, h int, p Placement) (int, int) {
	x := p.MarginX
	switch p.Horizontal {
	case lipgloss.Right:
		x = width - w - p.MarginX
	case lipgloss.Center:
		x = (width - w) / 2
	}
	y := p.MarginY
	switch p.Vertical {
	case lipgloss.Bottom:
		y = height - h - p.MarginY
	case lipgloss.Center:
		y = (height - h) / 2
	}
	return min(max(x, 0), width-w), min(max(y, 0), height-h)
}
