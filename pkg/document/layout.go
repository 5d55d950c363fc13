// Package document turns markdown into terminal lines and records where
// each outline heading landed.
package document

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Anchor is the rendered position of one heading.
type Anchor struct {
	ID    string
	Level int
	// Row is the first rendered line of the heading.
	Row    int
	Height int
}

// Layout is a rendered document.
type Layout struct {
	Lines   []string
	Anchors []Anchor
	Width   int

	index map[string]int
}

func newLayout(width int) *Layout {
	return &Layout{Width: width, index: map[string]int{}}
}

// Height returns the number of rendered rows.
func (l *Layout) Height() int {
	if l == nil {
		return 0
	}
	return len(l.Lines)
}

// Anchor returns the anchor for id. When several headings share an id the
// first one wins.
func (l *Layout) Anchor(id string) (Anchor, bool) {
	if l == nil {
		return Anchor{}, false
	}
	i, ok := l.index[id]
	if !ok {
		return Anchor{}, false
	}
	return l.Anchors[i], true
}

// Slice returns rows [from, from+n), padding past the end with empty lines.
func (l *Layout) Slice(from, n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		if row := from + i; row >= 0 && row < l.Height() {
			out[i] = l.Lines[row]
		}
	}
	return out
}

func (l *Layout) addAnchor(a Anchor) {
	if _, dup := l.index[a.ID]; !dup {
		l.index[a.ID] = len(l.Anchors)
	}
	l.Anchors = append(l.Anchors, a)
}

// appendSection adds a rendered section. When anchored, the section's first
// non-blank lines up to the next blank line are the heading block.
func (l *Layout) appendSection(rendered string, anchor *Anchor) {
	lines := trimBlank(strings.Split(strings.TrimRight(rendered, "\n"), "\n"))
	if len(lines) == 0 {
		return
	}
	if l.Height() > 0 {
		l.Lines = append(l.Lines, "")
	}
	if anchor != nil {
		a := *anchor
		a.Row = l.Height()
		a.Height = 0
		for _, line := range lines {
			if blank(line) {
				break
			}
			a.Height++
		}
		l.addAnchor(a)
	}
	l.Lines = append(l.Lines, lines...)
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && blank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && blank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func blank(line string) bool {
	return strings.TrimSpace(ansi.Strip(line)) == ""
}
