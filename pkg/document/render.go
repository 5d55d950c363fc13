package document

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/longread/pkg/outline"
)

// Styles accepted by Render.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

// Options controls rendering.
type Options struct {
	Width int
	Style string
}

const minWidth = 20

// Render renders src with glamour, one section per heading, so that every
// rank 1-3 heading gets an anchor at a known row.
func Render(src string, opts Options) (*Layout, error) {
	width := max(opts.Width, minWidth)
	renderer, err := newRenderer(opts.Style, width)
	if err != nil {
		return nil, fmt.Errorf("document: create renderer: %w", err)
	}

	raw := []byte(src)
	headings := sourceHeadings(parse(newMarkdown(), raw), raw)

	layout := newLayout(width)
	prev := 0
	var anchor *Anchor
	flush := func(end int) error {
		section := strings.TrimSpace(string(raw[prev:end]))
		if section == "" {
			return nil
		}
		out, err := renderer.Render(section)
		if err != nil {
			return fmt.Errorf("document: render section at byte %d: %w", prev, err)
		}
		layout.appendSection(out, anchor)
		return nil
	}
	for _, h := range headings {
		if err := flush(h.Start); err != nil {
			return nil, err
		}
		prev = h.Start
		anchor = &Anchor{ID: h.ID, Level: h.Level}
	}
	if err := flush(len(raw)); err != nil {
		return nil, err
	}
	return layout, nil
}

func newRenderer(style string, width int) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch style {
	case "", StyleAuto:
		opts = append(opts, glamour.WithAutoStyle())
	default:
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	return glamour.NewTermRenderer(opts...)
}

// Plain lays out src without markdown rendering. It is the fallback used
// when Render fails; headings are anchored where the outline finds them.
func Plain(src string, width int) *Layout {
	width = max(width, minWidth)
	layout := newLayout(width)
	for _, line := range strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n") {
		if found := outline.Extract(line); len(found) == 1 {
			layout.addAnchor(Anchor{ID: found[0].ID, Level: found[0].Level, Row: layout.Height(), Height: 1})
		}
		wrapped := wordwrap.String(line, width)
		layout.Lines = append(layout.Lines, strings.Split(wrapped, "\n")...)
	}
	return layout
}
