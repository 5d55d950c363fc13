// Package printers renders outlines for the terminal.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/longread/pkg/outline"
)

// PrettyPrint writes human-friendly output to Out.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

// Title prints a bold, underlined title followed by a heading count.
func (pp *PrettyPrint) Title(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " heading")
	default:
		_, _ = c.Fprintln(pp.out(), " headings")
	}
}

// Outline prints one row per heading, indented by level.
func (pp *PrettyPrint) Outline(headings outline.Headings) {
	if len(headings) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow(bold.Sprint("Level"), bold.Sprint("Heading"), bold.Sprint("ID"))
	} else {
		tbl.AddRow(bold.Sprint("Level"), bold.Sprint("Heading"))
	}
	for _, h := range headings {
		text := strings.Repeat("  ", h.Level-1) + h.Text
		marker := strings.Repeat("#", h.Level)
		if pp.ShowID {
			tbl.AddRow(marker, text, faint.Sprint("#"+h.ID))
		} else {
			tbl.AddRow(marker, text)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}
