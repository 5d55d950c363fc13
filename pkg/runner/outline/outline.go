// Package outline prints the heading outline of a document.
package outline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"tableflip.dev/longread/pkg/outline"
	"tableflip.dev/longread/pkg/printers"
	"tableflip.dev/longread/pkg/runner/source"
)

// Outline prints doc's outline as a table, or JSON.
type Outline struct {
	Doc    source.Document
	JSON   bool
	ShowID bool
	Out    io.Writer
}

type result struct {
	Path     string           `json:"path"`
	Headings outline.Headings `json:"headings"`
}

// Do extracts and prints the outline.
func (o *Outline) Do(_ context.Context) error {
	out := o.Out
	if out == nil {
		out = color.Output
	}
	headings := outline.Extract(o.Doc.Text)
	if headings == nil {
		headings = outline.Headings{}
	}

	if o.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result{Path: o.Doc.Path, Headings: headings}); err != nil {
			return fmt.Errorf("outline: encode: %w", err)
		}
		return nil
	}

	title := filepath.Base(o.Doc.Path)
	switch {
	case o.Doc.Title != "":
		title = o.Doc.Title
	case o.Doc.FromStdin():
		title = "stdin"
	}
	pp := printers.PrettyPrint{Out: out, ShowID: o.ShowID}
	_, _ = fmt.Fprintln(out, "")
	pp.Title(title, len(headings))
	pp.Outline(headings)
	return nil
}
