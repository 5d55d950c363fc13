// Package export writes a document as a standalone HTML page.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/longread/pkg/document"
	"tableflip.dev/longread/pkg/runner/source"
)

// Export renders Doc to the file at Path, or to Out when Path is empty.
type Export struct {
	Doc   source.Document
	Title string
	Path  string
	Out   io.Writer
}

// Do writes the page. Without a Title the front matter title is used.
func (e *Export) Do(_ context.Context) (err error) {
	title := e.Title
	if title == "" {
		title = e.Doc.Title
	}
	if e.Path == "" {
		out := e.Out
		if out == nil {
			out = color.Output
		}
		return document.ExportHTML(out, e.Doc.Text, title)
	}

	f, err := os.Create(e.Path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := document.ExportHTML(f, e.Doc.Text, title); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
