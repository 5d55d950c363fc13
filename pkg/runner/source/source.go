// Package source loads the markdown a command operates on.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/adrg/frontmatter"
	"github.com/mitchellh/go-homedir"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Document is loaded markdown.
type Document struct {
	// Path is the expanded file path, or Stdin.
	Path string
	// Text is the markdown body with any front matter removed.
	Text string
	// Title comes from the front matter's title key.
	Title string
}

// FromStdin reports whether the document was read from standard input.
func (d Document) FromStdin() bool { return d.Path == Stdin }

// Load reads path, or stdin when path is "-". A leading ~ is expanded.
func Load(path string, stdin io.Reader) (Document, error) {
	if path == "" {
		return Document{}, errors.New("source: no file given")
	}
	if path == Stdin {
		if stdin == nil {
			return Document{}, errors.New("source: stdin unavailable")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return Document{}, fmt.Errorf("source: read stdin: %w", err)
		}
		return Parse(Stdin, data), nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Document{}, fmt.Errorf("source: expand %s: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return Document{}, fmt.Errorf("source: %w", err)
	}
	return Parse(expanded, data), nil
}

type matter struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// Parse splits YAML, TOML or JSON front matter from data. Text that only
// looks like front matter (a leading thematic break, say) is kept whole.
func Parse(path string, data []byte) Document {
	var fm matter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return Document{Path: path, Text: string(data)}
	}
	return Document{Path: path, Text: string(body), Title: fm.Title}
}
