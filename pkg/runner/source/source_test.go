package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("# Intro\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Text != "# Intro\n" || doc.Path != path || doc.FromStdin() {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestLoadStdin(t *testing.T) {
	doc, err := Load(Stdin, strings.NewReader("# From pipe\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !doc.FromStdin() || doc.Text != "# From pipe\n" {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("", nil); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := Load(Stdin, nil); err == nil {
		t.Fatal("expected error without stdin")
	}
	_, err := Load(filepath.Join(t.TempDir(), "missing.md"), nil)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestParseFrontMatter(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantText  string
		wantTitle string
	}{{
		name:     "none",
		in:       "# Intro\n\nbody\n",
		wantText: "# Intro\n\nbody\n",
	}, {
		name:      "yaml",
		in:        "---\ntitle: Field Guide\n# not a heading\n---\n# Intro\n",
		wantText:  "# Intro\n",
		wantTitle: "Field Guide",
	}, {
		name:      "toml",
		in:        "+++\ntitle = \"Notes\"\n+++\n## Setup\n",
		wantText:  "## Setup\n",
		wantTitle: "Notes",
	}, {
		name:     "unterminated break",
		in:       "---\n# Intro\n",
		wantText: "---\n# Intro\n",
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse("doc.md", []byte(tt.in))
			if doc.Text != tt.wantText {
				t.Errorf("text = %q, want %q", doc.Text, tt.wantText)
			}
			if doc.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", doc.Title, tt.wantTitle)
			}
		})
	}
}
