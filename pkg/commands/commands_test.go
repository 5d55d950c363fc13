package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LONGREAD_CONFIG_PATH", t.TempDir())
	oo.JSON = false
	color.NoColor = true

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestOutlineCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.md")
	if err := os.WriteFile(path, []byte("# Intro\n## Getting Started\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := execute(t, "", "outline", "--show-id", path)
	if err != nil {
		t.Fatalf("outline: %v", err)
	}
	for _, want := range []string{"guide.md - 2 headings", "Getting Started", "#getting-started"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestOutlineJSONFromStdin(t *testing.T) {
	out, err := execute(t, "# Piped\n", "outline", "--json", "-")
	if err != nil {
		t.Fatalf("outline: %v", err)
	}
	if !strings.Contains(out, `"id": "piped"`) || !strings.Contains(out, `"path": "-"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestExportCommand(t *testing.T) {
	out, err := execute(t, "# Intro\n\nhello\n", "export", "--title", "Piped", "-")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "<title>Piped</title>") || !strings.Contains(out, `id="intro"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestOutlineMissingFile(t *testing.T) {
	if _, err := execute(t, "", "outline", filepath.Join(t.TempDir(), "missing.md")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Fatalf("unexpected version output %q", out)
	}
}
