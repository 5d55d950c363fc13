package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/longread/pkg/runner/source"
)

func TestExportToWriter(t *testing.T) {
	var buf bytes.Buffer
	e := Export{Doc: source.Document{Text: "# Intro\n\nhello\n"}, Out: &buf}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(buf.String(), `id="intro"`) {
		t.Fatalf("missing heading id:\n%s", buf.String())
	}
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	e := Export{Doc: source.Document{Text: "# Intro\n"}, Title: "Guide", Path: path}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "<title>Guide</title>") {
		t.Fatalf("missing title:\n%s", data)
	}
}

func TestExportBadPath(t *testing.T) {
	e := Export{Doc: source.Document{Text: "# Intro\n"}, Path: filepath.Join(t.TempDir(), "missing", "out.html")}
	if err := e.Do(context.Background()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
