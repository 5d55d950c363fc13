package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileEmitsChangeForTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# One\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := File(ctx, path, Options{Delay: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(path, []byte("# Two\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case ev := <-ch:
		if ev.Type != EventChanged {
			t.Fatalf("event type = %v, want changed", ev.Type)
		}
		if filepath.Base(ev.Path) != "doc.md" {
			t.Fatalf("event for unexpected path %q", ev.Path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestFileClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := File(ctx, path, Options{})
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()
	select {
	case _, ok := <-ch:
		for ok {
			_, ok = <-ch
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestFileRejectsMissingDirectory(t *testing.T) {
	_, err := File(context.Background(), filepath.Join(t.TempDir(), "nope", "doc.md"), Options{})
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestThrottleCoalescesBurst(t *testing.T) {
	var mu sync.Mutex
	var got []Event
	send := func(ev Event) {
		mu.Lock()
		got = append(got, ev)
		mu.Unlock()
	}
	th := newEventThrottle(20 * time.Millisecond)
	th.Enqueue(Event{Type: EventChanged, Path: "a"}, send)
	th.Enqueue(Event{Type: EventRemoved, Path: "a"}, send)
	th.Enqueue(Event{Type: EventChanged, Path: "a"}, send)

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("sent %d events, want 1", len(got))
	}
	if got[0].Type != EventChanged {
		t.Fatalf("sent %v, want latest (changed)", got[0].Type)
	}
}
