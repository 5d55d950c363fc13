package scrollsync

import (
	"math"
	"testing"
)

func TestEngineSetTextBuildsOutline(t *testing.T) {
	s := newFakeSurface()
	renderAll(s)
	sched := &manualScheduler{}
	e := New(s, sched, Options{})
	defer e.Close()

	e.SetText(sample)
	if got := len(e.Outline()); got != 3 {
		t.Fatalf("outline has %d entries, want 3", got)
	}
	sched.Advance(DefaultPollInterval)
	if len(s.active()) != 1 {
		t.Fatalf("expected engine to observe headings")
	}

	gen := e.Snapshot().Generation
	e.SetText(sample)
	if e.Snapshot().Generation != gen {
		t.Fatalf("identical text must not restart tracking")
	}

	e.SetText(sample + "\nmore text\n")
	if e.Snapshot().Generation != gen+1 {
		t.Fatalf("changed text must restart tracking")
	}
	if s.disconnects != 1 {
		t.Fatalf("disconnects = %d, want 1", s.disconnects)
	}
}

func TestEngineEmptyOutline(t *testing.T) {
	s := newFakeSurface()
	sched := &manualScheduler{}
	e := New(s, sched, Options{})

	e.SetText("no headings here")
	sched.Advance(DefaultPollInterval * 20)
	snap := e.Snapshot()
	if len(snap.Outline) != 0 || snap.Active != "" || snap.State != StateUninitialized {
		t.Fatalf("snapshot = %+v", snap)
	}
	if len(s.observers) != 0 {
		t.Fatalf("empty outline must not observe")
	}
}

func TestEngineReportsChanges(t *testing.T) {
	s := newFakeSurface()
	renderAll(s)
	sched := &manualScheduler{}

	var snaps []Snapshot
	e := New(s, sched, Options{OnChange: func(snap Snapshot) { snaps = append(snaps, snap) }})

	e.SetText(sample)
	sched.Advance(DefaultPollInterval)
	s.emit(Intersection{ID: "intro", Top: 55, Intersecting: true})
	e.ScrollToHeading("step-1-setup")

	if len(snaps) < 3 {
		t.Fatalf("expected change notifications, got %d", len(snaps))
	}
	last := snaps[len(snaps)-1]
	if last.Signal.Progress == 0 || !last.Signal.ShowBackToTop {
		t.Fatalf("last snapshot did not carry the new scroll signal: %+v", last.Signal)
	}
	if e.Active() != "intro" {
		t.Fatalf("Active() = %q", e.Active())
	}
	if s.offset != 900-DefaultHeadingMargin {
		t.Fatalf("offset = %v", s.offset)
	}
}

func TestEngineClose(t *testing.T) {
	s := newFakeSurface()
	renderAll(s)
	sched := &manualScheduler{}
	e := New(s, sched, Options{})

	e.SetText(sample)
	sched.Advance(DefaultPollInterval)
	e.Close()

	if s.disconnects != 1 || len(s.listeners) != 0 {
		t.Fatalf("close left subscriptions: disconnects=%d listeners=%d", s.disconnects, len(s.listeners))
	}
	e.SetText("# Other\n")
	e.ScrollToTop()
	e.ScrollToHeading("intro")
	if len(s.scrolls) != 0 {
		t.Fatalf("closed engine scrolled")
	}
	if e.Snapshot().State != StateTornDown {
		t.Fatalf("state = %v", e.Snapshot().State)
	}
}

func TestBandIntersects(t *testing.T) {
	b := DefaultBand
	top, bottom := b.Bounds(1000)
	if math.Abs(top-100) > 1e-9 || math.Abs(bottom-200) > 1e-9 {
		t.Fatalf("Bounds(1000) = %v, %v", top, bottom)
	}
	tests := []struct {
		top, bottom float64
		want        bool
	}{
		{top: 0, bottom: 40, want: false},
		{top: 90, bottom: 130, want: true},
		{top: 150, bottom: 190, want: true},
		{top: 199, bottom: 240, want: true},
		{top: 200, bottom: 240, want: false},
		{top: 60, bottom: 100, want: false},
	}
	for _, tt := range tests {
		if got := b.Intersects(tt.top, tt.bottom, 1000); got != tt.want {
			t.Errorf("Intersects(%v, %v) = %v, want %v", tt.top, tt.bottom, got, tt.want)
		}
	}
	if b.Intersects(0, 10, 0) {
		t.Fatalf("zero-height viewport cannot intersect")
	}
}
