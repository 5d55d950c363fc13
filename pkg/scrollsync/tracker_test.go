package scrollsync

import (
	"reflect"
	"testing"

	"tableflip.dev/longread/pkg/outline"
)

const sample = "# Intro\n\ntext\n\n## Getting Started\n\nmore\n\n### Step 1: Setup!\n"

// renderAll gives every heading of sample a rendered element.
func renderAll(s *fakeSurface) {
	s.elements[outline.Slug("Intro")] = 0
	s.elements[outline.Slug("Getting Started")] = 400
	s.elements[outline.Slug("Step 1: Setup!")] = 900
}

func TestSampleHeadingIDs(t *testing.T) {
	want := outline.Headings{
		{ID: "intro", Text: "Intro", Level: 1},
		{ID: "getting-started", Text: "Getting Started", Level: 2},
		{ID: "step-1-setup", Text: "Step 1: Setup!", Level: 3},
	}
	if got := outline.Extract(sample); !reflect.DeepEqual(got, want) {
		t.Fatalf("Extract(sample) = %#v, want %#v", got, want)
	}
}

func newTestTracker(s *fakeSurface) (*Tracker, *manualScheduler) {
	sched := &manualScheduler{}
	return NewTracker(s, sched, Options{}), sched
}

func TestTrackerWaitsForElementsBeforeObserving(t *testing.T) {
	s := newFakeSurface()
	tr, sched := newTestTracker(s)

	tr.Replace(outline.Extract(sample))
	if len(s.observers) != 0 {
		t.Fatalf("observation must be deferred, got %d observers", len(s.observers))
	}

	sched.Advance(DefaultPollInterval)
	if len(s.observers) != 0 {
		t.Fatalf("observed before any element existed")
	}

	renderAll(s)
	sched.Advance(DefaultPollInterval)
	if len(s.observers) != 1 {
		t.Fatalf("expected one observer once elements exist, got %d", len(s.observers))
	}
	want := []string{"intro", "getting-started", "step-1-setup"}
	if got := firstObserver(t, s).ids; !reflect.DeepEqual(got, want) {
		t.Fatalf("observed ids = %v, want %v", got, want)
	}
	if firstObserver(t, s).band != DefaultBand {
		t.Fatalf("observer band = %+v, want %+v", firstObserver(t, s).band, DefaultBand)
	}
	if sched.Pending() != 0 {
		t.Fatalf("poll still pending after binding")
	}
}

func TestTrackerBindsFoundElementsWhenAttemptsRunOut(t *testing.T) {
	s := newFakeSurface()
	s.elements["intro"] = 0
	tr, sched := newTestTracker(s)

	tr.Replace(outline.Extract(sample))
	for i := 0; i < DefaultPollAttempts-1; i++ {
		sched.Advance(DefaultPollInterval)
		if len(s.observers) != 0 {
			t.Fatalf("bound on attempt %d while elements were missing", i+1)
		}
	}
	sched.Advance(DefaultPollInterval)
	if len(s.observers) != 1 {
		t.Fatalf("expected partial bind after %d attempts", DefaultPollAttempts)
	}
	if got := firstObserver(t, s).ids; !reflect.DeepEqual(got, []string{"intro"}) {
		t.Fatalf("observed ids = %v", got)
	}
	if !reflect.DeepEqual(tr.Observed(), []string{"intro"}) {
		t.Fatalf("Observed() = %v", tr.Observed())
	}
}

func TestTrackerSelectsTopmostIntersecting(t *testing.T) {
	s := newFakeSurface()
	renderAll(s)
	tr, sched := newTestTracker(s)
	tr.Replace(outline.Extract(sample))
	sched.Advance(DefaultPollInterval)

	s.emit(
		Intersection{ID: "getting-started", Top: 80, Intersecting: true},
		Intersection{ID: "intro", Top: 55, Intersecting: true},
		Intersection{ID: "step-1-setup", Top: 10, Intersecting: false},
	)
	if got := tr.Active(); got != "intro" {
		t.Fatalf("Active() = %q, want intro", got)
	}

	s.emit(Intersection{ID: "step-1-setup", Top: 60, Intersecting: true})
	if got := tr.Active(); got != "step-1-setup" {
		t.Fatalf("Active() = %q, want step-1-setup", got)
	}
}

func TestTrackerKeepsActiveWhenNothingIntersects(t *testing.T) {
	s := newFakeSurface()
	renderAll(s)
	tr, sched := newTestTracker(s)
	tr.Replace(outline.Extract(sample))
	sched.Advance(DefaultPollInterval)

	s.emit(Intersection{ID: "getting-started", Top: 60, Intersecting: true})
	s.emit(
		Intersection{ID: "getting-started", Top: -20, Intersecting: false},
		Intersection{ID: "intro", Top: -400, Intersecting: false},
	)
	s.emit()
	if got := tr.Active(); got != "getting-started" {
		t.Fatalf("Active() = %q, want sticky getting-started", got)
	}
}

func TestTrackerReleasesPreviousGenerationFirst(t *testing.T) {
	s := newFakeSurface()
	renderAll(s)
	tr, sched := newTestTracker(s)

	tr.Replace(outline.Extract(sample))
	sched.Advance(DefaultPollInterval)
	first := tr.Generation()

	tr.Replace(outline.Extract(sample + "\n## Appendix\n"))
	if s.disconnects != 1 {
		t.Fatalf("expected previous observer disconnected on replace, got %d", s.disconnects)
	}
	if tr.Generation() != first+1 {
		t.Fatalf("generation = %d, want %d", tr.Generation(), first+1)
	}

	s.elements["appendix"] = 1500
	sched.Advance(DefaultPollInterval)

	want := []string{"observe", "disconnect", "observe"}
	if !reflect.DeepEqual(s.calls, want) {
		t.Fatalf("surface calls = %v, want %v", s.calls, want)
	}
	if n := len(s.active()); n != 1 {
		t.Fatalf("expected exactly one connected observer, got %d", n)
	}
}

func TestTrackerDiscardsStaleCallbacks(t *testing.T) {
	s := newFakeSurface()
	renderAll(s)
	tr, sched := newTestTracker(s)

	tr.Replace(outline.Extract(sample))
	sched.Advance(DefaultPollInterval)
	stale := firstObserver(t, s).fn

	tr.Replace(outline.Extract(sample))
	sched.Advance(DefaultPollInterval)
	s.emit(Intersection{ID: "intro", Top: 60, Intersecting: true})

	stale([]Intersection{{ID: "step-1-setup", Top: 0, Intersecting: true}})
	if got := tr.Active(); got != "intro" {
		t.Fatalf("stale callback changed the active heading to %q", got)
	}
}

func TestTrackerCancelsPendingPollOnReplace(t *testing.T) {
	s := newFakeSurface()
	renderAll(s)
	tr, sched := newTestTracker(s)

	tr.Replace(outline.Extract(sample))
	tr.Replace(outline.Extract(sample))
	if sched.Pending() != 1 {
		t.Fatalf("expected only the newest poll pending, got %d", sched.Pending())
	}
	sched.Advance(DefaultPollInterval * 4)
	if len(s.observers) != 1 {
		t.Fatalf("expected a single observer, got %d", len(s.observers))
	}
	if s.disconnects != 0 {
		t.Fatalf("nothing was bound before the replace, got %d disconnects", s.disconnects)
	}
}

func TestTrackerStateTransitions(t *testing.T) {
	s := newFakeSurface()
	renderAll(s)
	tr, sched := newTestTracker(s)

	if tr.State() != StateUninitialized {
		t.Fatalf("initial state = %v", tr.State())
	}
	tr.Replace(nil)
	if tr.State() != StateUninitialized {
		t.Fatalf("empty outline must not start observing, state = %v", tr.State())
	}
	sched.Advance(DefaultPollInterval)
	if len(s.observers) != 0 {
		t.Fatalf("empty outline created an observer")
	}

	tr.Replace(outline.Extract(sample))
	if tr.State() != StateObserving {
		t.Fatalf("state = %v, want observing", tr.State())
	}
	gen := tr.Generation()
	sched.Advance(DefaultPollInterval)

	tr.Replace(nil)
	if tr.State() != StateObserving || tr.Generation() != gen+1 {
		t.Fatalf("state = %v generation = %d", tr.State(), tr.Generation())
	}
	if len(s.active()) != 0 {
		t.Fatalf("observer left connected after empty outline")
	}

	tr.Close()
	if tr.State() != StateTornDown {
		t.Fatalf("state = %v, want torn-down", tr.State())
	}
	tr.Replace(outline.Extract(sample))
	sched.Advance(DefaultPollInterval * 10)
	if tr.State() != StateTornDown {
		t.Fatalf("torn-down tracker re-entered %v", tr.State())
	}
	if len(s.observers) != 1 {
		t.Fatalf("torn-down tracker observed again")
	}
}

func TestTrackerCloseReleasesEverything(t *testing.T) {
	s := newFakeSurface()
	renderAll(s)
	tr, sched := newTestTracker(s)

	tr.Replace(outline.Extract(sample))
	sched.Advance(DefaultPollInterval)
	s.emit(Intersection{ID: "intro", Top: 60, Intersecting: true})
	stale := firstObserver(t, s).fn

	tr.Close()
	tr.Close()
	if s.disconnects != 1 {
		t.Fatalf("disconnects = %d, want 1", s.disconnects)
	}
	stale([]Intersection{{ID: "getting-started", Top: 0, Intersecting: true}})
	if tr.Active() != "intro" {
		t.Fatalf("callback after teardown mutated state: %q", tr.Active())
	}
}

func TestTrackerClosePendingPoll(t *testing.T) {
	s := newFakeSurface()
	renderAll(s)
	tr, sched := newTestTracker(s)

	tr.Replace(outline.Extract(sample))
	tr.Close()
	sched.Advance(DefaultPollInterval * 10)
	if len(s.observers) != 0 {
		t.Fatalf("deferred setup ran after teardown")
	}
}

func TestTrackerClearsActiveMissingFromNewOutline(t *testing.T) {
	s := newFakeSurface()
	renderAll(s)
	tr, sched := newTestTracker(s)
	tr.Replace(outline.Extract(sample))
	sched.Advance(DefaultPollInterval)
	s.emit(Intersection{ID: "getting-started", Top: 60, Intersecting: true})

	tr.Replace(outline.Extract("# Intro\n## Getting Started\n"))
	if tr.Active() != "getting-started" {
		t.Fatalf("active heading still present should survive, got %q", tr.Active())
	}

	tr.Replace(outline.Extract("# Intro\n"))
	if tr.Active() != "" {
		t.Fatalf("active heading not in outline must be cleared, got %q", tr.Active())
	}
}

func TestTrackerObservesDuplicateIDsOnce(t *testing.T) {
	s := newFakeSurface()
	s.elements["notes"] = 100
	tr, sched := newTestTracker(s)

	tr.Replace(outline.Extract("## Notes\n\n## Notes\n"))
	sched.Advance(DefaultPollInterval)
	if len(s.observers) != 1 {
		t.Fatalf("expected one observer")
	}
	if got := firstObserver(t, s).ids; !reflect.DeepEqual(got, []string{"notes"}) {
		t.Fatalf("observed ids = %v", got)
	}
}

func TestTrackerIgnoresUnknownIDs(t *testing.T) {
	s := newFakeSurface()
	renderAll(s)
	tr, sched := newTestTracker(s)
	tr.Replace(outline.Extract(sample))
	sched.Advance(DefaultPollInterval)

	s.emit(Intersection{ID: "not-a-heading", Top: 0, Intersecting: true})
	if tr.Active() != "" {
		t.Fatalf("unknown id became active: %q", tr.Active())
	}
}
