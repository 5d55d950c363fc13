package scrollsync

import (
	"log/slog"
	"time"

	"tableflip.dev/longread/pkg/outline"
)

// State is the lifecycle position of a Tracker.
type State int

const (
	// StateUninitialized means no non-empty outline was ever supplied.
	StateUninitialized State = iota
	// StateObserving means the tracker owns the current generation's
	// readiness poll or intersection subscription.
	StateObserving
	// StateTornDown is terminal.
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateObserving:
		return "observing"
	case StateTornDown:
		return "torn-down"
	default:
		return "unknown"
	}
}

// Tracker maintains the active heading: the topmost outline entry whose
// element intersects the viewport band.
type Tracker struct {
	surface   Surface
	scheduler Scheduler
	band      Band
	interval  time.Duration
	attempts  int
	log       *slog.Logger

	state      State
	generation uint64
	headings   outline.Headings
	active     string
	observed   []string

	observer   Subscription
	cancelPoll Cancel

	onActive func(id string)
}

// NewTracker returns an uninitialized tracker.
func NewTracker(surface Surface, scheduler Scheduler, opts Options) *Tracker {
	opts = opts.withDefaults()
	return &Tracker{
		surface:   surface,
		scheduler: scheduler,
		band:      opts.Band,
		interval:  opts.PollInterval,
		attempts:  opts.PollAttempts,
		log:       opts.Logger,
	}
}

// State returns the lifecycle state.
func (t *Tracker) State() State { return t.state }

// Generation returns the current outline generation.
func (t *Tracker) Generation() uint64 { return t.generation }

// Active returns the active heading id, or "" when none was seen yet.
func (t *Tracker) Active() string { return t.active }

// Headings returns the tracked outline.
func (t *Tracker) Headings() outline.Headings { return t.headings }

// Observed returns the ids bound by the current generation's subscription.
func (t *Tracker) Observed() []string { return t.observed }

// Replace installs a new outline. All work belonging to the previous
// generation is invalidated and released before the new generation starts
// waiting for its elements.
func (t *Tracker) Replace(headings outline.Headings) {
	if t.state == StateTornDown {
		return
	}
	t.generation++
	t.release()

	t.headings = headings.Clone()
	if t.active != "" && !t.headings.Contains(t.active) {
		t.setActive("")
	}
	if len(t.headings) == 0 {
		t.log.Debug("outline cleared", "generation", t.generation)
		return
	}

	t.state = StateObserving
	t.log.Debug("outline replaced", "generation", t.generation, "headings", len(t.headings))
	t.schedulePoll(t.generation, 1)
}

// Close stops all observation. The tracker cannot be reused.
func (t *Tracker) Close() {
	if t.state == StateTornDown {
		return
	}
	t.state = StateTornDown
	t.generation++
	t.release()
	t.log.Debug("tracker torn down", "generation", t.generation)
}

func (t *Tracker) current(gen uint64) bool {
	return t.state != StateTornDown && gen == t.generation
}

// release cancels the pending poll and the subscription together.
func (t *Tracker) release() {
	if t.cancelPoll != nil {
		t.cancelPoll()
		t.cancelPoll = nil
	}
	if t.observer != nil {
		t.observer.Disconnect()
		t.observer = nil
	}
	t.observed = nil
}

func (t *Tracker) schedulePoll(gen uint64, attempt int) {
	t.cancelPoll = t.scheduler.After(t.interval, func() {
		t.poll(gen, attempt)
	})
}

// poll waits until every heading has a rendered element, or the attempts
// run out, then binds whatever was found.
func (t *Tracker) poll(gen uint64, attempt int) {
	if !t.current(gen) {
		return
	}
	t.cancelPoll = nil

	found, missing := t.resolve()
	if missing > 0 && attempt < t.attempts {
		t.schedulePoll(gen, attempt+1)
		return
	}
	if missing > 0 {
		t.log.Debug("binding partial outline", "generation", gen, "found", len(found), "missing", missing)
	}
	t.bind(gen, found)
}

func (t *Tracker) resolve() (found []string, missing int) {
	seen := make(map[string]struct{}, len(t.headings))
	for _, id := range t.headings.IDs() {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := t.surface.ElementTopOffset(id); ok {
			found = append(found, id)
		} else {
			missing++
		}
	}
	return found, missing
}

func (t *Tracker) bind(gen uint64, ids []string) {
	if len(ids) == 0 {
		return
	}
	t.observed = ids
	t.observer = t.surface.ObserveIntersection(ids, t.band, func(entries []Intersection) {
		t.observe(gen, entries)
	})
	t.log.Debug("observing headings", "generation", gen, "count", len(ids))
}

// observe selects the topmost intersecting entry. Reports without one leave
// the active heading as it was.
func (t *Tracker) observe(gen uint64, entries []Intersection) {
	if !t.current(gen) {
		return
	}
	var (
		top   string
		found bool
		best  float64
	)
	for _, e := range entries {
		if !e.Intersecting {
			continue
		}
		if !found || e.Top < best {
			top, best, found = e.ID, e.Top, true
		}
	}
	if !found || !t.headings.Contains(top) {
		return
	}
	t.setActive(top)
}

func (t *Tracker) setActive(id string) {
	if id == t.active {
		return
	}
	t.active = id
	t.log.Debug("active heading", "id", id, "generation", t.generation)
	if t.onActive != nil {
		t.onActive(id)
	}
}
