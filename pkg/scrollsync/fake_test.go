package scrollsync

import (
	"sort"
	"testing"
	"time"
)

type scrollCall struct {
	offset   float64
	animated bool
}

type fakeObserver struct {
	ids       []string
	band      Band
	fn        func([]Intersection)
	connected bool
}

// fakeSurface records every interaction the engine has with the rendered
// document.
type fakeSurface struct {
	offset     float64
	docHeight  float64
	viewHeight float64
	elements   map[string]float64

	calls       []string
	observers   []*fakeObserver
	scrolls     []scrollCall
	disconnects int

	listeners map[int]func()
	nextID    int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		docHeight:  2000,
		viewHeight: 500,
		elements:   map[string]float64{},
		listeners:  map[int]func(){},
	}
}

func (f *fakeSurface) ScrollOffset() float64   { return f.offset }
func (f *fakeSurface) DocumentHeight() float64 { return f.docHeight }
func (f *fakeSurface) ViewportHeight() float64 { return f.viewHeight }

func (f *fakeSurface) ElementTopOffset(id string) (float64, bool) {
	top, ok := f.elements[id]
	return top, ok
}

func (f *fakeSurface) ScrollTo(offset float64, animated bool) {
	f.scrolls = append(f.scrolls, scrollCall{offset: offset, animated: animated})
	f.setOffset(offset)
}

func (f *fakeSurface) setOffset(offset float64) {
	f.offset = offset
	ids := make([]int, 0, len(f.listeners))
	for id := range f.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		f.listeners[id]()
	}
}

func (f *fakeSurface) ObserveIntersection(ids []string, band Band, fn func([]Intersection)) Subscription {
	o := &fakeObserver{ids: append([]string(nil), ids...), band: band, fn: fn, connected: true}
	f.observers = append(f.observers, o)
	f.calls = append(f.calls, "observe")
	return SubscriptionFunc(func() {
		if !o.connected {
			return
		}
		o.connected = false
		f.disconnects++
		f.calls = append(f.calls, "disconnect")
	})
}

func (f *fakeSurface) OnScroll(fn func()) Subscription {
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	return SubscriptionFunc(func() { delete(f.listeners, id) })
}

// firstObserver returns the first observer registered on f.
func firstObserver(t *testing.T, f *fakeSurface) *fakeObserver {
	t.Helper()
	if len(f.observers) == 0 {
		t.Fatal("no observer registered")
	}
	return f.observers[0]
}

// active returns the observers that are still connected.
func (f *fakeSurface) active() []*fakeObserver {
	var out []*fakeObserver
	for _, o := range f.observers {
		if o.connected {
			out = append(out, o)
		}
	}
	return out
}

// emit delivers entries to the connected observers.
func (f *fakeSurface) emit(entries ...Intersection) {
	for _, o := range f.active() {
		o.fn(entries)
	}
}

type task struct {
	at        time.Duration
	seq       int
	fn        func()
	cancelled bool
	done      bool
}

// manualScheduler runs deferred work only when the test advances its clock.
type manualScheduler struct {
	now   time.Duration
	seq   int
	tasks []*task
}

func (s *manualScheduler) After(d time.Duration, fn func()) Cancel {
	s.seq++
	t := &task{at: s.now + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return func() { t.cancelled = true }
}

func (s *manualScheduler) Advance(d time.Duration) {
	deadline := s.now + d
	for {
		next := s.nextDue(deadline)
		if next == nil {
			break
		}
		s.now = next.at
		next.done = true
		next.fn()
	}
	s.now = deadline
}

func (s *manualScheduler) nextDue(deadline time.Duration) *task {
	var best *task
	for _, t := range s.tasks {
		if t.done || t.cancelled || t.at > deadline {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *manualScheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.done && !t.cancelled {
			n++
		}
	}
	return n
}
