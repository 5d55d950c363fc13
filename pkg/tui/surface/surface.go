// Package surface renders a document.Layout into a fixed number of terminal
// rows and exposes it to the scroll engine.
package surface

import (
	"math"
	"sort"
	"time"

	"tableflip.dev/longread/pkg/document"
	"tableflip.dev/longread/pkg/scrollsync"
)

const (
	// DefaultUnitsPerRow maps one terminal row to engine units.
	DefaultUnitsPerRow = 20
	// FrameInterval is the delay between smooth-scroll frames.
	FrameInterval = 16 * time.Millisecond
)

// Surface implements scrollsync.Surface for a terminal viewport. Offsets are
// kept in rows and reported in units.
type Surface struct {
	scheduler scrollsync.Scheduler
	unit      float64

	layout *document.Layout
	height int
	offset int

	target      int
	cancelFrame scrollsync.Cancel

	observers map[int]*observer
	listeners map[int]func()
	nextID    int
}

type observer struct {
	ids   []string
	band  scrollsync.Band
	fn    func([]scrollsync.Intersection)
	state map[string]bool
	ready bool
}

// New returns an empty surface.
func New(scheduler scrollsync.Scheduler, unitsPerRow float64) *Surface {
	if unitsPerRow <= 0 {
		unitsPerRow = DefaultUnitsPerRow
	}
	return &Surface{
		scheduler: scheduler,
		unit:      unitsPerRow,
		observers: map[int]*observer{},
		listeners: map[int]func(){},
	}
}

// SetLayout swaps the rendered document, keeping the offset when possible.
func (s *Surface) SetLayout(layout *document.Layout) {
	s.layout = layout
	s.stopAnimation()
	s.moveTo(s.offset, true)
}

// Layout returns the rendered document.
func (s *Surface) Layout() *document.Layout { return s.layout }

// SetHeight sets the number of visible rows.
func (s *Surface) SetHeight(rows int) {
	s.height = max(rows, 0)
	s.moveTo(s.offset, true)
}

// Height returns the number of visible rows.
func (s *Surface) Height() int { return s.height }

// Offset returns the first visible row.
func (s *Surface) Offset() int { return s.offset }

// Animating reports whether a smooth scroll is in flight.
func (s *Surface) Animating() bool { return s.cancelFrame != nil }

// Lines returns the visible rows.
func (s *Surface) Lines() []string {
	if s.layout == nil {
		return make([]string, s.height)
	}
	return s.layout.Slice(s.offset, s.height)
}

// ScrollBy moves the viewport by rows immediately, interrupting any smooth
// scroll the way manual scrolling does.
func (s *Surface) ScrollBy(rows int) {
	s.stopAnimation()
	s.moveTo(s.offset+rows, false)
}

// ScrollToRow jumps to row immediately.
func (s *Surface) ScrollToRow(row int) {
	s.stopAnimation()
	s.moveTo(row, false)
}

// MaxOffset returns the last row the viewport can start at.
func (s *Surface) MaxOffset() int {
	return max(s.layout.Height()-s.height, 0)
}

// ScrollOffset implements scrollsync.Surface.
func (s *Surface) ScrollOffset() float64 { return float64(s.offset) * s.unit }

// DocumentHeight implements scrollsync.Surface.
func (s *Surface) DocumentHeight() float64 { return float64(s.layout.Height()) * s.unit }

// ViewportHeight implements scrollsync.Surface.
func (s *Surface) ViewportHeight() float64 { return float64(s.height) * s.unit }

// ElementTopOffset implements scrollsync.Surface.
func (s *Surface) ElementTopOffset(id string) (float64, bool) {
	a, ok := s.layout.Anchor(id)
	if !ok {
		return 0, false
	}
	return float64(a.Row) * s.unit, true
}

// ScrollTo implements scrollsync.Surface. Animated scrolls ease out over
// several frames; a new target replaces the one in flight.
func (s *Surface) ScrollTo(offset float64, animated bool) {
	row := s.clamp(int(math.Round(offset / s.unit)))
	if !animated || s.scheduler == nil {
		s.stopAnimation()
		s.moveTo(row, false)
		return
	}
	s.target = row
	if row == s.offset {
		s.stopAnimation()
		return
	}
	if s.cancelFrame == nil {
		s.scheduleFrame()
	}
}

func (s *Surface) scheduleFrame() {
	s.cancelFrame = s.scheduler.After(FrameInterval, s.frame)
}

func (s *Surface) frame() {
	s.cancelFrame = nil
	s.target = s.clamp(s.target)
	delta := s.target - s.offset
	if delta == 0 {
		return
	}
	step := delta / 4
	if step == 0 {
		step = delta / abs(delta)
	}
	s.moveTo(s.offset+step, false)
	if s.offset != s.target && s.cancelFrame == nil {
		s.scheduleFrame()
	}
}

func (s *Surface) stopAnimation() {
	if s.cancelFrame != nil {
		s.cancelFrame()
		s.cancelFrame = nil
	}
}

func (s *Surface) clamp(row int) int {
	return min(max(row, 0), s.MaxOffset())
}

// moveTo sets the offset. Listeners and observers run when the offset moved
// or when force is set (layout or size changes).
func (s *Surface) moveTo(row int, force bool) {
	row = s.clamp(row)
	if row == s.offset && !force {
		return
	}
	s.offset = row
	for _, id := range sortedKeys(s.listeners) {
		if fn, ok := s.listeners[id]; ok {
			fn()
		}
	}
	for _, id := range sortedKeys(s.observers) {
		if o, ok := s.observers[id]; ok && o.ready {
			s.report(o, false)
		}
	}
}

// OnScroll implements scrollsync.Surface.
func (s *Surface) OnScroll(fn func()) scrollsync.Subscription {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return scrollsync.SubscriptionFunc(func() { delete(s.listeners, id) })
}

// ObserveIntersection implements scrollsync.Surface. The initial report is
// delivered on the next scheduler turn, later reports only carry targets
// whose state changed.
func (s *Surface) ObserveIntersection(ids []string, band scrollsync.Band, fn func([]scrollsync.Intersection)) scrollsync.Subscription {
	id := s.nextID
	s.nextID++
	o := &observer{
		ids:   append([]string(nil), ids...),
		band:  band,
		fn:    fn,
		state: map[string]bool{},
	}
	s.observers[id] = o

	var cancel scrollsync.Cancel
	initial := func() {
		if _, ok := s.observers[id]; !ok {
			return
		}
		o.ready = true
		s.report(o, true)
	}
	if s.scheduler != nil {
		cancel = s.scheduler.After(0, initial)
	} else {
		initial()
	}
	return scrollsync.SubscriptionFunc(func() {
		if cancel != nil {
			cancel()
		}
		delete(s.observers, id)
	})
}

// Observers returns the number of live intersection observers.
func (s *Surface) Observers() int { return len(s.observers) }

func (s *Surface) report(o *observer, all bool) {
	var entries []scrollsync.Intersection
	viewport := s.ViewportHeight()
	for _, id := range o.ids {
		entry := scrollsync.Intersection{ID: id}
		if a, ok := s.layout.Anchor(id); ok {
			entry.Top = float64(a.Row-s.offset) * s.unit
			bottom := entry.Top + float64(max(a.Height, 1))*s.unit
			entry.Intersecting = o.band.Intersects(entry.Top, bottom, viewport)
		}
		prev, seen := o.state[id]
		o.state[id] = entry.Intersecting
		if all || !seen || prev != entry.Intersecting {
			entries = append(entries, entry)
		}
	}
	if len(entries) > 0 {
		o.fn(entries)
	}
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
