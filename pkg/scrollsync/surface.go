// Package scrollsync keeps a document outline, the reader's scroll position
// and the reading-progress indicator in sync.
//
// Everything in this package runs on a single event loop. Rendering, scroll
// state and element lookup are reached through an injected Surface, deferred
// work through an injected Scheduler.
package scrollsync

import "time"

// Surface is the rendered document the engine scrolls and observes. Offsets
// are expressed in surface units measured from the top of the document.
type Surface interface {
	ScrollOffset() float64
	DocumentHeight() float64
	ViewportHeight() float64
	// ElementTopOffset returns the top of the element rendered for id.
	ElementTopOffset(id string) (float64, bool)
	// ScrollTo moves the viewport. An animated call made while a previous
	// animation is in flight retargets it.
	ScrollTo(offset float64, animated bool)
	// ObserveIntersection reports visibility changes of the elements bound
	// to ids relative to band. The first report covers every target.
	ObserveIntersection(ids []string, band Band, fn func([]Intersection)) Subscription
	// OnScroll registers a passive listener invoked after every offset change.
	OnScroll(fn func()) Subscription
}

// Subscription releases a registration made on a Surface. Disconnect must
// be safe to call more than once.
type Subscription interface {
	Disconnect()
}

// SubscriptionFunc adapts a func to Subscription.
type SubscriptionFunc func()

// Disconnect implements Subscription.
func (f SubscriptionFunc) Disconnect() {
	if f != nil {
		f()
	}
}

// Intersection is one observed element's state.
type Intersection struct {
	ID string
	// Top is the element's top relative to the viewport top.
	Top          float64
	Intersecting bool
}

// Band is the part of the viewport in which elements count as in view,
// given as the fractions of viewport height cut from the top and bottom.
type Band struct {
	Top    float64
	Bottom float64
}

// IsZero reports whether no band was configured.
func (b Band) IsZero() bool {
	return b.Top == 0 && b.Bottom == 0
}

// Bounds returns the band's top and bottom edges relative to the viewport.
func (b Band) Bounds(viewportHeight float64) (top, bottom float64) {
	return viewportHeight * b.Top, viewportHeight * (1 - b.Bottom)
}

// Intersects reports whether an element spanning [top, bottom) relative to
// the viewport overlaps the band.
func (b Band) Intersects(top, bottom, viewportHeight float64) bool {
	if viewportHeight <= 0 {
		return false
	}
	lo, hi := b.Bounds(viewportHeight)
	if hi <= lo {
		return false
	}
	return bottom > lo && top < hi
}

// Cancel stops deferred work that has not run yet.
type Cancel func()

// Scheduler runs fn on the engine's event loop after d. The returned Cancel
// prevents fn from running if it has not started.
type Scheduler interface {
	After(d time.Duration, fn func()) Cancel
}
