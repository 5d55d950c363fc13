package scrollsync

import "math"

// Signal is the reading-progress state derived from one scroll position.
type Signal struct {
	// Progress is the share of the scrollable distance covered, 0-100.
	Progress      float64 `json:"progress"`
	ShowBackToTop bool    `json:"showBackToTop"`
}

// Compute derives the Signal for a scroll position. Documents that fit in
// the viewport report zero progress.
func Compute(scrollTop, documentHeight, viewportHeight, threshold float64) Signal {
	s := Signal{ShowBackToTop: scrollTop > threshold}
	scrollable := documentHeight - viewportHeight
	if scrollable <= 0 || math.IsNaN(scrollTop) {
		return s
	}
	s.Progress = math.Min(100, math.Max(0, scrollTop/scrollable*100))
	return s
}

// Progress recomputes the Signal on every scroll notification.
type Progress struct {
	surface   Surface
	threshold float64
	signal    Signal
	sub       Subscription

	onChange func(Signal)
}

// NewProgress subscribes to surface scroll notifications.
func NewProgress(surface Surface, opts Options) *Progress {
	opts = opts.withDefaults()
	p := &Progress{
		surface:   surface,
		threshold: opts.BackToTopThreshold,
	}
	p.sub = surface.OnScroll(func() { p.Refresh() })
	p.Refresh()
	return p
}

// Signal returns the most recent Signal.
func (p *Progress) Signal() Signal { return p.signal }

// Refresh recomputes the Signal from the surface's current geometry.
func (p *Progress) Refresh() Signal {
	next := Compute(
		p.surface.ScrollOffset(),
		p.surface.DocumentHeight(),
		p.surface.ViewportHeight(),
		p.threshold,
	)
	if next != p.signal {
		p.signal = next
		if p.onChange != nil {
			p.onChange(next)
		}
	}
	return p.signal
}

// Close stops listening for scroll notifications.
func (p *Progress) Close() {
	if p.sub != nil {
		p.sub.Disconnect()
		p.sub = nil
	}
}
