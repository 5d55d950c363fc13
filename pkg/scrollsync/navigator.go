package scrollsync

import "log/slog"

// Navigator performs programmatic scrolling.
type Navigator struct {
	surface  Surface
	margin   float64
	animated bool
	log      *slog.Logger
}

// NewNavigator returns a Navigator scrolling surface.
func NewNavigator(surface Surface, opts Options) *Navigator {
	opts = opts.withDefaults()
	return &Navigator{
		surface:  surface,
		margin:   opts.HeadingMargin,
		animated: !opts.Instant,
		log:      opts.Logger,
	}
}

// ScrollToTop scrolls to the start of the document.
func (n *Navigator) ScrollToTop() {
	n.surface.ScrollTo(0, n.animated)
}

// ScrollToHeading brings the element bound to id just below the viewport
// top. Unknown ids are ignored.
func (n *Navigator) ScrollToHeading(id string) {
	top, ok := n.surface.ElementTopOffset(id)
	if !ok {
		n.log.Debug("scroll target not rendered", "id", id)
		return
	}
	n.surface.ScrollTo(top-n.margin, n.animated)
}
