package scrollsync

import (
	"log/slog"

	"tableflip.dev/longread/pkg/outline"
)

// Snapshot is everything the presentation layer needs to draw one frame.
type Snapshot struct {
	Outline    outline.Headings
	Active     string
	Signal     Signal
	State      State
	Generation uint64
}

// Engine wires outline extraction, heading tracking, progress and
// navigation for one displayed document.
type Engine struct {
	tracker   *Tracker
	progress  *Progress
	navigator *Navigator
	log       *slog.Logger
	onChange  func(Snapshot)

	text    string
	hasText bool
	closed  bool
}

// New builds an Engine over surface. Deferred work is queued on scheduler.
func New(surface Surface, scheduler Scheduler, opts Options) *Engine {
	opts = opts.withDefaults()
	e := &Engine{
		tracker:   NewTracker(surface, scheduler, opts),
		progress:  NewProgress(surface, opts),
		navigator: NewNavigator(surface, opts),
		log:       opts.Logger,
		onChange:  opts.OnChange,
	}
	e.tracker.onActive = func(string) { e.changed() }
	e.progress.onChange = func(Signal) { e.changed() }
	return e
}

// SetText re-extracts the outline from text and restarts heading tracking.
// Repeating the current text is a no-op.
func (e *Engine) SetText(text string) {
	if e.closed || (e.hasText && text == e.text) {
		return
	}
	e.text, e.hasText = text, true
	e.tracker.Replace(outline.Extract(text))
	e.progress.Refresh()
	e.changed()
}

// Outline returns the current outline.
func (e *Engine) Outline() outline.Headings { return e.tracker.Headings() }

// Active returns the active heading id.
func (e *Engine) Active() string { return e.tracker.Active() }

// Signal returns the current progress signal.
func (e *Engine) Signal() Signal { return e.progress.Signal() }

// Tracker exposes the heading tracker.
func (e *Engine) Tracker() *Tracker { return e.tracker }

// Refresh recomputes the progress signal after the surface changed size or
// content without scrolling.
func (e *Engine) Refresh() {
	if e.closed {
		return
	}
	e.progress.Refresh()
}

// ScrollToTop smoothly scrolls to the top of the document.
func (e *Engine) ScrollToTop() {
	if e.closed {
		return
	}
	e.navigator.ScrollToTop()
}

// ScrollToHeading smoothly scrolls to the heading with id, if rendered.
func (e *Engine) ScrollToHeading(id string) {
	if e.closed {
		return
	}
	e.navigator.ScrollToHeading(id)
}

// Snapshot returns the current presentation state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Outline:    e.tracker.Headings(),
		Active:     e.tracker.Active(),
		Signal:     e.progress.Signal(),
		State:      e.tracker.State(),
		Generation: e.tracker.Generation(),
	}
}

// Close tears down observation and scroll listening.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.tracker.Close()
	e.progress.Close()
	e.log.Debug("engine closed")
}

func (e *Engine) changed() {
	if e.onChange != nil && !e.closed {
		e.onChange(e.Snapshot())
	}
}
