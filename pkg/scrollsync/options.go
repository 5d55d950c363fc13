package scrollsync

import (
	"log/slog"
	"time"
)

const (
	// DefaultBackToTopThreshold is the scroll offset past which the
	// back-to-top control is shown.
	DefaultBackToTopThreshold = 300
	// DefaultHeadingMargin is the gap kept above a heading scrolled into view.
	DefaultHeadingMargin = 20
	// DefaultPollInterval is the delay between element readiness checks.
	DefaultPollInterval = 25 * time.Millisecond
	// DefaultPollAttempts bounds the readiness checks for one outline.
	DefaultPollAttempts = 8
)

// DefaultBand ignores the top 10% and bottom 80% of the viewport.
var DefaultBand = Band{Top: 0.10, Bottom: 0.80}

// Options configures an Engine and its parts. A zero or negative threshold,
// margin, poll interval or attempt count selects the default, as does the
// zero Band. A margin or threshold of exactly zero cannot be expressed.
type Options struct {
	BackToTopThreshold float64
	HeadingMargin      float64
	Band               Band
	PollInterval       time.Duration
	PollAttempts       int
	// Instant disables animated scrolling.
	Instant bool

	Logger *slog.Logger
	// OnChange is called after the outline, the active heading or the
	// scroll signal changed.
	OnChange func(Snapshot)
}

func (o Options) withDefaults() Options {
	if o.BackToTopThreshold <= 0 {
		o.BackToTopThreshold = DefaultBackToTopThreshold
	}
	if o.HeadingMargin <= 0 {
		o.HeadingMargin = DefaultHeadingMargin
	}
	if o.Band.IsZero() {
		o.Band = DefaultBand
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.PollAttempts <= 0 {
		o.PollAttempts = DefaultPollAttempts
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}
