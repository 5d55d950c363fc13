package surface

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/longread/pkg/scrollsync"
)

// FireMsg carries deferred work back onto the Bubble Tea event loop.
type FireMsg struct {
	run func()
}

// Run executes the deferred work unless it was cancelled.
func (m FireMsg) Run() {
	if m.run != nil {
		m.run()
	}
}

// Scheduler implements scrollsync.Scheduler with tea ticks. Work queued by
// After is picked up with Drain and returned from Update.
type Scheduler struct {
	pending []tea.Cmd
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After implements scrollsync.Scheduler.
func (s *Scheduler) After(d time.Duration, fn func()) scrollsync.Cancel {
	cancelled := false
	run := func() {
		if !cancelled {
			fn()
		}
	}
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return FireMsg{run: run}
	}))
	return func() { cancelled = true }
}

// Pending returns the number of queued commands not yet drained.
func (s *Scheduler) Pending() int { return len(s.pending) }

// Drain returns the queued work as one command.
func (s *Scheduler) Drain() tea.Cmd {
	cmds := s.pending
	s.pending = nil
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}
