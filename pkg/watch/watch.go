// Package watch reports changes to a single file on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is how long a burst of writes is coalesced before an Event
// is sent.
const DefaultDelay = 100 * time.Millisecond

// EventType describes what happened to the watched file.
type EventType int

const (
	// EventChanged means the file was written, created or replaced.
	EventChanged EventType = iota
	// EventRemoved means the file is gone. A later EventChanged follows if
	// it reappears.
	EventRemoved
	// EventError means the watcher reported an error. Callers should
	// re-read the file.
	EventError
)

func (t EventType) String() string {
	switch t {
	case EventChanged:
		return "changed"
	case EventRemoved:
		return "removed"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is emitted by File.
type Event struct {
	Type EventType
	Path string
}

// Options tunes File.
type Options struct {
	Delay  time.Duration
	Logger *slog.Logger
}

// File streams change events for path until ctx is cancelled. The parent
// directory is watched so editors that save by rename are still seen.
// The channel is closed once ctx is done or the watcher stops.
func File(ctx context.Context, path string, opts Options) (<-chan Event, error) {
	if path == "" {
		return nil, errors.New("watch: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", path, err)
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch: %s: %w", dir, err)
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				log.Warn("watcher close", "err", err)
			}
		}()

		var mu sync.Mutex
		done := false
		send := func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			if done {
				return
			}
			select {
			case events <- ev:
			default:
				// Consumer is behind; it re-reads the whole file anyway.
			}
		}
		throttle := newEventThrottle(opts.Delay)
		defer func() {
			throttle.Stop()
			mu.Lock()
			done = true
			mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("watcher error", "path", abs, "err", err)
				throttle.Enqueue(Event{Type: EventError, Path: abs}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				log.Debug("fs event", "path", abs, "op", evt.Op.String())
				throttle.Enqueue(classify(abs, evt), send)
			}
		}
	}()
	return events, nil
}

func classify(path string, evt fsnotify.Event) Event {
	if evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		if _, err := os.Stat(path); err != nil {
			return Event{Type: EventRemoved, Path: path}
		}
	}
	return Event{Type: EventChanged, Path: path}
}

// eventThrottle coalesces rapid notifications so the reader reloads once per
// burst. Only the latest event of a burst is delivered.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending *Event
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{delay: delay}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = &ev
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = nil
	t.timer = nil
	t.mu.Unlock()

	if pending != nil {
		send(*pending)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = nil
	t.mu.Unlock()
}
