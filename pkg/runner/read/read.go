// Package read opens the interactive reader.
package read

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/longread/pkg/config"
	"tableflip.dev/longread/pkg/runner/source"
	"tableflip.dev/longread/pkg/tui/app"
	"tableflip.dev/longread/pkg/tui/theme"
)

// Read runs the TUI over Doc.
type Read struct {
	Doc    source.Document
	Config *config.Config
	Watch  bool
	Debug  bool
	// Style overrides the configured style when set.
	Style string
}

// Do blocks until the reader quits.
func (r *Read) Do(ctx context.Context) (err error) {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("read: stdout is not a terminal; try `longread outline` or `longread export`")
	}
	cfg := r.Config
	if cfg == nil {
		cfg = config.Default()
	}
	level := slog.LevelInfo
	if r.Debug {
		level = slog.LevelDebug
	}
	log, closer, err := cfg.Logger(level)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closer.Close())
	}()

	style := cfg.Style
	if r.Style != "" {
		style = r.Style
	}
	watch := r.Watch
	if watch && r.Doc.FromStdin() {
		log.Info("watch disabled for stdin")
		watch = false
	}

	log.Info("opening reader", "path", r.Doc.Path, "bytes", len(r.Doc.Text), "watch", watch)
	err = app.Run(ctx, app.Options{
		Path:   r.Doc.Path,
		Text:   r.Doc.Text,
		Title:  r.Doc.Title,
		Watch:  watch,
		Debug:  r.Debug,
		Style:  theme.GlamourStyle(style, os.Stdout),
		Config: cfg,
		Logger: log,
	})
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	return nil
}
