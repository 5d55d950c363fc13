// Package config loads reader settings from .longread.yaml and LONGREAD_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/longread/pkg/scrollsync"
	"tableflip.dev/longread/pkg/tui/surface"
)

// Config holds the resolved settings.
type Config struct {
	Style              string        `json:"style" mapstructure:"style"`
	UnitsPerRow        float64       `json:"unitsPerRow" mapstructure:"units-per-row"`
	BackToTopThreshold float64       `json:"backToTopThreshold" mapstructure:"back-to-top-threshold"`
	HeadingMargin      float64       `json:"headingMargin" mapstructure:"heading-margin"`
	BandTop            float64       `json:"bandTop" mapstructure:"band-top"`
	BandBottom         float64       `json:"bandBottom" mapstructure:"band-bottom"`
	PollInterval       time.Duration `json:"pollInterval" mapstructure:"poll-interval"`
	PollAttempts       int           `json:"pollAttempts" mapstructure:"poll-attempts"`
	Animate            bool          `json:"animate" mapstructure:"animate"`
	TOCWidth           int           `json:"tocWidth" mapstructure:"toc-width"`
	LogFile            string        `json:"logFile" mapstructure:"log-file"`
}

// DefaultTOCWidth is the contents panel width in columns.
const DefaultTOCWidth = 28

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Style:              "auto",
		UnitsPerRow:        surface.DefaultUnitsPerRow,
		BackToTopThreshold: scrollsync.DefaultBackToTopThreshold,
		HeadingMargin:      scrollsync.DefaultHeadingMargin,
		BandTop:            scrollsync.DefaultBand.Top,
		BandBottom:         scrollsync.DefaultBand.Bottom,
		PollInterval:       scrollsync.DefaultPollInterval,
		PollAttempts:       scrollsync.DefaultPollAttempts,
		Animate:            true,
		TOCWidth:           DefaultTOCWidth,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("style", "auto")
	v.SetDefault("units-per-row", surface.DefaultUnitsPerRow)
	v.SetDefault("back-to-top-threshold", scrollsync.DefaultBackToTopThreshold)
	v.SetDefault("heading-margin", scrollsync.DefaultHeadingMargin)
	v.SetDefault("band-top", scrollsync.DefaultBand.Top)
	v.SetDefault("band-bottom", scrollsync.DefaultBand.Bottom)
	v.SetDefault("poll-interval", scrollsync.DefaultPollInterval)
	v.SetDefault("poll-attempts", scrollsync.DefaultPollAttempts)
	v.SetDefault("animate", true)
	v.SetDefault("toc-width", DefaultTOCWidth)
	v.SetDefault("log-file", "")
}

// Load reads .longread.yaml from $LONGREAD_CONFIG_PATH, the home directory
// and the working directory, in that order. A missing file is not an error.
func Load() (*Config, error) {
	var paths []string
	if override := os.Getenv("LONGREAD_CONFIG_PATH"); override != "" {
		paths = append(paths, override)
	}
	if home, err := homedir.Dir(); err == nil {
		paths = append(paths, home)
	}
	paths = append(paths, "./")
	return LoadFrom(paths...)
}

// LoadFrom is Load with explicit search paths.
func LoadFrom(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(".longread") // .yaml is implicit
	v.SetConfigType("yaml")
	v.SetEnvPrefix("LONGREAD")
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.LogFile != "" {
		expanded, err := homedir.Expand(cfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("config: log-file: %w", err)
		}
		cfg.LogFile = expanded
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the engine would otherwise replace with its
// defaults.
func (c *Config) Validate() error {
	var errs []error
	positive := func(key string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be greater than zero, got %v", key, v))
		}
	}
	positive("units-per-row", c.UnitsPerRow)
	positive("back-to-top-threshold", c.BackToTopThreshold)
	positive("heading-margin", c.HeadingMargin)
	positive("poll-interval", float64(c.PollInterval))
	positive("poll-attempts", float64(c.PollAttempts))
	if c.BandTop < 0 || c.BandBottom < 0 || c.BandTop+c.BandBottom >= 1 {
		errs = append(errs, fmt.Errorf("band-top and band-bottom must be non-negative and sum below 1, got %v and %v", c.BandTop, c.BandBottom))
	} else if c.BandTop == 0 && c.BandBottom == 0 {
		errs = append(errs, errors.New("band-top and band-bottom cannot both be zero"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Options converts the settings into engine options. Logger and OnChange
// are left for the caller.
func (c *Config) Options() scrollsync.Options {
	return scrollsync.Options{
		BackToTopThreshold: c.BackToTopThreshold,
		HeadingMargin:      c.HeadingMargin,
		Band:               scrollsync.Band{Top: c.BandTop, Bottom: c.BandBottom},
		PollInterval:       c.PollInterval,
		PollAttempts:       c.PollAttempts,
		Instant:            !c.Animate,
	}
}

// Logger opens the log file and returns a text logger writing to it. With
// no log file configured it returns a discarding logger and a no-op closer.
func (c *Config) Logger(level slog.Level) (*slog.Logger, io.Closer, error) {
	if c.LogFile == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("config: open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}
