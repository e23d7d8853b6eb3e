// Package config loads the linetrack YAML configuration and turns it into
// options for the match, tracking and store packages.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/linetrack/match"
	"github.com/katalvlaran/linetrack/sequence"
	"github.com/katalvlaran/linetrack/store"
	"github.com/katalvlaran/linetrack/tracking"
)

// ErrInvalidConfig wraps every validation and decoding failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the root of linetrack.yaml.
type Config struct {
	// Comparator names the line comparator: exact, trailing, leading, all or change.
	Comparator string         `yaml:"comparator" validate:"required,comparator"`
	Match      MatchConfig    `yaml:"match"`
	Tracking   TrackingConfig `yaml:"tracking"`
	Store      StoreConfig    `yaml:"store"`
	Log        LogConfig      `yaml:"log"`
	Metrics    MetricsConfig  `yaml:"metrics"`
}

// MatchConfig tunes the matching engine.
type MatchConfig struct {
	Strategy     string `yaml:"strategy" validate:"oneof=anchored exact"`
	MaxCells     int    `yaml:"max_cells" validate:"gt=0"`
	MinAnchorRun int    `yaml:"min_anchor_run" validate:"gte=1"`
}

// TrackingConfig tunes issue tracking. Workers 0 means GOMAXPROCS.
type TrackingConfig struct {
	Workers int `yaml:"workers" validate:"gte=0"`
}

// StoreConfig locates the snapshot database.
type StoreConfig struct {
	Path     string `yaml:"path" validate:"required_if=InMemory false"`
	InMemory bool   `yaml:"in_memory"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("comparator", func(fl validator.FieldLevel) bool {
		_, ok := sequence.ComparatorByName(fl.Field().String())

		return ok
	})
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Comparator: sequence.IgnoreTrailingWhitespace.Name(),
		Match: MatchConfig{
			Strategy:     match.Anchored.String(),
			MaxCells:     match.DefaultMaxCells,
			MinAnchorRun: 1,
		},
		Store: StoreConfig{Path: ".linetrack"},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads path over Default. An empty path or a missing file yields the
// defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// LineComparator resolves Comparator, falling back to trailing-whitespace
// insensitive comparison for an unknown name.
func (c Config) LineComparator() sequence.LineComparator {
	if cmp, ok := sequence.ComparatorByName(c.Comparator); ok {
		return cmp
	}

	return sequence.IgnoreTrailingWhitespace
}

// MatchOptions converts the match section.
func (c Config) MatchOptions() ([]match.Option, error) {
	s, err := match.ParseStrategy(c.Match.Strategy)
	if err != nil {
		return nil, err
	}

	return []match.Option{
		match.WithStrategy(s),
		match.WithMaxCells(c.Match.MaxCells),
		match.WithMinAnchorRun(c.Match.MinAnchorRun),
	}, nil
}

// TrackerOptions converts the configuration into tracker options. metrics
// may be nil.
func (c Config) TrackerOptions(logger *slog.Logger, metrics *tracking.Metrics) ([]tracking.Option, error) {
	mopts, err := c.MatchOptions()
	if err != nil {
		return nil, err
	}
	opts := []tracking.Option{
		tracking.WithComparator(c.LineComparator()),
		tracking.WithMatchOptions(mopts...),
		tracking.WithLogger(logger),
		tracking.WithMetrics(metrics),
	}
	if c.Tracking.Workers > 0 {
		opts = append(opts, tracking.WithWorkers(c.Tracking.Workers))
	}

	return opts, nil
}

// StoreOptions converts the store section.
func (c Config) StoreOptions(logger *slog.Logger) store.Config {
	if c.Store.InMemory {
		cfg := store.InMemoryConfig()
		cfg.Logger = logger

		return cfg
	}
	cfg := store.DefaultConfig()
	cfg.Path = c.Store.Path
	cfg.Logger = logger

	return cfg
}

// SlogLevel maps the configured level name to slog.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a text or JSON slog logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if l.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
