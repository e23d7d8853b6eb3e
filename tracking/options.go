package tracking

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/linetrack/match"
	"github.com/katalvlaran/linetrack/sequence"
)

// Option configures a Tracker via functional arguments. Invalid values are
// recorded and surfaced as ErrOptionViolation by NewTracker.
type Option func(*Options)

// Options holds the collaborators and tunables of a Tracker.
type Options struct {
	// Comparator decides line equality between versions.
	Comparator sequence.Comparator[sequence.Lines]

	// Match is forwarded to every match.Lines call.
	Match []match.Option

	// Workers bounds the parallelism of TrackAll.
	Workers int

	// Logger receives per-resource summaries at debug level.
	Logger *slog.Logger

	// Metrics, when set, records tracking outcomes.
	Metrics *Metrics

	// Now stamps new and closed issues.
	Now func() time.Time

	// NewKey mints keys for new issues.
	NewKey func() string

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - IgnoreTrailingWhitespace comparison
//   - default match options
//   - Workers = GOMAXPROCS
//   - slog.Default() logger, no metrics
//   - time.Now clock and random UUID keys
func DefaultOptions() Options {
	return Options{
		Comparator: sequence.IgnoreTrailingWhitespace,
		Workers:    runtime.GOMAXPROCS(0),
		Logger:     slog.Default(),
		Now:        time.Now,
		NewKey:     uuid.NewString,
	}
}

// WithComparator sets the line comparator.
func WithComparator(cmp sequence.Comparator[sequence.Lines]) Option {
	return func(o *Options) {
		if cmp == nil {
			o.err = fmt.Errorf("%w: comparator is nil", ErrOptionViolation)

			return
		}
		o.Comparator = cmp
	}
}

// WithMatchOptions appends options for the underlying match.
func WithMatchOptions(opts ...match.Option) Option {
	return func(o *Options) {
		o.Match = append(o.Match, opts...)
	}
}

// WithWorkers bounds TrackAll parallelism; n must be positive.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: workers must be positive (%d)", ErrOptionViolation, n)

			return
		}
		o.Workers = n
	}
}

// WithLogger sets the logger; nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics records outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}

// WithKeyFunc replaces the UUID key generator.
func WithKeyFunc(fn func() string) Option {
	return func(o *Options) {
		if fn != nil {
			o.NewKey = fn
		}
	}
}
