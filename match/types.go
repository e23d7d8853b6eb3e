package match

import (
	"errors"
	"fmt"
)

// Sentinel errors for Match.
var (
	// ErrNilSequence indicates a nil hashed sequence argument.
	ErrNilSequence = errors.New("match: sequence is nil")

	// ErrNilComparator indicates a nil hashed comparator argument.
	ErrNilComparator = errors.New("match: comparator is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("match: invalid option supplied")

	// ErrRegionTooLarge is returned by the Exact strategy when a region's
	// DP table would exceed MaxCells.
	ErrRegionTooLarge = errors.New("match: region exceeds MaxCells")
)

// Strategy selects how the region left after prefix/suffix trimming is aligned.
type Strategy int

const (
	// Anchored uses unique-hash anchors and falls back to exact alignment
	// only inside the regions they bracket.
	Anchored Strategy = iota

	// Exact runs the LCS dynamic programme over the whole trimmed region.
	// The result has the maximum possible number of matches.
	Exact
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case Anchored:
		return "anchored"
	case Exact:
		return "exact"
	default:
		return "unknown"
	}
}

// ParseStrategy resolves "anchored" or "exact".
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "anchored", "":
		return Anchored, nil
	case "exact":
		return Exact, nil
	default:
		return 0, fmt.Errorf("%w: unknown strategy %q", ErrOptionViolation, name)
	}
}

// DefaultMaxCells bounds the DP table of one exact region (4M cells).
const DefaultMaxCells = 1 << 22

// Option configures Match via functional arguments. Invalid values are
// recorded and surfaced as ErrOptionViolation when Match runs.
type Option func(*Options)

// Options holds the tunables of one Match call.
type Options struct {
	// Strategy selects Anchored (default) or Exact alignment.
	Strategy Strategy

	// MaxCells bounds lenA×lenB of a region aligned by dynamic programming.
	MaxCells int

	// MinAnchorRun is the shortest extended run an anchor must produce to be
	// kept. 1 accepts every unique anchor.
	MinAnchorRun int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - Strategy = Anchored
//   - MaxCells = DefaultMaxCells
//   - MinAnchorRun = 1
func DefaultOptions() Options {
	return Options{
		Strategy:     Anchored,
		MaxCells:     DefaultMaxCells,
		MinAnchorRun: 1,
	}
}

// WithStrategy selects the alignment strategy.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		if s != Anchored && s != Exact {
			o.err = fmt.Errorf("%w: unknown strategy %d", ErrOptionViolation, int(s))

			return
		}
		o.Strategy = s
	}
}

// WithMaxCells sets the DP budget per exact region; n must be positive.
func WithMaxCells(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxCells must be positive (%d)", ErrOptionViolation, n)

			return
		}
		o.MaxCells = n
	}
}

// WithMinAnchorRun sets the minimum extended anchor run; n must be >= 1.
func WithMinAnchorRun(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: MinAnchorRun must be >= 1 (%d)", ErrOptionViolation, n)

			return
		}
		o.MinAnchorRun = n
	}
}

// Stats describes how a correspondence was computed.
type Stats struct {
	// Prefix and Suffix count the elements matched by trimming.
	Prefix, Suffix int
	// Anchors counts accepted anchor runs.
	Anchors int
	// Splits counts regions split at a lowest-occurrence element.
	Splits int
	// ExactRegions counts regions aligned by dynamic programming.
	ExactRegions int
	// Cells is the total number of DP cells evaluated.
	Cells int
}
