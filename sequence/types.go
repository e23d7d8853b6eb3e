package sequence

import (
	"errors"
	"fmt"
)

// Sentinel errors for contract violations.
var (
	// ErrIndexOutOfBounds is wrapped by the panic raised for an index outside [0, Len()).
	ErrIndexOutOfBounds = errors.New("sequence: index out of bounds")

	// ErrNilComparator is wrapped by the panic raised when a nil Comparator is supplied.
	ErrNilComparator = errors.New("sequence: comparator is nil")
)

// Sequence is an ordered, 0-indexed view over elements with a fixed length.
// Implementations must not change their length once constructed.
type Sequence interface {
	// Len returns the number of elements.
	Len() int
}

// Comparator compares and hashes elements of sequences of type S.
//
// Equals must be reflexive, symmetric and transitive. Hash must agree with
// Equals: whenever Equals(a, ai, b, bi) holds, Hash(a, ai) == Hash(b, bi).
// Implementations must be free of shared mutable state so a single instance
// can serve concurrent matches.
type Comparator[S Sequence] interface {
	Equals(a S, ai int, b S, bi int) bool
	Hash(s S, i int) uint64
}

// CheckIndex panics with an error wrapping ErrIndexOutOfBounds unless 0 <= i < n.
func CheckIndex(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfBounds, i, n))
	}
}
