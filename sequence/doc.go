// Package sequence defines the minimal contracts an alignment algorithm needs
// over two versions of an artifact, decoupled from what the elements are.
//
// A Sequence is an ordered, fixed-length, read-only view. A Comparator knows
// how to compare two positions (possibly in two different sequences) and how
// to hash one position consistently with that equality:
//
//	Equals(a, i, b, j)  ⇒  Hash(a, i) == Hash(b, j)
//
// The reverse does not hold; collisions are expected.
//
// Hashed decorates any Sequence with a per-element hash computed exactly once,
// and HashedComparator compares two Hashed sequences by first checking the
// cached hashes and only then delegating to the precise inner comparator.
//
//	lines := sequence.Lines{"a", "b", "c"}
//	h := sequence.NewHashed(lines, sequence.IgnoreTrailingWhitespace)
//	cmp := sequence.NewHashedComparator[sequence.Lines](sequence.IgnoreTrailingWhitespace)
//	cmp.Equals(h, 0, h, 0) // true
//
// Index arguments outside [0, Len()) are caller errors and panic with an error
// wrapping ErrIndexOutOfBounds.
package sequence
