package sequence

// Hashed decorates a base Sequence with one hash per element. The hashes are
// computed once by NewHashed and never recomputed or mutated, so a Hashed is
// safe for concurrent readers.
type Hashed[S Sequence] struct {
	base   S
	hashes []uint64
}

// NewHashed hashes every element of base with cmp, one Hash call per element.
// It panics with ErrNilComparator if cmp is nil.
//
// Complexity: O(n) Hash calls, O(n) memory.
func NewHashed[S Sequence](base S, cmp Comparator[S]) *Hashed[S] {
	if cmp == nil {
		panic(ErrNilComparator)
	}
	n := base.Len()
	hashes := make([]uint64, n)
	for i := 0; i < n; i++ {
		hashes[i] = cmp.Hash(base, i)
	}

	return &Hashed[S]{base: base, hashes: hashes}
}

// Len delegates to the base sequence.
func (h *Hashed[S]) Len() int { return len(h.hashes) }

// HashAt returns the cached hash of element i. It panics if i is out of range.
func (h *Hashed[S]) HashAt(i int) uint64 {
	CheckIndex(i, len(h.hashes))

	return h.hashes[i]
}

// Base returns the wrapped sequence.
func (h *Hashed[S]) Base() S { return h.base }

// HashedComparator wraps a Comparator over S for use with Hashed[S].
//
// Equals rejects on cached-hash mismatch and otherwise asks the inner
// comparator, so a hash collision can never produce a match on its own.
type HashedComparator[S Sequence] struct {
	cmp Comparator[S]
}

var _ Comparator[*Hashed[Lines]] = (*HashedComparator[Lines])(nil)

// NewHashedComparator wraps cmp. It panics with ErrNilComparator if cmp is nil.
func NewHashedComparator[S Sequence](cmp Comparator[S]) *HashedComparator[S] {
	if cmp == nil {
		panic(ErrNilComparator)
	}

	return &HashedComparator[S]{cmp: cmp}
}

// Equals compares cached hashes first and delegates to the inner comparator
// on the base sequences only when they agree.
func (c *HashedComparator[S]) Equals(a *Hashed[S], ai int, b *Hashed[S], bi int) bool {
	return a.HashAt(ai) == b.HashAt(bi) && c.cmp.Equals(a.base, ai, b.base, bi)
}

// Hash returns the cached hash; it never recomputes.
func (c *HashedComparator[S]) Hash(s *Hashed[S], i int) uint64 {
	return s.HashAt(i)
}

// Inner returns the wrapped comparator.
func (c *HashedComparator[S]) Inner() Comparator[S] { return c.cmp }

// Prepare hashes a and b with cmp and returns the matching HashedComparator,
// guaranteeing all three were built from the same inner comparator.
func Prepare[S Sequence](a, b S, cmp Comparator[S]) (*Hashed[S], *Hashed[S], *HashedComparator[S]) {
	hc := NewHashedComparator(cmp)

	return NewHashed(a, cmp), NewHashed(b, cmp), hc
}
