package sequence

// Slice is a Sequence over an arbitrary element type, for tokens or records
// that are not text lines.
type Slice[T any] []T

// Len returns the number of elements.
func (s Slice[T]) Len() int { return len(s) }

// At returns element i. It panics if i is out of range.
func (s Slice[T]) At(i int) T {
	CheckIndex(i, len(s))

	return s[i]
}

// FuncComparator adapts an equality function and a hash function over T into
// a Comparator for Slice[T]. The caller guarantees eq(x, y) ⇒ hash(x) == hash(y).
type FuncComparator[T any] struct {
	eq   func(x, y T) bool
	hash func(x T) uint64
}

// NewFuncComparator builds a FuncComparator. It panics with an error wrapping
// ErrNilComparator if either function is nil.
func NewFuncComparator[T any](eq func(x, y T) bool, hash func(x T) uint64) FuncComparator[T] {
	if eq == nil || hash == nil {
		panic(ErrNilComparator)
	}

	return FuncComparator[T]{eq: eq, hash: hash}
}

// Equals reports eq(a[ai], b[bi]).
func (c FuncComparator[T]) Equals(a Slice[T], ai int, b Slice[T], bi int) bool {
	return c.eq(a.At(ai), b.At(bi))
}

// Hash reports hash(s[i]).
func (c FuncComparator[T]) Hash(s Slice[T], i int) uint64 {
	return c.hash(s.At(i))
}
