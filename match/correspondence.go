package match

// Op classifies a region of an edit list.
type Op uint8

const (
	// OpEqual marks matched elements.
	OpEqual Op = iota
	// OpDelete marks A elements with no counterpart.
	OpDelete
	// OpInsert marks B elements with no counterpart.
	OpInsert
	// OpReplace marks adjacent unmatched A and B elements.
	OpReplace
)

// String returns the name of the operation.
func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Pair is one matched (A index, B index).
type Pair struct {
	A, B int
}

// Edit is a maximal region of the alignment with half-open ranges
// [BeginA,EndA) in A and [BeginB,EndB) in B.
type Edit struct {
	Op           Op
	BeginA, EndA int
	BeginB, EndB int
}

// LenA returns EndA-BeginA.
func (e Edit) LenA() int { return e.EndA - e.BeginA }

// LenB returns EndB-BeginB.
func (e Edit) LenB() int { return e.EndB - e.BeginB }

// Correspondence is the immutable result of Match: an order-preserving
// partial mapping between A and B indices and its inverse.
type Correspondence struct {
	aToB    []int
	bToA    []int
	matched int
	stats   Stats
}

func newCorrespondence(aToB, bToA []int, stats Stats) *Correspondence {
	matched := 0
	for _, j := range aToB {
		if j >= 0 {
			matched++
		}
	}

	return &Correspondence{aToB: aToB, bToA: bToA, matched: matched, stats: stats}
}

// LenA returns the length of the reference sequence.
func (c *Correspondence) LenA() int { return len(c.aToB) }

// LenB returns the length of the new sequence.
func (c *Correspondence) LenB() int { return len(c.bToA) }

// BIndex returns the B index matched to A index i, or false if i was deleted
// or is out of range.
func (c *Correspondence) BIndex(i int) (int, bool) {
	if i < 0 || i >= len(c.aToB) || c.aToB[i] < 0 {
		return -1, false
	}

	return c.aToB[i], true
}

// AIndex returns the A index matched to B index j, or false if j was inserted
// or is out of range.
func (c *Correspondence) AIndex(j int) (int, bool) {
	if j < 0 || j >= len(c.bToA) || c.bToA[j] < 0 {
		return -1, false
	}

	return c.bToA[j], true
}

// MapIndex returns the B position that corresponds to A index i: the matched
// index when there is one, otherwise the position right after the B match of
// the nearest preceding matched A element (0 if none). Indices past the end
// of A map to LenB.
func (c *Correspondence) MapIndex(i int) int {
	if i >= len(c.aToB) {
		return len(c.bToA)
	}
	if i < 0 {
		return 0
	}
	for p := i; p >= 0; p-- {
		if j := c.aToB[p]; j >= 0 {
			if p == i {
				return j
			}

			return j + 1
		}
	}

	return 0
}

// Matched returns the number of matched pairs.
func (c *Correspondence) Matched() int { return c.matched }

// Identical reports whether every element of A matched the element of B at
// the same index and the lengths agree.
func (c *Correspondence) Identical() bool {
	if len(c.aToB) != len(c.bToA) {
		return false
	}
	for i, j := range c.aToB {
		if i != j {
			return false
		}
	}

	return true
}

// Pairs returns the matched pairs in increasing order.
func (c *Correspondence) Pairs() []Pair {
	pairs := make([]Pair, 0, c.matched)
	for i, j := range c.aToB {
		if j >= 0 {
			pairs = append(pairs, Pair{A: i, B: j})
		}
	}

	return pairs
}

// Deleted returns the A indices without a counterpart, ascending.
func (c *Correspondence) Deleted() []int { return unmatched(c.aToB) }

// Inserted returns the B indices without a counterpart, ascending.
func (c *Correspondence) Inserted() []int { return unmatched(c.bToA) }

// Stats returns how the correspondence was computed.
func (c *Correspondence) Stats() Stats { return c.stats }

func unmatched(mapping []int) []int {
	out := make([]int, 0, len(mapping))
	for i, v := range mapping {
		if v < 0 {
			out = append(out, i)
		}
	}

	return out
}

// Edits returns the alignment as maximal Equal, Delete, Insert and Replace
// regions covering both sequences in order.
func (c *Correspondence) Edits() []Edit {
	n, m := len(c.aToB), len(c.bToA)
	var edits []Edit
	i, j := 0, 0
	for i < n || j < m {
		if i < n && j < m && c.aToB[i] == j {
			si, sj := i, j
			for i < n && j < m && c.aToB[i] == j {
				i++
				j++
			}
			edits = append(edits, Edit{Op: OpEqual, BeginA: si, EndA: i, BeginB: sj, EndB: j})

			continue
		}
		si, sj := i, j
		for i < n && c.aToB[i] < 0 {
			i++
		}
		for j < m && c.bToA[j] < 0 {
			j++
		}
		op := OpReplace
		switch {
		case i == si:
			op = OpInsert
		case j == sj:
			op = OpDelete
		}
		edits = append(edits, Edit{Op: op, BeginA: si, EndA: i, BeginB: sj, EndB: j})
	}

	return edits
}
