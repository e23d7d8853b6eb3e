package match

import (
	"sort"

	"github.com/katalvlaran/linetrack/sequence"
)

// Match aligns a and b and returns their correspondence.
//
// a, b and cmp must have been built from the same inner comparator (see
// sequence.Prepare); mixing element types is rejected by the compiler.
// Empty sequences are valid input: the result is all-insert or all-delete.
//
// Errors:
//   - ErrNilSequence, ErrNilComparator for nil arguments.
//   - ErrOptionViolation for invalid options.
//   - ErrRegionTooLarge when Strategy=Exact and the trimmed region exceeds MaxCells.
func Match[S sequence.Sequence](
	a, b *sequence.Hashed[S],
	cmp *sequence.HashedComparator[S],
	opts ...Option,
) (*Correspondence, error) {
	if a == nil || b == nil {
		return nil, ErrNilSequence
	}
	if cmp == nil {
		return nil, ErrNilComparator
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	m := &matcher[S]{
		a:    a,
		b:    b,
		cmp:  cmp,
		opts: o,
		aToB: unmapped(a.Len()),
		bToA: unmapped(b.Len()),
	}
	if err := m.run(); err != nil {
		return nil, err
	}

	return newCorrespondence(m.aToB, m.bToA, m.stats), nil
}

// Lines hashes two line slices with cmp and aligns them.
func Lines(a, b []string, cmp sequence.Comparator[sequence.Lines], opts ...Option) (*Correspondence, error) {
	if cmp == nil {
		return nil, ErrNilComparator
	}
	ha, hb, hc := sequence.Prepare(sequence.Lines(a), sequence.Lines(b), cmp)

	return Match(ha, hb, hc, opts...)
}

// region is a half-open window [beginA,endA) × [beginB,endB).
type region struct {
	beginA, endA int
	beginB, endB int
}

func (r region) lenA() int { return r.endA - r.beginA }
func (r region) lenB() int { return r.endB - r.beginB }

// anchor is a candidate pair of positions holding a unique shared element.
type anchor struct{ a, b int }

type matcher[S sequence.Sequence] struct {
	a, b  *sequence.Hashed[S]
	cmp   *sequence.HashedComparator[S]
	opts  Options
	aToB  []int
	bToA  []int
	stats Stats
}

func unmapped(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = -1
	}

	return s
}

func (m *matcher[S]) eq(i, j int) bool { return m.cmp.Equals(m.a, i, m.b, j) }

func (m *matcher[S]) link(i, j int) {
	m.aToB[i] = j
	m.bToA[j] = i
}

func (m *matcher[S]) run() error {
	r := region{0, m.a.Len(), 0, m.b.Len()}
	r = m.trim(r, &m.stats.Prefix, &m.stats.Suffix)
	if r.lenA() == 0 || r.lenB() == 0 {
		return nil
	}
	if m.opts.Strategy == Exact {
		return m.exact(r, true)
	}

	return m.anchored(r)
}

// trim links the common prefix and suffix of r and returns what remains.
// Matching equal ends is always consistent with a maximum alignment.
func (m *matcher[S]) trim(r region, prefix, suffix *int) region {
	for r.beginA < r.endA && r.beginB < r.endB && m.eq(r.beginA, r.beginB) {
		m.link(r.beginA, r.beginB)
		r.beginA++
		r.beginB++
		*prefix++
	}
	for r.beginA < r.endA && r.beginB < r.endB && m.eq(r.endA-1, r.endB-1) {
		r.endA--
		r.endB--
		m.link(r.endA, r.endB)
		*suffix++
	}

	return r
}

// anchored aligns r around its unique anchors, recursing into the gaps.
func (m *matcher[S]) anchored(r region) error {
	var ignored int
	r = m.trim(r, &ignored, &ignored)
	if r.lenA() == 0 || r.lenB() == 0 {
		return nil
	}

	chain := longestChain(m.uniqueAnchors(r))
	prevA, prevB := r.beginA, r.beginB
	accepted := false
	for _, an := range chain {
		// already covered by the previous run's forward extension
		if an.a < prevA || an.b < prevB {
			continue
		}
		sa, sb := an.a, an.b
		for sa > prevA && sb > prevB && m.eq(sa-1, sb-1) {
			sa--
			sb--
		}
		ea, eb := an.a+1, an.b+1
		for ea < r.endA && eb < r.endB && m.eq(ea, eb) {
			ea++
			eb++
		}
		if ea-sa < m.opts.MinAnchorRun {
			continue
		}
		if err := m.anchored(region{prevA, sa, prevB, sb}); err != nil {
			return err
		}
		for k := 0; k < ea-sa; k++ {
			m.link(sa+k, sb+k)
		}
		m.stats.Anchors++
		prevA, prevB = ea, eb
		accepted = true
	}
	if !accepted {
		return m.fallback(r)
	}

	return m.anchored(region{prevA, r.endA, prevB, r.endB})
}

// uniqueAnchors returns, in A order, the pairs whose hash occurs exactly once
// in each side of r and whose elements are precisely equal.
func (m *matcher[S]) uniqueAnchors(r region) []anchor {
	countA := make(map[uint64]int, r.lenA())
	for i := r.beginA; i < r.endA; i++ {
		countA[m.a.HashAt(i)]++
	}
	countB := make(map[uint64]int, r.lenB())
	posB := make(map[uint64]int, r.lenB())
	for j := r.beginB; j < r.endB; j++ {
		h := m.b.HashAt(j)
		countB[h]++
		posB[h] = j
	}

	var anchors []anchor
	for i := r.beginA; i < r.endA; i++ {
		h := m.a.HashAt(i)
		if countA[h] != 1 || countB[h] != 1 {
			continue
		}
		if j := posB[h]; m.eq(i, j) {
			anchors = append(anchors, anchor{a: i, b: j})
		}
	}

	return anchors
}

// longestChain returns the longest subsequence of anchors (sorted by a) that
// is strictly increasing in b. Among chains of maximal length it returns the
// one with the lexicographically smallest a coordinates.
//
// Patience sorting over the anchors in reverse order gives, for every anchor,
// the length of the longest chain starting at it; a forward greedy pass then
// picks the earliest anchor that can still complete a maximal chain.
//
// Complexity: O(k log k) for k anchors.
func longestChain(anchors []anchor) []anchor {
	if len(anchors) == 0 {
		return nil
	}
	// tails[t] is the largest b that starts a chain of length t+1 seen so far;
	// walking backwards, tails is strictly decreasing.
	from := make([]int, len(anchors))
	tails := make([]int, 0, len(anchors))
	for idx := len(anchors) - 1; idx >= 0; idx-- {
		b := anchors[idx].b
		t := sort.Search(len(tails), func(t int) bool { return tails[t] <= b })
		if t == len(tails) {
			tails = append(tails, b)
		} else {
			tails[t] = b
		}
		from[idx] = t + 1
	}

	rem, lastB := len(tails), -1
	chain := make([]anchor, 0, rem)
	for idx, an := range anchors {
		if rem == 0 {
			break
		}
		if from[idx] == rem && an.b > lastB {
			chain = append(chain, an)
			rem--
			lastB = an.b
		}
	}

	return chain
}

// fallback aligns a region that has no usable unique anchor.
func (m *matcher[S]) fallback(r region) error {
	if r.lenA() == 0 || r.lenB() == 0 {
		return nil
	}
	if r.lenA()*r.lenB() <= m.opts.MaxCells {
		return m.exact(r, false)
	}

	return m.split(r)
}

// split cuts an oversized region at its lowest-occurrence common element
// (earliest in A on ties, then earliest equal element in B), links the
// equal run through it and recurses on both sides.
func (m *matcher[S]) split(r region) error {
	countA := make(map[uint64]int, r.lenA())
	for i := r.beginA; i < r.endA; i++ {
		countA[m.a.HashAt(i)]++
	}
	posB := make(map[uint64][]int, r.lenB())
	for j := r.beginB; j < r.endB; j++ {
		h := m.b.HashAt(j)
		posB[h] = append(posB[h], j)
	}

	bestA, bestB, bestCount := -1, -1, 0
	for i := r.beginA; i < r.endA; i++ {
		h := m.a.HashAt(i)
		c := countA[h]
		if bestA >= 0 && c >= bestCount {
			continue
		}
		for _, j := range posB[h] {
			if m.eq(i, j) {
				bestA, bestB, bestCount = i, j, c

				break
			}
		}
	}
	if bestA < 0 {
		// nothing in common: all-delete / all-insert
		return nil
	}

	sa, sb := bestA, bestB
	for sa > r.beginA && sb > r.beginB && m.eq(sa-1, sb-1) {
		sa--
		sb--
	}
	ea, eb := bestA+1, bestB+1
	for ea < r.endA && eb < r.endB && m.eq(ea, eb) {
		ea++
		eb++
	}
	m.stats.Splits++
	if err := m.anchored(region{r.beginA, sa, r.beginB, sb}); err != nil {
		return err
	}
	for k := 0; k < ea-sa; k++ {
		m.link(sa+k, sb+k)
	}

	return m.anchored(region{ea, r.endA, eb, r.endB})
}
