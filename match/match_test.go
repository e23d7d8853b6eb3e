package match_test

import (
	"testing"

	"github.com/katalvlaran/linetrack/match"
	"github.com/katalvlaran/linetrack/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lines is a shorthand for the exact-equality line matcher.
func lines(t *testing.T, a, b []string, opts ...match.Option) *match.Correspondence {
	t.Helper()
	c, err := match.Lines(a, b, sequence.Exact, opts...)
	require.NoError(t, err)

	return c
}

// TestMatch_OneLineChanged is the basic modification scenario.
func TestMatch_OneLineChanged(t *testing.T) {
	c := lines(t, []string{"a", "b", "c", "d"}, []string{"a", "x", "c", "d"})

	assert.Equal(t, []match.Pair{{0, 0}, {2, 2}, {3, 3}}, c.Pairs())
	assert.Equal(t, []int{1}, c.Deleted())
	assert.Equal(t, []int{1}, c.Inserted())
	_, ok := c.BIndex(1)
	assert.False(t, ok)
	_, ok = c.AIndex(1)
	assert.False(t, ok)
	assert.False(t, c.Identical())
}

// TestMatch_Identical checks the identity law on a small input.
func TestMatch_Identical(t *testing.T) {
	c := lines(t, []string{"a", "b", "c"}, []string{"a", "b", "c"})

	assert.Equal(t, []match.Pair{{0, 0}, {1, 1}, {2, 2}}, c.Pairs())
	assert.Empty(t, c.Deleted())
	assert.Empty(t, c.Inserted())
	assert.True(t, c.Identical())
	assert.Equal(t, 3, c.Stats().Prefix)
}

// TestMatch_EmptySides covers the degenerate all-insert / all-delete cases.
func TestMatch_EmptySides(t *testing.T) {
	c := lines(t, nil, []string{"x", "y"})
	assert.Empty(t, c.Pairs())
	assert.Equal(t, []int{0, 1}, c.Inserted())
	assert.Empty(t, c.Deleted())
	assert.Equal(t, []match.Edit{{Op: match.OpInsert, BeginA: 0, EndA: 0, BeginB: 0, EndB: 2}}, c.Edits())

	c = lines(t, []string{"x", "y"}, []string{})
	assert.Equal(t, []int{0, 1}, c.Deleted())
	assert.Empty(t, c.Inserted())

	c = lines(t, nil, nil)
	assert.Zero(t, c.Matched())
	assert.True(t, c.Identical())
	assert.Empty(t, c.Edits())
}

// TestMatch_Disjoint yields all-delete plus all-insert.
func TestMatch_Disjoint(t *testing.T) {
	c := lines(t, []string{"a", "b"}, []string{"c", "d", "e"})
	assert.Zero(t, c.Matched())
	assert.Equal(t, []int{0, 1}, c.Deleted())
	assert.Equal(t, []int{0, 1, 2}, c.Inserted())
	assert.Equal(t, []match.Edit{{Op: match.OpReplace, BeginA: 0, EndA: 2, BeginB: 0, EndB: 3}}, c.Edits())
}

// TestMatch_ShiftedBlock tracks lines moved down by an insertion.
func TestMatch_ShiftedBlock(t *testing.T) {
	a := []string{"package p", "", "func f() {", "\treturn 1", "}"}
	b := []string{"package p", "", "import \"os\"", "", "func f() {", "\treturn 1", "}"}
	c := lines(t, a, b)

	for i, want := range []int{0, 1, 4, 5, 6} {
		j, ok := c.BIndex(i)
		require.True(t, ok, "line %d should be tracked", i)
		assert.Equal(t, want, j, "line %d", i)
	}
	assert.Equal(t, []int{2, 3}, c.Inserted())
}

// TestMatch_HashCollisionNotMatched forces every element into one hash
// bucket; unequal content must stay unmatched.
func TestMatch_HashCollisionNotMatched(t *testing.T) {
	cmp := sequence.NewFuncComparator(
		func(x, y string) bool { return x == y },
		func(string) uint64 { return 42 },
	)
	a, b, hc := sequence.Prepare(
		sequence.Slice[string]{"p", "q", "s"},
		sequence.Slice[string]{"q", "r", "t"},
		sequence.Comparator[sequence.Slice[string]](cmp),
	)
	for _, s := range []match.Strategy{match.Anchored, match.Exact} {
		c, err := match.Match(a, b, hc, match.WithStrategy(s))
		require.NoError(t, err)
		assert.Equal(t, []match.Pair{{1, 0}}, c.Pairs(), "strategy %s", s)
	}
}

// TestMatch_TieBreakEarliest pins the earliest-match policy in ambiguous regions.
func TestMatch_TieBreakEarliest(t *testing.T) {
	cases := []struct {
		name string
		a, b []string
		want []match.Pair
	}{
		{"swap keeps earliest A", []string{"p", "x"}, []string{"x", "p"}, []match.Pair{{0, 1}}},
		{"duplicate in B takes first", []string{"q", "x", "q"}, []string{"x", "x"}, []match.Pair{{1, 0}}},
		{"duplicate in A takes first", []string{"x", "x"}, []string{"q", "x", "q"}, []match.Pair{{0, 1}}},
		{"maximal before earliest", []string{"a", "b", "c"}, []string{"c", "a", "b"}, []match.Pair{{0, 1}, {1, 2}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, s := range []match.Strategy{match.Anchored, match.Exact} {
				c := lines(t, tc.a, tc.b, match.WithStrategy(s))
				assert.Equal(t, tc.want, c.Pairs(), "strategy %s", s)
			}
		})
	}
}

// TestMatch_UniqueAnchorsSplitRepeats anchors on unique lines so repeated
// braces align inside their own blocks.
func TestMatch_UniqueAnchorsSplitRepeats(t *testing.T) {
	a := []string{"func a() {", "}", "func b() {", "}", "func c() {", "}"}
	b := []string{"func a() {", "}", "func c() {", "}"}
	c := lines(t, a, b)

	assert.Equal(t, []match.Pair{{0, 0}, {1, 1}, {4, 2}, {5, 3}}, c.Pairs())
	assert.Equal(t, []int{2, 3}, c.Deleted())
}

// TestMatch_MinAnchorRun drops short anchors and lets the DP decide.
func TestMatch_MinAnchorRun(t *testing.T) {
	a := []string{"x", "u", "y", "p", "q", "r"}
	b := []string{"y", "p", "q", "r", "u"}

	c := lines(t, a, b, match.WithMinAnchorRun(3))
	assert.Equal(t, []match.Pair{{2, 0}, {3, 1}, {4, 2}, {5, 3}}, c.Pairs())
	assert.GreaterOrEqual(t, c.Stats().Anchors, 1)
}

// TestMatch_SplitOversizedRegion forces the lowest-occurrence split path.
func TestMatch_SplitOversizedRegion(t *testing.T) {
	// no unique anchor: every element occurs twice on both sides
	a := []string{"k", "m", "k", "m"}
	b := []string{"m", "k", "m", "k"}

	c := lines(t, a, b, match.WithMaxCells(2))
	assertLawful(t, a, b, c)
	assert.Equal(t, 1, c.Stats().Splits)
	assert.Zero(t, c.Stats().ExactRegions)
	assert.Equal(t, []match.Pair{{0, 1}, {1, 2}, {2, 3}}, c.Pairs())
}

// TestMatch_Errors covers argument and option validation.
func TestMatch_Errors(t *testing.T) {
	a, b, hc := sequence.Prepare(sequence.Lines{"a"}, sequence.Lines{"b"}, sequence.Comparator[sequence.Lines](sequence.Exact))

	_, err := match.Match(nil, b, hc)
	assert.ErrorIs(t, err, match.ErrNilSequence)
	_, err = match.Match(a, nil, hc)
	assert.ErrorIs(t, err, match.ErrNilSequence)
	_, err = match.Match(a, b, nil)
	assert.ErrorIs(t, err, match.ErrNilComparator)
	_, err = match.Lines(nil, nil, nil)
	assert.ErrorIs(t, err, match.ErrNilComparator)

	_, err = match.Match(a, b, hc, match.WithMaxCells(0))
	assert.ErrorIs(t, err, match.ErrOptionViolation)
	_, err = match.Match(a, b, hc, match.WithMinAnchorRun(0))
	assert.ErrorIs(t, err, match.ErrOptionViolation)
	_, err = match.Match(a, b, hc, match.WithStrategy(match.Strategy(9)))
	assert.ErrorIs(t, err, match.ErrOptionViolation)
}

// TestMatch_ExactRegionTooLarge reports oversized exact regions.
func TestMatch_ExactRegionTooLarge(t *testing.T) {
	_, err := match.Lines([]string{"a", "b", "c"}, []string{"x", "y", "z"}, sequence.Exact,
		match.WithStrategy(match.Exact), match.WithMaxCells(8))
	assert.ErrorIs(t, err, match.ErrRegionTooLarge)

	// trimming shrinks the region below the budget
	c, err := match.Lines([]string{"a", "b", "c"}, []string{"a", "y", "c"}, sequence.Exact,
		match.WithStrategy(match.Exact), match.WithMaxCells(1))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Matched())
}

// TestParseStrategy resolves configuration names.
func TestParseStrategy(t *testing.T) {
	s, err := match.ParseStrategy("exact")
	require.NoError(t, err)
	assert.Equal(t, match.Exact, s)
	s, err = match.ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, match.Anchored, s)
	assert.Equal(t, "anchored", s.String())
	_, err = match.ParseStrategy("fuzzy")
	assert.ErrorIs(t, err, match.ErrOptionViolation)
}
