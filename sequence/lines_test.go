package sequence_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/katalvlaran/linetrack/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shipped lists every LineComparator exported by the package.
var shipped = []sequence.LineComparator{
	sequence.Exact,
	sequence.IgnoreTrailingWhitespace,
	sequence.IgnoreLeadingWhitespace,
	sequence.IgnoreAllWhitespace,
	sequence.IgnoreWhitespaceChange,
}

// TestSplitLines checks terminator handling.
func TestSplitLines(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want sequence.Lines
	}{
		{"empty", "", sequence.Lines{}},
		{"single no newline", "a", sequence.Lines{"a"}},
		{"trailing newline", "a\nb\n", sequence.Lines{"a", "b"}},
		{"crlf", "a\r\nb\r\n", sequence.Lines{"a", "b"}},
		{"blank lines kept", "a\n\n\nb", sequence.Lines{"a", "", "", "b"}},
		{"only newline", "\n", sequence.Lines{""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sequence.SplitLines(tc.in))
		})
	}
}

// TestLineComparator_Modes verifies each whitespace mode on a fixed pair table.
func TestLineComparator_Modes(t *testing.T) {
	cases := []struct {
		a, b                                     string
		exact, trailing, leading, all, wsChange bool
	}{
		{"foo", "foo", true, true, true, true, true},
		{"foo ", "foo", false, true, false, true, true},
		{"  foo", "foo", false, false, true, true, false},
		{"  foo", " foo", false, false, true, true, true},
		{"f o o", "foo", false, false, false, true, false},
		{"a  b", "a\tb", false, false, false, true, true},
		{"foo", "bar", false, false, false, false, false},
	}
	for _, tc := range cases {
		a, b := sequence.Lines{tc.a}, sequence.Lines{tc.b}
		assert.Equal(t, tc.exact, sequence.Exact.Equals(a, 0, b, 0), "exact %q %q", tc.a, tc.b)
		assert.Equal(t, tc.trailing, sequence.IgnoreTrailingWhitespace.Equals(a, 0, b, 0), "trailing %q %q", tc.a, tc.b)
		assert.Equal(t, tc.leading, sequence.IgnoreLeadingWhitespace.Equals(a, 0, b, 0), "leading %q %q", tc.a, tc.b)
		assert.Equal(t, tc.all, sequence.IgnoreAllWhitespace.Equals(a, 0, b, 0), "all %q %q", tc.a, tc.b)
		assert.Equal(t, tc.wsChange, sequence.IgnoreWhitespaceChange.Equals(a, 0, b, 0), "change %q %q", tc.a, tc.b)
	}
}

// TestLineComparator_HashLaw checks Equals ⇒ equal Hash for every shipped
// comparator over random whitespace-heavy lines, plus the equivalence laws.
func TestLineComparator_HashLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []string{"a", "b", " ", "\t", "  "}
	gen := func() string {
		var sb strings.Builder
		n := rng.Intn(5)
		for i := 0; i < n; i++ {
			sb.WriteString(alphabet[rng.Intn(len(alphabet))])
		}

		return sb.String()
	}
	lines := make(sequence.Lines, 200)
	for i := range lines {
		lines[i] = gen()
	}

	for _, cmp := range shipped {
		t.Run(cmp.Name(), func(t *testing.T) {
			for i := 0; i < len(lines); i++ {
				require.True(t, cmp.Equals(lines, i, lines, i), "reflexive at %d", i)
				for j := 0; j < len(lines); j++ {
					eq := cmp.Equals(lines, i, lines, j)
					require.Equal(t, eq, cmp.Equals(lines, j, lines, i), "symmetric %q %q", lines[i], lines[j])
					if eq {
						require.Equal(t, cmp.Hash(lines, i), cmp.Hash(lines, j), "hash law %q %q", lines[i], lines[j])
					}
				}
			}
		})
	}
}

// TestComparatorByName resolves every config name.
func TestComparatorByName(t *testing.T) {
	for _, cmp := range shipped {
		got, ok := sequence.ComparatorByName(cmp.Name())
		require.True(t, ok)
		assert.Equal(t, cmp.Name(), got.Name())
	}
	_, ok := sequence.ComparatorByName("fuzzy")
	assert.False(t, ok)
}

// TestLines_OutOfBoundsPanics ensures index faults are not silently truncated.
func TestLines_OutOfBoundsPanics(t *testing.T) {
	l := sequence.Lines{"a"}
	assertIndexPanic(t, func() { l.At(1) })
	assertIndexPanic(t, func() { l.At(-1) })
	assertIndexPanic(t, func() { sequence.Exact.Hash(l, 3) })
	assertIndexPanic(t, func() { sequence.Exact.Equals(l, 0, l, 2) })
}
