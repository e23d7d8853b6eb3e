package sequence

import (
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// Lines is a Sequence of text lines without their terminators.
type Lines []string

// Len returns the number of lines.
func (l Lines) Len() int { return len(l) }

// At returns line i. It panics if i is out of range.
func (l Lines) At(i int) string {
	CheckIndex(i, len(l))

	return l[i]
}

// SplitLines splits text on '\n', dropping a trailing "\r" from every line.
// A final newline does not produce an extra empty line; empty text yields an
// empty sequence.
func SplitLines(text string) Lines {
	if text == "" {
		return Lines{}
	}
	text = strings.TrimSuffix(text, "\n")
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}

	return Lines(parts)
}

// LineComparator compares Lines after a fixed normalization. Two lines are
// equal when their normalized forms are byte-identical, and the hash is the
// xxhash of that same normalized form, so the hash law holds by construction.
type LineComparator struct {
	name      string
	normalize func(string) string
}

// Line comparators mirroring the usual whitespace modes of line diff tools.
var (
	// Exact compares lines byte for byte.
	Exact = LineComparator{name: "exact", normalize: func(s string) string { return s }}

	// IgnoreTrailingWhitespace ignores whitespace at the end of a line.
	IgnoreTrailingWhitespace = LineComparator{name: "trailing", normalize: trimRight}

	// IgnoreLeadingWhitespace ignores indentation.
	IgnoreLeadingWhitespace = LineComparator{name: "leading", normalize: trimLeft}

	// IgnoreAllWhitespace ignores every whitespace rune.
	IgnoreAllWhitespace = LineComparator{name: "all", normalize: stripSpace}

	// IgnoreWhitespaceChange treats any run of whitespace as a single space
	// and ignores trailing whitespace.
	IgnoreWhitespaceChange = LineComparator{name: "change", normalize: collapseSpace}
)

var lineComparators = map[string]LineComparator{
	Exact.name:                    Exact,
	IgnoreTrailingWhitespace.name: IgnoreTrailingWhitespace,
	IgnoreLeadingWhitespace.name:  IgnoreLeadingWhitespace,
	IgnoreAllWhitespace.name:      IgnoreAllWhitespace,
	IgnoreWhitespaceChange.name:   IgnoreWhitespaceChange,
}

// ComparatorByName resolves one of "exact", "trailing", "leading", "all" or
// "change". The boolean is false for unknown names.
func ComparatorByName(name string) (LineComparator, bool) {
	c, ok := lineComparators[name]

	return c, ok
}

// Name returns the configuration name of the comparator.
func (c LineComparator) Name() string { return c.name }

// Normalize returns the form of s that Equals and Hash operate on.
func (c LineComparator) Normalize(s string) string {
	if c.normalize == nil {
		return s
	}

	return c.normalize(s)
}

// Equals reports whether a[ai] and b[bi] are equal after normalization.
func (c LineComparator) Equals(a Lines, ai int, b Lines, bi int) bool {
	return c.Normalize(a.At(ai)) == c.Normalize(b.At(bi))
}

// Hash returns the xxhash of the normalized line s[i].
func (c LineComparator) Hash(s Lines, i int) uint64 {
	return xxhash.Sum64String(c.Normalize(s.At(i)))
}

func trimRight(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) }

func trimLeft(s string) string { return strings.TrimLeftFunc(s, unicode.IsSpace) }

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)
}

// collapseSpace keeps the presence of leading whitespace significant but not
// its amount, matching `diff -b`.
func collapseSpace(s string) string {
	s = trimRight(s)
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true

			continue
		}
		inSpace = false
		b.WriteRune(r)
	}

	return b.String()
}
