package tracking

import (
	"github.com/katalvlaran/linetrack/match"
	"github.com/katalvlaran/linetrack/sequence"
)

// Remapped partitions records after a version change.
type Remapped[R any] struct {
	// Moved holds records keyed by their new 0-based index.
	Moved map[int]R
	// Gone holds records, keyed by old index, whose element was not matched.
	Gone map[int]R
}

// Remap re-keys records from old indices to new indices through c. Records
// whose old index has no counterpart, or lies outside the old sequence,
// are Gone.
func Remap[R any](c *match.Correspondence, records map[int]R) Remapped[R] {
	out := Remapped[R]{Moved: make(map[int]R), Gone: make(map[int]R)}
	for i, rec := range records {
		if j, ok := c.BIndex(i); ok {
			out.Moved[j] = rec
		} else {
			out.Gone[i] = rec
		}
	}

	return out
}

// RemapLines aligns two versions of a file with cmp and remaps records.
func RemapLines[R any](
	oldLines, newLines []string,
	cmp sequence.Comparator[sequence.Lines],
	records map[int]R,
	opts ...match.Option,
) (Remapped[R], error) {
	c, err := match.Lines(oldLines, newLines, cmp, opts...)
	if err != nil {
		return Remapped[R]{}, err
	}

	return Remap(c, records), nil
}
