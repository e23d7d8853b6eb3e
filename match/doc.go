// Package match aligns two hashed sequences and returns an order-preserving
// correspondence between their indices.
//
// 🚀 What is a correspondence?
//
//	Given a reference sequence A and a new sequence B, a correspondence maps
//	some indices of A to indices of B so that matched pairs never cross:
//	i1 < i2 ⇔ j1 < j2. Unmapped A indices are deletions, unmapped B indices
//	are insertions. It is what lets an issue reported on line 33 of version N
//	be recognised on line 35 of version N+1.
//
// ✨ Algorithm (Anchored strategy, the default):
//  1. Match the common prefix and suffix once; they are never rescanned.
//  2. Bucket the remaining elements by their cached hash. A hash seen exactly
//     once on each side whose two elements are precisely equal is an anchor.
//  3. Keep the longest chain of anchors increasing in both coordinates,
//     extend every anchor over equal neighbours and recurse into the regions
//     bracketed by consecutive anchors.
//  4. A region with no unique anchor is aligned exactly with an LCS dynamic
//     programme. Regions larger than MaxCells are first split at their
//     lowest-occurrence common element.
//
// Tie-break: inside an exact region the alignment with the most matched
// elements wins; among those the earliest match (smallest A index, then
// smallest B index) is taken. Results are deterministic.
//
// ⚙️ Usage:
//
//	a, b, cmp := sequence.Prepare(oldLines, newLines, sequence.Comparator[sequence.Lines](sequence.Exact))
//	c, err := match.Match(a, b, cmp)
//	if err != nil {
//	  // ErrNilSequence, ErrNilComparator, ErrOptionViolation, ErrRegionTooLarge
//	}
//	j, ok := c.BIndex(33)
//
// Performance:
//
//   - Time:   O(n + m) when few elements changed; O(k²) inside ambiguous
//     regions of total size k.
//   - Memory: O(n + m) plus the DP table of the largest exact region
//     (bounded by MaxCells).
//
// The package performs no I/O and holds no shared state: independent
// matches may run in parallel.
package match
