// Package linetrack aligns versions of a sequence and carries identity from
// one version to the next: lines of a file, issues raised on them, or any
// record keyed by a position.
//
// 🚀 What is in the box?
//
//	• sequence/ : Sequence and Comparator contracts, line comparators with
//	              whitespace modes, and the hash-caching decorators
//	• match/    : the matching engine: prefix/suffix trimming, unique-hash
//	              anchors, bounded exact alignment, Correspondence and edits
//	• tracking/ : Remap for position-keyed records, and the issue Tracker
//	              with its parallel TrackAll
//	• store/    : BadgerDB persistence of the latest snapshot per resource
//	• report/   : unified diffs, character-level highlights, summaries
//	• config/   : YAML configuration with validation
//	• watch/    : follow a file on disk and align every saved version
//	• cmd/linetrack : the command-line front end
//
// ✨ Guarantees
//
//   - Deterministic: the same inputs always give the same correspondence
//   - Order-preserving: matched pairs never cross
//   - Honest hashing: equal hashes are confirmed by the comparator, so a
//     collision can cost time but never a wrong match
//   - Pure core: sequence and match do no I/O and hold no locks
//
// Quick example:
//
//	A = [a b c d]
//	B = [a x c d]
//
//	0→0, 2→2, 3→3 are carried forward; A1 is deleted and B1 inserted.
//
//	go get github.com/katalvlaran/linetrack/match
package linetrack
