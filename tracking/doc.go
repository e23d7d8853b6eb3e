// Package tracking carries the identity of line-anchored records from one
// version of a file to the next, using the correspondence computed by match.
//
// Remap is the narrow boundary: records keyed by old line index either move
// to the matched new index or are reported gone.
//
// Tracker builds on it for analysis issues. Each current issue is matched
// against the open issues of the reference snapshot in successive passes,
// each pass consuming what it matched:
//
//  1. same rule, line carried by the correspondence, same line checksum
//  2. same rule, line carried by the correspondence
//  3. same rule, same line checksum (the block moved)
//  4. same rule, same message, same line number
//  5. same rule, same message, both file-level (Line == 0)
//
// A matched current issue inherits the reference Key and CreatedAt. Reference
// issues left over are closed; current issues left over are new and get a
// fresh key.
//
// TrackAll runs independent files in parallel with a bounded worker pool.
package tracking
