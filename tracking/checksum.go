package tracking

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/katalvlaran/linetrack/sequence"
)

// LineChecksum fingerprints a line ignoring all whitespace, so reindenting a
// flagged line does not change its checksum.
func LineChecksum(line string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(sequence.IgnoreAllWhitespace.Normalize(line)))
}
