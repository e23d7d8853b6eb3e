package report

import (
	"fmt"

	"github.com/katalvlaran/linetrack/match"
)

// Summary counts what a correspondence did to each side.
type Summary struct {
	Matched  int `json:"matched"`
	Deleted  int `json:"deleted"`
	Inserted int `json:"inserted"`
	// Changes counts non-equal edit regions.
	Changes int `json:"changes"`
}

// Summarize tallies c.
func Summarize(c *match.Correspondence) Summary {
	s := Summary{
		Matched:  c.Matched(),
		Deleted:  c.LenA() - c.Matched(),
		Inserted: c.LenB() - c.Matched(),
	}
	for _, e := range c.Edits() {
		if e.Op != match.OpEqual {
			s.Changes++
		}
	}

	return s
}

// String renders the summary on one line.
func (s Summary) String() string {
	return fmt.Sprintf("%d matched, %d deleted, %d inserted in %d changes", s.Matched, s.Deleted, s.Inserted, s.Changes)
}
