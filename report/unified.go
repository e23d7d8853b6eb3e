// Package report renders a line correspondence for people: unified diffs,
// character-level highlights of replaced lines and short summaries.
package report

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/linetrack/match"
	"github.com/sourcegraph/go-diff/diff"
)

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 3

var (
	// ErrLengthMismatch is returned when the lines do not fit the correspondence.
	ErrLengthMismatch = errors.New("report: lines do not match correspondence")

	// ErrNegativeContext is returned for a negative context size.
	ErrNegativeContext = errors.New("report: context must not be negative")
)

// scriptLine is one line of the edit script with its position on each side.
type scriptLine struct {
	op   byte // ' ', '-' or '+'
	text string
	a, b int // lines of A and B consumed before this one
}

// script flattens c.Edits into per-line operations. Replace regions list
// their deletions before their insertions.
func script(a, b []string, c *match.Correspondence) []scriptLine {
	out := make([]scriptLine, 0, len(a)+len(b))
	for _, e := range c.Edits() {
		switch e.Op {
		case match.OpEqual:
			for k := 0; k < e.LenA(); k++ {
				out = append(out, scriptLine{op: ' ', text: a[e.BeginA+k], a: e.BeginA + k, b: e.BeginB + k})
			}
		default:
			for i := e.BeginA; i < e.EndA; i++ {
				out = append(out, scriptLine{op: '-', text: a[i], a: i, b: e.BeginB})
			}
			for j := e.BeginB; j < e.EndB; j++ {
				out = append(out, scriptLine{op: '+', text: b[j], a: e.EndA, b: j})
			}
		}
	}

	return out
}

// Hunks groups the changes of c into unified diff hunks with context
// unchanged lines around each change. Changes closer than 2*context lines
// share a hunk.
func Hunks(a, b []string, c *match.Correspondence, context int) ([]*diff.Hunk, error) {
	if c == nil || len(a) != c.LenA() || len(b) != c.LenB() {
		return nil, ErrLengthMismatch
	}
	if context < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeContext, context)
	}

	lines := script(a, b, c)
	var hunks []*diff.Hunk
	for i := 0; i < len(lines); {
		if lines[i].op == ' ' {
			i++

			continue
		}
		start := max(0, i-context)
		// extend while the next change is within 2*context equal lines
		end, last := i, i
		for end < len(lines) {
			if lines[end].op != ' ' {
				last = end
			} else if end-last > 2*context {
				break
			}
			end++
		}
		end = min(len(lines), last+1+context)
		hunks = append(hunks, hunk(lines[start:end]))
		i = end
	}

	return hunks, nil
}

func hunk(lines []scriptLine) *diff.Hunk {
	h := &diff.Hunk{}
	var body []byte
	for _, l := range lines {
		switch l.op {
		case ' ':
			h.OrigLines++
			h.NewLines++
		case '-':
			h.OrigLines++
		case '+':
			h.NewLines++
		}
		body = append(body, l.op)
		body = append(body, l.text...)
		body = append(body, '\n')
	}
	h.Body = body

	// an empty side starts at the line before the change
	h.OrigStartLine = int32(lines[0].a)
	if h.OrigLines > 0 {
		h.OrigStartLine++
	}
	h.NewStartLine = int32(lines[0].b)
	if h.NewLines > 0 {
		h.NewStartLine++
	}

	return h
}

// Unified renders the changes of c as a unified diff between oldName and
// newName. Identical inputs render as nothing.
func Unified(oldName, newName string, a, b []string, c *match.Correspondence, context int) ([]byte, error) {
	hunks, err := Hunks(a, b, c, context)
	if err != nil {
		return nil, err
	}
	if len(hunks) == 0 {
		return nil, nil
	}

	return diff.PrintFileDiff(&diff.FileDiff{
		OrigName: oldName,
		NewName:  newName,
		Hunks:    hunks,
	})
}
