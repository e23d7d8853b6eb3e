package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/linetrack/match"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Inline marks the character-level difference between two versions of a
// line in word-diff style: removed text as [-...-], added text as {+...+}.
func Inline(oldLine, newLine string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldLine, newLine, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-")
			sb.WriteString(d.Text)
			sb.WriteString("-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+")
			sb.WriteString(d.Text)
			sb.WriteString("+}")
		}
	}

	return sb.String()
}

// WriteInline writes one highlighted line per replaced line pair of c, as
// "oldLine:newLine: highlight" with 1-based line numbers. Within a replace
// region, lines are paired in order and surplus lines are skipped.
func WriteInline(w io.Writer, a, b []string, c *match.Correspondence) error {
	if c == nil || len(a) != c.LenA() || len(b) != c.LenB() {
		return ErrLengthMismatch
	}
	for _, e := range c.Edits() {
		if e.Op != match.OpReplace {
			continue
		}
		for k := 0; k < min(e.LenA(), e.LenB()); k++ {
			i, j := e.BeginA+k, e.BeginB+k
			if _, err := fmt.Fprintf(w, "%d:%d: %s\n", i+1, j+1, Inline(a[i], b[j])); err != nil {
				return err
			}
		}
	}

	return nil
}
