package report_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/katalvlaran/linetrack/match"
	"github.com/katalvlaran/linetrack/report"
	"github.com/katalvlaran/linetrack/sequence"
	"github.com/sourcegraph/go-diff/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func correspond(t *testing.T, a, b []string) *match.Correspondence {
	t.Helper()
	c, err := match.Lines(a, b, sequence.Exact)
	require.NoError(t, err)

	return c
}

func numbered(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}

	return out
}

func twoChanges() (a, b []string) {
	a = numbered("l", 10)
	b = append([]string(nil), a...)
	b[1] = "X2"
	b[8] = "X9"

	return a, b
}

func TestUnified_SeparateHunks(t *testing.T) {
	a, b := twoChanges()
	out, err := report.Unified("a.txt", "b.txt", a, b, correspond(t, a, b), 1)
	require.NoError(t, err)

	want := "--- a.txt\n+++ b.txt\n" +
		"@@ -1,3 +1,3 @@\n l1\n-l2\n+X2\n l3\n" +
		"@@ -8,3 +8,3 @@\n l8\n-l9\n+X9\n l10\n"
	assert.Equal(t, want, string(out))

	fd, err := diff.ParseFileDiff(out)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", fd.OrigName)
	assert.Equal(t, "b.txt", fd.NewName)
	require.Len(t, fd.Hunks, 2)
	assert.Equal(t, diff.Stat{Changed: 2}, fd.Stat())
}

func TestUnified_MergedHunk(t *testing.T) {
	a, b := twoChanges()
	hunks, err := report.Hunks(a, b, correspond(t, a, b), 3)
	require.NoError(t, err)
	require.Len(t, hunks, 1)
	h := hunks[0]
	assert.Equal(t, int32(1), h.OrigStartLine)
	assert.Equal(t, int32(10), h.OrigLines)
	assert.Equal(t, int32(1), h.NewStartLine)
	assert.Equal(t, int32(10), h.NewLines)
	assert.Equal(t, 12, bytes.Count(h.Body, []byte("\n")))
}

func TestUnified_EmptySides(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []string
		context int
		want    string
	}{
		{
			name: "insert at start",
			a:    []string{"x"}, b: []string{"new", "x"},
			context: 0,
			want:    "--- old\n+++ new\n@@ -0,0 +1,1 @@\n+new\n",
		},
		{
			name: "delete everything",
			a:    []string{"p", "q"}, b: nil,
			context: 3,
			want:    "--- old\n+++ new\n@@ -1,2 +0,0 @@\n-p\n-q\n",
		},
		{
			name: "append after last line",
			a:    []string{"p", "q"}, b: []string{"p", "q", "r"},
			context: 1,
			want:    "--- old\n+++ new\n@@ -2,1 +2,2 @@\n q\n+r\n",
		},
		{
			name: "identical",
			a:    []string{"p"}, b: []string{"p"},
			context: 3,
			want:    "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := report.Unified("old", "new", tc.a, tc.b, correspond(t, tc.a, tc.b), tc.context)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(out))
		})
	}
}

func TestUnified_Errors(t *testing.T) {
	a, b := twoChanges()
	c := correspond(t, a, b)

	_, err := report.Unified("a", "b", a[:3], b, c, 3)
	assert.ErrorIs(t, err, report.ErrLengthMismatch)

	_, err = report.Unified("a", "b", a, b, nil, 3)
	assert.ErrorIs(t, err, report.ErrLengthMismatch)

	_, err = report.Unified("a", "b", a, b, c, -1)
	assert.ErrorIs(t, err, report.ErrNegativeContext)
}

func TestInline(t *testing.T) {
	tests := []struct {
		old, new, want string
	}{
		{"return a / b", "return a % b", "return a [-/-]{+%+} b"},
		{"same", "same", "same"},
		{"", "abc", "{+abc+}"},
		{"abc", "", "[-abc-]"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, report.Inline(tc.old, tc.new), "%q -> %q", tc.old, tc.new)
	}
}

func TestWriteInline(t *testing.T) {
	a := []string{"a", "x := 1", "c", "gone"}
	b := []string{"a", "x := 2", "c"}

	var buf bytes.Buffer
	require.NoError(t, report.WriteInline(&buf, a, b, correspond(t, a, b)))
	assert.Equal(t, "2:2: x := [-1-]{+2+}\n", buf.String())

	assert.ErrorIs(t, report.WriteInline(&buf, a, b[:1], correspond(t, a, b)), report.ErrLengthMismatch)
}

func TestSummarize(t *testing.T) {
	c := correspond(t, []string{"a", "b", "c", "d"}, []string{"a", "x", "c", "d", "e"})
	s := report.Summarize(c)
	assert.Equal(t, report.Summary{Matched: 3, Deleted: 1, Inserted: 2, Changes: 2}, s)
	assert.Equal(t, "3 matched, 1 deleted, 2 inserted in 2 changes", s.String())
}
