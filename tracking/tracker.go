package tracking

import (
	"fmt"
	"strconv"
	"time"

	"github.com/katalvlaran/linetrack/match"
)

// Tracker carries issue identity between snapshots. It holds only immutable
// configuration and is safe for concurrent use.
type Tracker struct {
	opts Options
}

// NewTracker applies opts over DefaultOptions.
func NewTracker(opts ...Option) (*Tracker, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &Tracker{opts: o}, nil
}

// Options returns a copy of the tracker configuration.
func (t *Tracker) Options() Options { return t.opts }

// Track matches the issues of cur against the open issues of ref.
//
// ref may be the zero Snapshot for a first analysis: every current issue is
// then new. Closed reference issues are ignored.
func (t *Tracker) Track(ref, cur Snapshot) (Result, error) {
	if ref.Resource != "" && cur.Resource != "" && ref.Resource != cur.Resource {
		return Result{}, fmt.Errorf("%w: %q vs %q", ErrResourceMismatch, ref.Resource, cur.Resource)
	}
	start := time.Now()

	refIssues, err := withChecksums(openIssues(ref.Issues), ref.Lines)
	if err != nil {
		return Result{}, fmt.Errorf("reference %s: %w", ref.Resource, err)
	}
	curIssues, err := withChecksums(cur.Issues, cur.Lines)
	if err != nil {
		return Result{}, fmt.Errorf("current %s: %w", cur.Resource, err)
	}

	c, err := match.Lines(ref.Lines, cur.Lines, t.opts.Comparator, t.opts.Match...)
	if err != nil {
		return Result{}, fmt.Errorf("match %s: %w", cur.Resource, err)
	}

	tr := &issueTracker{
		c:        c,
		ref:      refIssues,
		cur:      curIssues,
		refTaken: make([]bool, len(refIssues)),
		curMatch: make([]int, len(curIssues)),
	}
	for i := range tr.curMatch {
		tr.curMatch[i] = -1
	}
	tr.pass(tr.byMappedLineAndChecksum)
	tr.pass(tr.byMappedLine)
	tr.pass(byChecksum)
	tr.pass(byLineAndMessage)
	tr.pass(byFileLevelMessage)

	now := t.opts.Now()
	res := Result{Resource: cur.Resource, Correspondence: c}
	for ci, is := range curIssues {
		is.Status = StatusOpen
		is.ClosedAt = nil
		if ri := tr.curMatch[ci]; ri >= 0 {
			is.Key = refIssues[ri].Key
			is.CreatedAt = refIssues[ri].CreatedAt
			res.Tracked = append(res.Tracked, is)

			continue
		}
		if is.Key == "" {
			is.Key = t.opts.NewKey()
		}
		if is.CreatedAt.IsZero() {
			is.CreatedAt = now
		}
		res.New = append(res.New, is)
	}
	for ri, is := range refIssues {
		if tr.refTaken[ri] {
			continue
		}
		closedAt := now
		is.Status = StatusClosed
		is.ClosedAt = &closedAt
		res.Closed = append(res.Closed, is)
	}

	t.opts.Logger.Debug("tracked resource",
		"resource", cur.Resource,
		"lines_matched", c.Matched(),
		"lines_inserted", len(c.Inserted()),
		"lines_deleted", len(c.Deleted()),
		"tracked", len(res.Tracked),
		"new", len(res.New),
		"closed", len(res.Closed),
	)
	if t.opts.Metrics != nil {
		t.opts.Metrics.observe(res, time.Since(start))
	}

	return res, nil
}

func openIssues(issues []Issue) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, is := range issues {
		if is.Status != StatusClosed {
			out = append(out, is)
		}
	}

	return out
}

// withChecksums copies issues, validating lines and filling missing checksums.
func withChecksums(issues []Issue, lines []string) ([]Issue, error) {
	out := make([]Issue, len(issues))
	for i, is := range issues {
		if is.Line < 0 || is.Line > len(lines) {
			return nil, fmt.Errorf("%w: %s line %d of %d", ErrInvalidIssue, is.Rule, is.Line, len(lines))
		}
		if is.Checksum == "" && is.Line > 0 {
			is.Checksum = LineChecksum(lines[is.Line-1])
		}
		out[i] = is
	}

	return out, nil
}

// keyFunc derives a pass key for an issue; ok=false excludes it from the pass.
// isRef tells whether the issue comes from the reference snapshot.
type keyFunc func(is Issue, isRef bool) (key string, ok bool)

type issueTracker struct {
	c        *match.Correspondence
	ref      []Issue
	cur      []Issue
	refTaken []bool
	curMatch []int
}

// pass pairs still-unmatched current issues with still-unmatched reference
// issues sharing a key, first come first served in input order.
func (tr *issueTracker) pass(key keyFunc) {
	index := make(map[string][]int)
	for ri, is := range tr.ref {
		if tr.refTaken[ri] {
			continue
		}
		if k, ok := key(is, true); ok {
			index[k] = append(index[k], ri)
		}
	}
	if len(index) == 0 {
		return
	}
	for ci, is := range tr.cur {
		if tr.curMatch[ci] >= 0 {
			continue
		}
		k, ok := key(is, false)
		if !ok {
			continue
		}
		candidates := index[k]
		for len(candidates) > 0 && tr.refTaken[candidates[0]] {
			candidates = candidates[1:]
		}
		if len(candidates) == 0 {
			continue
		}
		ri := candidates[0]
		index[k] = candidates[1:]
		tr.refTaken[ri] = true
		tr.curMatch[ci] = ri
	}
}

// mappedLine returns the line an issue sits on in the current version: its
// own line for current issues, the carried line for reference issues.
func (tr *issueTracker) mappedLine(is Issue, isRef bool) (int, bool) {
	if is.Line <= 0 {
		return 0, false
	}
	if !isRef {
		return is.Line, true
	}
	j, ok := tr.c.BIndex(is.Line - 1)

	return j + 1, ok
}

func (tr *issueTracker) byMappedLineAndChecksum(is Issue, isRef bool) (string, bool) {
	line, ok := tr.mappedLine(is, isRef)
	if !ok {
		return "", false
	}

	return is.Rule + "\x00" + strconv.Itoa(line) + "\x00" + is.Checksum, true
}

func (tr *issueTracker) byMappedLine(is Issue, isRef bool) (string, bool) {
	line, ok := tr.mappedLine(is, isRef)
	if !ok {
		return "", false
	}

	return is.Rule + "\x00" + strconv.Itoa(line), true
}

func byChecksum(is Issue, _ bool) (string, bool) {
	if is.Line <= 0 || is.Checksum == "" {
		return "", false
	}

	return is.Rule + "\x00" + is.Checksum, true
}

func byLineAndMessage(is Issue, _ bool) (string, bool) {
	if is.Line <= 0 {
		return "", false
	}

	return is.Rule + "\x00" + strconv.Itoa(is.Line) + "\x00" + is.Message, true
}

func byFileLevelMessage(is Issue, _ bool) (string, bool) {
	if is.Line != 0 {
		return "", false
	}

	return is.Rule + "\x00" + is.Message, true
}
