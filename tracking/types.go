package tracking

import (
	"errors"
	"sort"
	"time"

	"github.com/katalvlaran/linetrack/match"
)

// Sentinel errors for tracking.
var (
	// ErrResourceMismatch is returned when the two snapshots name different resources.
	ErrResourceMismatch = errors.New("tracking: snapshots belong to different resources")

	// ErrInvalidIssue is returned for an issue whose line lies outside its snapshot.
	ErrInvalidIssue = errors.New("tracking: issue line out of range")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("tracking: invalid option supplied")
)

// Status is the lifecycle state of an issue.
type Status string

const (
	// StatusOpen marks an issue present in the latest analysis.
	StatusOpen Status = "OPEN"
	// StatusClosed marks an issue that disappeared.
	StatusClosed Status = "CLOSED"
)

// Issue is an identity-bearing finding attached to a line of a resource.
type Issue struct {
	// Key is the stable identity carried across versions.
	Key string `json:"key" yaml:"key"`
	// Rule identifies the check that raised the issue.
	Rule string `json:"rule" yaml:"rule"`
	// Line is 1-based; 0 marks a file-level issue.
	Line     int    `json:"line,omitempty" yaml:"line,omitempty"`
	Message  string `json:"message" yaml:"message"`
	Severity string `json:"severity,omitempty" yaml:"severity,omitempty"`
	// Checksum of the flagged line; computed from the snapshot when empty.
	Checksum  string     `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	Status    Status     `json:"status,omitempty" yaml:"status,omitempty"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty" yaml:"closed_at,omitempty"`
}

// Snapshot is one analysed version of a resource.
type Snapshot struct {
	Resource   string    `json:"resource" yaml:"resource"`
	Lines      []string  `json:"lines" yaml:"lines"`
	Issues     []Issue   `json:"issues" yaml:"issues"`
	AnalyzedAt time.Time `json:"analyzed_at" yaml:"analyzed_at"`
}

// Result is the outcome of tracking one resource.
type Result struct {
	Resource string
	// Correspondence between reference and current lines.
	Correspondence *match.Correspondence
	// Tracked are current issues that inherited a reference identity.
	Tracked []Issue
	// New are current issues with no reference counterpart.
	New []Issue
	// Closed are reference issues with no current counterpart.
	Closed []Issue
}

// Open returns Tracked and New issues ordered by line, rule and key: the
// open issue set of the current snapshot.
func (r Result) Open() []Issue {
	out := make([]Issue, 0, len(r.Tracked)+len(r.New))
	out = append(out, r.Tracked...)
	out = append(out, r.New...)
	sortIssues(out)

	return out
}

func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}

		return a.Key < b.Key
	})
}
