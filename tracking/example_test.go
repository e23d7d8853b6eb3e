package tracking_test

import (
	"fmt"
	"time"

	"github.com/katalvlaran/linetrack/tracking"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleTracker_Track
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	A header comment was added above a function holding two issues, one of
//	which was fixed in the same change.
//
// Effect:
//
//	The remaining issue keeps its key and moves from line 2 to line 3.
//	The fixed one is closed.
func ExampleTracker_Track() {
	clock := func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	tr, err := tracking.NewTracker(tracking.WithClock(clock))
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	ref := tracking.Snapshot{
		Resource: "calc.go",
		Lines:    []string{"func div(a, b int) int {", "\treturn a / b", "\t_ = fmt.Sprint(a)", "}"},
		Issues: []tracking.Issue{
			{Key: "ISSUE-1", Rule: "zero-division", Line: 2, Message: "b may be zero"},
			{Key: "ISSUE-2", Rule: "unused-result", Line: 3, Message: "result discarded"},
		},
	}
	cur := tracking.Snapshot{
		Resource: "calc.go",
		Lines:    []string{"// div divides.", "func div(a, b int) int {", "\treturn a / b", "}"},
		Issues: []tracking.Issue{
			{Rule: "zero-division", Line: 3, Message: "b may be zero"},
		},
	}

	res, err := tr.Track(ref, cur)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	for _, is := range res.Tracked {
		fmt.Printf("tracked %s %s line %d\n", is.Key, is.Rule, is.Line)
	}
	for _, is := range res.Closed {
		fmt.Printf("closed %s %s at %s\n", is.Key, is.Rule, is.ClosedAt.Format(time.DateOnly))
	}
	// Output:
	// tracked ISSUE-1 zero-division line 3
	// closed ISSUE-2 unused-result at 2025-01-01
}
