// Command linetrack diffs file versions and carries analysis issues across
// them.
//
//	linetrack diff OLD NEW             unified diff of two files
//	linetrack track RESOURCE FILE      track issues of one analysed file
//	linetrack batch MANIFEST           track many files in parallel
//	linetrack watch FILE               follow a file and print each edit
//	linetrack list | forget RESOURCE   inspect the snapshot store
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "linetrack:", err)
		stop()
		os.Exit(1)
	}
}
