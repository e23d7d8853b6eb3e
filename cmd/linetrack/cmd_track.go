package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/linetrack/store"
	"github.com/katalvlaran/linetrack/tracking"
)

// issuesFile is the YAML layout of the issues raised on one file.
type issuesFile struct {
	Issues []tracking.Issue `yaml:"issues"`
}

// manifest lists the files of one batch analysis.
type manifest struct {
	Files []manifestEntry `yaml:"files"`
}

type manifestEntry struct {
	Resource string           `yaml:"resource"`
	Path     string           `yaml:"path"`
	Issues   []tracking.Issue `yaml:"issues"`
}

// resultView is the YAML rendering of a tracking.Result.
type resultView struct {
	Resource string           `yaml:"resource"`
	Tracked  []tracking.Issue `yaml:"tracked,omitempty"`
	New      []tracking.Issue `yaml:"new,omitempty"`
	Closed   []tracking.Issue `yaml:"closed,omitempty"`
}

func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

func writeResults(w io.Writer, format string, results ...tracking.Result) error {
	switch format {
	case "yaml":
		views := make([]resultView, len(results))
		for i, r := range results {
			views[i] = resultView{Resource: r.Resource, Tracked: r.Tracked, New: r.New, Closed: r.Closed}
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}

		return enc.Close()
	case "text":
		for _, r := range results {
			for _, is := range r.Tracked {
				fmt.Fprintf(w, "%s\ttracked\t%s\t%s:%d\t%s\n", r.Resource, is.Key, is.Rule, is.Line, is.Message)
			}
			for _, is := range r.New {
				fmt.Fprintf(w, "%s\tnew\t%s\t%s:%d\t%s\n", r.Resource, is.Key, is.Rule, is.Line, is.Message)
			}
			for _, is := range r.Closed {
				fmt.Fprintf(w, "%s\tclosed\t%s\t%s:%d\t%s\n", r.Resource, is.Key, is.Rule, is.Line, is.Message)
			}
		}

		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func newTrackCmd(a *app) *cobra.Command {
	var (
		issuesPath string
		format     string
	)
	cmd := &cobra.Command{
		Use:   "track RESOURCE FILE",
		Short: "Track the issues of one analysed file against its stored snapshot",
		Long: `Match the issues raised on FILE against the open issues stored for
RESOURCE, print which were tracked, opened and closed, and store the new
snapshot as the reference for the next run.

The issues file holds a YAML list under "issues" with rule, line (1-based,
0 for file-level), message and optional severity.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args[1])
			if err != nil {
				return err
			}
			var issues issuesFile
			if issuesPath != "" {
				if err := readYAML(issuesPath, &issues); err != nil {
					return err
				}
			}

			tr, err := a.newTracker(nil)
			if err != nil {
				return err
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			res, err := st.Advance(cmd.Context(), tr, tracking.Snapshot{
				Resource:   args[0],
				Lines:      lines,
				Issues:     issues.Issues,
				AnalyzedAt: time.Now().UTC(),
			})
			if err != nil {
				return err
			}

			return writeResults(cmd.OutOrStdout(), format, res)
		},
	}
	cmd.Flags().StringVar(&issuesPath, "issues", "", "YAML file with the current issues")
	cmd.Flags().StringVarP(&format, "format", "o", "text", "output format: text or yaml")

	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "batch MANIFEST",
		Short: "Track the issues of many files in parallel",
		Long: `Track every file listed in MANIFEST against its stored snapshot, using
tracking.workers parallel workers, and store the new snapshots.

MANIFEST is YAML:

  files:
    - resource: pkg/a.go
      path: src/pkg/a.go
      issues:
        - {rule: no-panic, line: 12, message: avoid panic}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var m manifest
			if err := readYAML(args[0], &m); err != nil {
				return err
			}

			tr, err := a.newTracker(nil)
			if err != nil {
				return err
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			now := time.Now().UTC()
			pairs := make([]tracking.Pair, len(m.Files))
			for i, f := range m.Files {
				lines, err := readLines(f.Path)
				if err != nil {
					return err
				}
				ref, err := st.Load(ctx, f.Resource)
				if err != nil && !errors.Is(err, store.ErrNotFound) {
					return err
				}
				pairs[i] = tracking.Pair{
					Reference: ref,
					Current:   tracking.Snapshot{Resource: f.Resource, Lines: lines, Issues: f.Issues, AnalyzedAt: now},
				}
			}

			results, err := tr.TrackAll(ctx, pairs)
			if err != nil {
				return err
			}
			for i, res := range results {
				next := pairs[i].Current
				next.Issues = res.Open()
				if err := st.Save(ctx, next); err != nil {
					return err
				}
			}
			a.logger.Info("batch tracked", "files", len(results))

			return writeResults(cmd.OutOrStdout(), format, results...)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "text", "output format: text or yaml")

	return cmd
}
