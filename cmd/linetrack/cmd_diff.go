package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/linetrack/match"
	"github.com/katalvlaran/linetrack/report"
)

func newDiffCmd(a *app) *cobra.Command {
	var (
		contextLines int
		inline       bool
		stat         bool
		comparator   string
		strategy     string
	)
	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Print a unified diff of two files",
		Long: `Align two versions of a file line by line and print the result as a
unified diff.

Examples:
  linetrack diff old/main.go main.go
  linetrack diff --comparator all --inline a.txt b.txt
  linetrack diff --strategy exact --stat a.txt b.txt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp, err := a.comparator(comparator)
			if err != nil {
				return err
			}
			opts, err := a.cfg.MatchOptions()
			if err != nil {
				return err
			}
			if strategy != "" {
				s, err := match.ParseStrategy(strategy)
				if err != nil {
					return err
				}
				opts = append(opts, match.WithStrategy(s))
			}

			oldLines, err := readLines(args[0])
			if err != nil {
				return err
			}
			newLines, err := readLines(args[1])
			if err != nil {
				return err
			}
			c, err := match.Lines(oldLines, newLines, cmp, opts...)
			if err != nil {
				return err
			}
			a.logger.Debug("files aligned",
				"old", args[0], "new", args[1],
				"prefix", c.Stats().Prefix, "suffix", c.Stats().Suffix,
				"anchors", c.Stats().Anchors, "cells", c.Stats().Cells,
			)

			out := cmd.OutOrStdout()
			if stat {
				_, err := fmt.Fprintln(out, report.Summarize(c))

				return err
			}
			text, err := report.Unified(args[0], args[1], oldLines, newLines, c, contextLines)
			if err != nil {
				return err
			}
			if _, err := out.Write(text); err != nil {
				return err
			}
			if inline {
				return report.WriteInline(out, oldLines, newLines, c)
			}

			return nil
		},
	}
	cmd.Flags().IntVarP(&contextLines, "context", "U", report.DefaultContext, "unchanged lines around each change")
	cmd.Flags().BoolVar(&inline, "inline", false, "also print character-level changes of replaced lines")
	cmd.Flags().BoolVar(&stat, "stat", false, "print a summary instead of the diff")
	cmd.Flags().StringVar(&comparator, "comparator", "", "override comparator: exact, trailing, leading, all or change")
	cmd.Flags().StringVar(&strategy, "strategy", "", "override strategy: anchored or exact")

	return cmd
}
