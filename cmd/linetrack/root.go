package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/linetrack/config"
	"github.com/katalvlaran/linetrack/sequence"
	"github.com/katalvlaran/linetrack/store"
	"github.com/katalvlaran/linetrack/tracking"
)

// app is the state shared by all subcommands once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	logJSON    bool

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "linetrack",
		Short:         "Line-level diffing and issue tracking across file versions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "linetrack.yaml", "configuration file (missing file means defaults)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "log as JSON")

	root.AddCommand(
		newDiffCmd(a),
		newTrackCmd(a),
		newBatchCmd(a),
		newWatchCmd(a),
		newListCmd(a),
		newForgetCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON = a.logJSON
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Log.NewLogger(cmd.ErrOrStderr())
	a.logger.Debug("configuration loaded", "path", a.configPath, "comparator", cfg.Comparator, "strategy", cfg.Match.Strategy)

	return nil
}

// comparator resolves a --comparator override against the configuration.
func (a *app) comparator(override string) (sequence.LineComparator, error) {
	if override == "" {
		return a.cfg.LineComparator(), nil
	}
	cmp, ok := sequence.ComparatorByName(override)
	if !ok {
		return cmp, fmt.Errorf("unknown comparator %q", override)
	}

	return cmp, nil
}

func (a *app) openStore() (*store.Store, error) {
	return store.Open(a.cfg.StoreOptions(a.logger.WithGroup("badger")))
}

func (a *app) newTracker(metrics *tracking.Metrics) (*tracking.Tracker, error) {
	opts, err := a.cfg.TrackerOptions(a.logger, metrics)
	if err != nil {
		return nil, err
	}

	return tracking.NewTracker(opts...)
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return sequence.SplitLines(string(data)), nil
}
