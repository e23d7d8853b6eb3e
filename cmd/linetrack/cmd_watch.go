package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/linetrack/report"
	"github.com/katalvlaran/linetrack/watch"
)

// watchMetrics counts what watch observed.
type watchMetrics struct {
	changes prometheus.Counter
	lines   *prometheus.CounterVec
}

func newWatchMetrics(reg prometheus.Registerer) *watchMetrics {
	f := promauto.With(reg)

	return &watchMetrics{
		changes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "linetrack",
			Subsystem: "watch",
			Name:      "changes_total",
			Help:      "Saved versions that differed from the previous one",
		}),
		lines: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "linetrack",
			Subsystem: "watch",
			Name:      "lines_total",
			Help:      "Lines by correspondence kind across observed changes",
		}, []string{"kind"}),
	}
}

func (m *watchMetrics) observe(s report.Summary) {
	m.changes.Inc()
	m.lines.WithLabelValues("matched").Add(float64(s.Matched))
	m.lines.WithLabelValues("inserted").Add(float64(s.Inserted))
	m.lines.WithLabelValues("deleted").Add(float64(s.Deleted))
}

// serveMetrics exposes reg on addr until ctx is done.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, errs chan<- error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errs <- err
	}
}

func newWatchCmd(a *app) *cobra.Command {
	var (
		contextLines int
		metricsAddr  string
	)
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Follow a file and print a diff for every saved edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.cfg.MatchOptions()
			if err != nil {
				return err
			}
			w, err := watch.New(args[0], a.cfg.LineComparator(), a.logger, opts...)
			if err != nil {
				return err
			}
			defer w.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			reg := prometheus.NewRegistry()
			metrics := newWatchMetrics(reg)
			serveErrs := make(chan error, 1)
			if addr := metricsAddr; addr != "" || a.cfg.Metrics.Addr != "" {
				if addr == "" {
					addr = a.cfg.Metrics.Addr
				}
				go serveMetrics(ctx, addr, reg, serveErrs)
				a.logger.Info("serving metrics", "addr", addr)
			}

			out := cmd.OutOrStdout()
			errc := make(chan error, 1)
			go func() {
				errc <- w.Run(ctx, func(ch watch.Change) error {
					sum := report.Summarize(ch.Correspondence)
					metrics.observe(sum)
					a.logger.Info("file changed", "path", ch.Path, "summary", sum.String())
					text, err := report.Unified(ch.Path, ch.Path, ch.Old, ch.New, ch.Correspondence, contextLines)
					if err != nil {
						return err
					}
					_, err = out.Write(text)

					return err
				})
			}()

			select {
			case err := <-errc:
				return err
			case err := <-serveErrs:
				cancel()
				<-errc

				return err
			}
		},
	}
	cmd.Flags().IntVarP(&contextLines, "context", "U", report.DefaultContext, "unchanged lines around each change")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (overrides metrics.addr)")

	return cmd
}
