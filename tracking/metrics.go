package tracking

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records tracking outcomes in Prometheus.
type Metrics struct {
	// FilesTotal counts tracked resources.
	FilesTotal prometheus.Counter

	// IssuesTotal counts issues by outcome: tracked, new or closed.
	IssuesTotal *prometheus.CounterVec

	// LinesTotal counts lines by kind: matched, inserted or deleted.
	LinesTotal *prometheus.CounterVec

	// TrackSeconds observes the duration of one Track call.
	TrackSeconds prometheus.Histogram
}

// NewMetrics registers the tracking collectors on reg. A nil reg creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		FilesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "linetrack",
			Subsystem: "tracking",
			Name:      "files_total",
			Help:      "Total resources tracked",
		}),
		IssuesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "linetrack",
			Subsystem: "tracking",
			Name:      "issues_total",
			Help:      "Total issues by tracking outcome",
		}, []string{"outcome"}),
		LinesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "linetrack",
			Subsystem: "tracking",
			Name:      "lines_total",
			Help:      "Total lines by correspondence kind",
		}, []string{"kind"}),
		TrackSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "linetrack",
			Subsystem: "tracking",
			Name:      "track_duration_seconds",
			Help:      "Duration of one resource tracking",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
		}),
	}
}

func (m *Metrics) observe(res Result, d time.Duration) {
	m.FilesTotal.Inc()
	m.IssuesTotal.WithLabelValues("tracked").Add(float64(len(res.Tracked)))
	m.IssuesTotal.WithLabelValues("new").Add(float64(len(res.New)))
	m.IssuesTotal.WithLabelValues("closed").Add(float64(len(res.Closed)))
	if c := res.Correspondence; c != nil {
		m.LinesTotal.WithLabelValues("matched").Add(float64(c.Matched()))
		m.LinesTotal.WithLabelValues("inserted").Add(float64(c.LenB() - c.Matched()))
		m.LinesTotal.WithLabelValues("deleted").Add(float64(c.LenA() - c.Matched()))
	}
	m.TrackSeconds.Observe(d.Seconds())
}
