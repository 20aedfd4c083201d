package webapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Build outcomes recorded by Metrics.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics tracks leaderboard builds.
type Metrics struct {
	BuildDuration prometheus.Histogram
	Builds        *prometheus.CounterVec
}

// NewMetrics registers the build metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		BuildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "scoreboard_page_build_duration_seconds",
			Help:    "Time spent building the leaderboard from the store.",
			Buckets: prometheus.DefBuckets,
		}),
		Builds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "scoreboard_page_builds_total",
			Help: "Leaderboard builds by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) observe(seconds float64, err error) {
	if m == nil {
		return
	}
	m.BuildDuration.Observe(seconds)
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.Builds.WithLabelValues(outcome).Inc()
}
