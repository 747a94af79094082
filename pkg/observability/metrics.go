// Package observability exposes resolution metrics in Prometheus form.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for the resolutions counter.
const (
	OutcomeMatched   = "matched"
	OutcomeNone      = "none"
	OutcomeAmbiguous = "ambiguous"
	OutcomeError     = "error"
)

// Metrics collects resolution counters and latencies. The zero value is
// not usable; construct with NewMetrics.
type Metrics struct {
	resolutions *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics creates and registers the resolution metrics on the given
// registerer. Pass prometheus.DefaultRegisterer for the process-wide
// registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "verdict",
			Name:      "resolutions_total",
			Help:      "Resolutions performed, labelled by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "verdict",
			Name:      "resolution_duration_seconds",
			Help:      "Wall time of a single resolution.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	reg.MustRegister(m.resolutions, m.duration)
	return m
}

// Resolutions exposes the outcome counter, mainly for tests.
func (m *Metrics) Resolutions() *prometheus.CounterVec {
	return m.resolutions
}

// Observe records one resolution with its outcome label and duration.
func (m *Metrics) Observe(outcome string, elapsed time.Duration) {
	m.resolutions.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}
