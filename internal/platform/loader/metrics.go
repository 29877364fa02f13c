package loader

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the optional prometheus collectors a Coordinator reports to.
type Metrics struct {
	lookups  *prometheus.CounterVec
	attempts *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "requestcache_lookups_total",
				Help: "Request cache lookups made by the loader, by result",
			},
			[]string{"result"},
		),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loader_fetch_attempts_total",
				Help: "Fetch invocations made by the loader, by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "loader_fetch_duration_seconds",
				Help:    "Latency of individual fetch invocations",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.lookups, m.attempts, m.duration)
	}
	return m
}

func (m *Metrics) lookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.lookups.WithLabelValues("hit").Inc()
		return
	}
	m.lookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) attempt(err error, seconds float64) {
	if m == nil {
		return
	}
	m.duration.Observe(seconds)
	if err != nil {
		m.attempts.WithLabelValues("failure").Inc()
		return
	}
	m.attempts.WithLabelValues("success").Inc()
}
