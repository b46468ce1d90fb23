// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the directory's collectors.  A nil *Metrics is valid and
// records nothing, which keeps callers free of nil checks in tests.
type Metrics struct {
	mutations   *prometheus.CounterVec
	mutationDur *prometheus.HistogramVec
	cache       *prometheus.CounterVec
	rateLimited *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fyyur_mutations_total",
				Help: "Directory mutations by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
		mutationDur: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fyyur_mutation_duration_seconds",
				Help:    "Time spent in directory mutations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fyyur_response_cache_total",
				Help: "Response cache lookups by result",
			},
			[]string{"result"},
		),
		rateLimited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fyyur_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
			[]string{"method"},
		),
	}
	reg.MustRegister(m.mutations, m.mutationDur, m.cache, m.rateLimited)
	return m
}

// ObserveMutation records one finished mutation.  outcome is "ok" or the
// error kind.
func (m *Metrics) ObserveMutation(op, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op, outcome).Inc()
	m.mutationDur.WithLabelValues(op).Observe(took.Seconds())
}

// CacheResult counts a response cache lookup ("hit", "miss", "purge").
func (m *Metrics) CacheResult(result string) {
	if m == nil {
		return
	}
	m.cache.WithLabelValues(result).Inc()
}

// RateLimited counts a rejected request.
func (m *Metrics) RateLimited(method string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(method).Inc()
}
