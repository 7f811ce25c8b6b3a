package ratelimitcore

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	decisionsTotal  *prometheus.CounterVec
	checkDuration   *prometheus.HistogramVec
	storageFailures prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ratelimit_decisions_total",
				Help: "Total admission decisions made by the rate limiter",
			},
			[]string{"algorithm", "admitted"},
		),
		checkDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ratelimit_check_duration_seconds",
				Help:    "Time spent evaluating one admission decision",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"algorithm"},
		),
		storageFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ratelimit_storage_failures_total",
				Help: "Total storage failures that triggered fail-open admission",
			},
		),
	}

	reg.MustRegister(m.decisionsTotal, m.checkDuration, m.storageFailures)
	return m
}
