package ratelimitcore

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/lowc1012/ratelimitcore/ratelimit"
)

// Option configures a *Limiter at construction time.
type Option func(*Limiter)

// WithConfig overrides the StrategyConfig used when kind's Strategy is first
// constructed. Has no effect once that Strategy already exists in the cache.
func WithConfig(kind ratelimit.Kind, cfg ratelimit.StrategyConfig) Option {
	return func(l *Limiter) {
		l.configs[kind] = cfg
	}
}

// WithRegisterer sets the Prometheus registerer used for the limiter's
// metrics. Defaults to prometheus.DefaultRegisterer.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(l *Limiter) {
		l.registerer = reg
	}
}

// WithLogger sets the zap logger used for fail-open and reset-failure log
// lines. Defaults to log.Logger().
func WithLogger(logger *zap.Logger) Option {
	return func(l *Limiter) {
		l.logger = logger
	}
}
