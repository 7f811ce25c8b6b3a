package ratelimitcore

import (
	"context"
	"errors"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lowc1012/ratelimitcore/internal/log"
	"github.com/lowc1012/ratelimitcore/internal/redisscript"
	"github.com/lowc1012/ratelimitcore/internal/strategy"
	"github.com/lowc1012/ratelimitcore/ratelimit"
)

// strategyHolder lazily builds exactly one Strategy per AlgorithmKind. Its
// sync.Once is scoped to this one kind, so constructing the Token Bucket
// Strategy never blocks a concurrent first use of Leaky Bucket.
type strategyHolder struct {
	once     sync.Once
	strategy strategy.Strategy
	err      error
}

// Limiter dispatches admission decisions to the Strategy for each requested
// AlgorithmKind, caching one Strategy instance per kind and applying
// fail-open semantics when Redis itself is unreachable.
type Limiter struct {
	exec       redisscript.Executor
	configs    map[ratelimit.Kind]ratelimit.StrategyConfig
	strategies sync.Map // ratelimit.Kind -> *strategyHolder

	registerer prometheus.Registerer
	logger     *zap.Logger
	metrics    *metrics
}

// New builds a Limiter against client. Strategies are constructed lazily, on
// first use of each AlgorithmKind, using ratelimit.DefaultsFor(kind) unless
// overridden with WithConfig.
func New(client *redis.Client, opts ...Option) *Limiter {
	l := &Limiter{
		exec:       redisscript.New(client),
		configs:    make(map[ratelimit.Kind]ratelimit.StrategyConfig),
		registerer: prometheus.DefaultRegisterer,
		logger:     log.Logger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.metrics = newMetrics(l.registerer)
	return l
}

func (l *Limiter) getOrCreate(kind ratelimit.Kind) (strategy.Strategy, error) {
	v, _ := l.strategies.LoadOrStore(kind, &strategyHolder{})
	holder := v.(*strategyHolder)
	holder.once.Do(func() {
		cfg, ok := l.configs[kind]
		if !ok {
			cfg = ratelimit.DefaultsFor(kind)
		}
		holder.strategy, holder.err = strategy.Create(kind, cfg, l.exec)
	})
	return holder.strategy, holder.err
}

// Check evaluates one admission decision for identifier under kind. On a
// Redis storage failure it fails open: it logs, increments
// ratelimit_storage_failures_total, and returns an admitted Result instead of
// an error. A *ratelimit.ValidationError (misconfigured kind) still
// propagates — that is a caller bug, not a storage hiccup.
func (l *Limiter) Check(ctx context.Context, kind ratelimit.Kind, identifier string) (*ratelimit.Result, error) {
	s, err := l.getOrCreate(kind)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.Run(ctx, identifier)
	l.metrics.checkDuration.WithLabelValues(kind.String()).Observe(time.Since(start).Seconds())

	if err != nil {
		var storageErr *redisscript.StorageError
		if errors.As(err, &storageErr) {
			l.logger.Error("rate limiter storage failure, failing open",
				zap.String("algorithm", kind.String()),
				zap.String("identifier", identifier),
				zap.Error(err),
			)
			l.metrics.storageFailures.Inc()
			l.metrics.decisionsTotal.WithLabelValues(kind.String(), "true").Inc()
			return ratelimit.Allowed(kind, 0, math.MaxInt64, nil), nil
		}
		return nil, err
	}

	l.metrics.decisionsTotal.WithLabelValues(kind.String(), strconv.FormatBool(result.Admitted())).Inc()
	return result, nil
}

// Reset clears any counter state held for identifier under kind. A storage
// failure is logged and swallowed — a failed reset never surfaces to the
// caller — but a *ratelimit.ValidationError still propagates.
func (l *Limiter) Reset(ctx context.Context, kind ratelimit.Kind, identifier string) error {
	s, err := l.getOrCreate(kind)
	if err != nil {
		return err
	}

	if err := s.Reset(ctx, identifier); err != nil {
		var storageErr *redisscript.StorageError
		if errors.As(err, &storageErr) {
			l.logger.Error("rate limiter reset storage failure, ignoring",
				zap.String("algorithm", kind.String()),
				zap.String("identifier", identifier),
				zap.Error(err),
			)
			return nil
		}
		return err
	}
	return nil
}
