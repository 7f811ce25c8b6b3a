package strategy

import (
	"fmt"

	"github.com/lowc1012/ratelimitcore/internal/redisscript"
	"github.com/lowc1012/ratelimitcore/ratelimit"
)

// Create validates cfg for kind and returns the matching Strategy. Adding a
// sixth algorithm means adding a case here and, in package ratelimit, a
// constant, its names, its Kinds() entry and a case in
// StrategyConfig.Validate.
func Create(kind ratelimit.Kind, cfg ratelimit.StrategyConfig, exec redisscript.Executor) (Strategy, error) {
	if err := cfg.Validate(kind); err != nil {
		return nil, err
	}

	switch kind {
	case ratelimit.TokenBucket:
		return NewTokenBucket(exec, cfg.Capacity, cfg.RefillRate), nil
	case ratelimit.LeakyBucket:
		return NewLeakyBucket(exec, cfg.Capacity, cfg.LeakRate), nil
	case ratelimit.FixedWindow:
		return NewFixedWindow(exec, cfg.Limit, cfg.WindowSize), nil
	case ratelimit.SlidingWindowLog:
		return NewSlidingWindowLog(exec, cfg.Limit, cfg.WindowSize), nil
	case ratelimit.SlidingWindowCounter:
		return NewSlidingWindowCounter(exec, cfg.Limit, cfg.WindowSize), nil
	default:
		// Validate already rejects any kind not handled above, so this is
		// unreachable in practice; kept only to satisfy exhaustiveness.
		return nil, fmt.Errorf("strategy: unhandled algorithm kind: %v", kind)
	}
}
