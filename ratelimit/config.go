package ratelimit

import "fmt"

// StrategyConfig carries every parameter any of the five algorithms needs.
// It is validated at the point of assignment (fail-fast): each setter
// rejects a non-positive value with a *ValidationError instead of storing
// it. The zero value is not valid on its own — use Defaults() to obtain a
// config pre-filled with the per-field defaults, or DefaultsFor(kind), which
// returns the same values for every kind.
type StrategyConfig struct {
	Capacity   int
	RefillRate float64
	LeakRate   float64
	Limit      int
	WindowSize int
}

// Defaults returns the baseline configuration: Capacity 10, RefillRate 1.0,
// LeakRate 1.0, Limit 10, WindowSize 60 seconds.
func Defaults() StrategyConfig {
	return StrategyConfig{
		Capacity:   10,
		RefillRate: 1.0,
		LeakRate:   1.0,
		Limit:      10,
		WindowSize: 60,
	}
}

// DefaultsFor returns Defaults(), which is valid as-is for any Kind; callers
// that want algorithm-specific tuning should derive a tuned copy with the
// With* setters below.
func DefaultsFor(_ Kind) StrategyConfig {
	return Defaults()
}

// WithCapacity returns a copy of cfg with Capacity set, or a *ValidationError
// if capacity is not positive.
func (cfg StrategyConfig) WithCapacity(capacity int) (StrategyConfig, error) {
	if capacity <= 0 {
		return cfg, newValidationError("capacity", fmt.Sprintf("capacity must be positive: %d", capacity))
	}
	cfg.Capacity = capacity
	return cfg, nil
}

// WithRefillRate returns a copy of cfg with RefillRate set, or a *ValidationError
// if refillRate is not positive.
func (cfg StrategyConfig) WithRefillRate(refillRate float64) (StrategyConfig, error) {
	if refillRate <= 0 {
		return cfg, newValidationError("refillRate", fmt.Sprintf("refill rate must be positive: %v", refillRate))
	}
	cfg.RefillRate = refillRate
	return cfg, nil
}

// WithLeakRate returns a copy of cfg with LeakRate set, or a *ValidationError
// if leakRate is not positive.
func (cfg StrategyConfig) WithLeakRate(leakRate float64) (StrategyConfig, error) {
	if leakRate <= 0 {
		return cfg, newValidationError("leakRate", fmt.Sprintf("leak rate must be positive: %v", leakRate))
	}
	cfg.LeakRate = leakRate
	return cfg, nil
}

// WithLimit returns a copy of cfg with Limit set, or a *ValidationError if
// limit is not positive.
func (cfg StrategyConfig) WithLimit(limit int) (StrategyConfig, error) {
	if limit <= 0 {
		return cfg, newValidationError("limit", fmt.Sprintf("limit must be positive: %d", limit))
	}
	cfg.Limit = limit
	return cfg, nil
}

// WithWindowSize returns a copy of cfg with WindowSize set, or a
// *ValidationError if windowSize is not positive.
func (cfg StrategyConfig) WithWindowSize(windowSize int) (StrategyConfig, error) {
	if windowSize <= 0 {
		return cfg, newValidationError("windowSize", fmt.Sprintf("window size must be positive: %d", windowSize))
	}
	cfg.WindowSize = windowSize
	return cfg, nil
}

// Validate checks that every field this Kind actually reads carries a
// positive value. It is the defense-in-depth check the Factory runs right
// before constructing a Strategy, independent of whichever With* setters
// the caller used (or skipped) to build cfg.
func (cfg StrategyConfig) Validate(kind Kind) error {
	switch kind {
	case TokenBucket:
		if cfg.Capacity <= 0 {
			return newValidationError("capacity", fmt.Sprintf("capacity must be positive: %d", cfg.Capacity))
		}
		if cfg.RefillRate <= 0 {
			return newValidationError("refillRate", fmt.Sprintf("refill rate must be positive: %v", cfg.RefillRate))
		}
	case LeakyBucket:
		if cfg.Capacity <= 0 {
			return newValidationError("capacity", fmt.Sprintf("capacity must be positive: %d", cfg.Capacity))
		}
		if cfg.LeakRate <= 0 {
			return newValidationError("leakRate", fmt.Sprintf("leak rate must be positive: %v", cfg.LeakRate))
		}
	case FixedWindow, SlidingWindowLog, SlidingWindowCounter:
		if cfg.Limit <= 0 {
			return newValidationError("limit", fmt.Sprintf("limit must be positive: %d", cfg.Limit))
		}
		if cfg.WindowSize <= 0 {
			return newValidationError("windowSize", fmt.Sprintf("window size must be positive: %d", cfg.WindowSize))
		}
	default:
		return newValidationError("kind", fmt.Sprintf("unknown algorithm kind: %d", kind))
	}
	return nil
}
