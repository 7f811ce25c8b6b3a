// Package config loads the YAML configuration for a rate limiter deployment:
// the Redis connection, per-algorithm defaults, and observability settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lowc1012/ratelimitcore/ratelimit"
)

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Observability struct {
	LogLevel    string `yaml:"log_level"` // "debug","info","warn","error"
	MetricsAddr string `yaml:"metrics_addr"`
	MetricsPath string `yaml:"metrics_path"`
}

// Algorithm mirrors ratelimit.StrategyConfig's fields for YAML decoding.
// Zero fields fall back per-field in Root.StrategyConfig (to the default
// section, then to ratelimit.Defaults()); Load leaves them as decoded.
type Algorithm struct {
	Capacity   int     `yaml:"capacity"`
	RefillRate float64 `yaml:"refill_rate"`
	LeakRate   float64 `yaml:"leak_rate"`
	Limit      int     `yaml:"limit"`
	WindowSize int     `yaml:"window_size"`
}

type Root struct {
	Redis         Redis                `yaml:"redis"`
	Observability Observability        `yaml:"observability"`
	Default       Algorithm            `yaml:"default"`
	Algorithms    map[string]Algorithm `yaml:"algorithms"`
}

// Load reads and parses a YAML config file at path, filling in defaults for
// the Redis address and the observability settings left unset.
func Load(path string) (*Root, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Root
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Observability.LogLevel == "" {
		cfg.Observability.LogLevel = "info"
	}
	if cfg.Observability.MetricsAddr == "" {
		cfg.Observability.MetricsAddr = ":9090"
	}
	if cfg.Observability.MetricsPath == "" {
		cfg.Observability.MetricsPath = "/metrics"
	}

	return &cfg, nil
}

// StrategyConfig builds a ratelimit.StrategyConfig for kind, starting from
// ratelimit.Defaults() and overlaying any fields set in the per-algorithm
// section of cfg (falling back to cfg.Default, then to the package default
// for anything left unset at every level).
func (cfg *Root) StrategyConfig(kind ratelimit.Kind) ratelimit.StrategyConfig {
	merged := ratelimit.Defaults()
	overlay(&merged, cfg.Default)
	if a, ok := cfg.Algorithms[kind.SnakeCase()]; ok {
		overlay(&merged, a)
	}
	return merged
}

func overlay(dst *ratelimit.StrategyConfig, a Algorithm) {
	if a.Capacity != 0 {
		dst.Capacity = a.Capacity
	}
	if a.RefillRate != 0 {
		dst.RefillRate = a.RefillRate
	}
	if a.LeakRate != 0 {
		dst.LeakRate = a.LeakRate
	}
	if a.Limit != 0 {
		dst.Limit = a.Limit
	}
	if a.WindowSize != 0 {
		dst.WindowSize = a.WindowSize
	}
}
