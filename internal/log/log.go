// Package log provides the process-wide structured logger used across the
// module, built on zap.
package log

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once   sync.Once
	logger *zap.Logger
)

// Logger returns the process-wide *zap.Logger, building it on first use.
// Construction failures fall back to zap.NewNop() so a logging outage never
// takes down the rate limiter itself.
func Logger() *zap.Logger {
	once.Do(func() {
		l, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l
	})
	return logger
}

// SetLogger replaces the process-wide logger. Intended for cmd/ entrypoints
// that want a differently configured zap.Logger (e.g. zap.NewDevelopment())
// and for tests that want to assert on emitted log lines.
func SetLogger(l *zap.Logger) {
	once.Do(func() {})
	logger = l
}
