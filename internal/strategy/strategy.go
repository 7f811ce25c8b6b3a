// Package strategy implements the five rate-limiting algorithms on top of
// redisscript.Executor. Each Strategy owns one Redis key layout, one atomic
// Lua script, and the Go-side decoding of that script's reply into a
// *ratelimit.Result.
package strategy

import (
	"context"

	"github.com/lowc1012/ratelimitcore/ratelimit"
)

// keyPrefix is the stable, documented Redis key namespace for one
// (algorithm, identifier) pair: rate_limit:<algorithm>:<identifier>.
func keyPrefix(kind ratelimit.Kind, identifier string) string {
	return "rate_limit:" + kind.SnakeCase() + ":" + identifier
}

// Strategy is the capability set every algorithm implements: run one
// admission decision, reset an identifier's state, and report which
// algorithm it is.
type Strategy interface {
	Run(ctx context.Context, identifier string) (*ratelimit.Result, error)
	Reset(ctx context.Context, identifier string) error
	Kind() ratelimit.Kind
}
