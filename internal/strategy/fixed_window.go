package strategy

import (
	"context"
	"strconv"
	"time"

	"github.com/lowc1012/ratelimitcore/internal/redisscript"
	"github.com/lowc1012/ratelimitcore/ratelimit"
)

var fixedWindowScript = redisscript.Compile(fixedWindowLua)

type fixedWindowStrategy struct {
	exec       redisscript.Executor
	limit      int
	windowSize int
}

// NewFixedWindow builds the Fixed Window Strategy.
func NewFixedWindow(exec redisscript.Executor, limit, windowSize int) Strategy {
	return &fixedWindowStrategy{exec: exec, limit: limit, windowSize: windowSize}
}

func (s *fixedWindowStrategy) Kind() ratelimit.Kind { return ratelimit.FixedWindow }

func (s *fixedWindowStrategy) Run(ctx context.Context, identifier string) (*ratelimit.Result, error) {
	key := keyPrefix(ratelimit.FixedWindow, identifier)

	ints, err := s.exec.RunInts(ctx, fixedWindowScript, []string{key},
		strconv.Itoa(s.limit),
		strconv.Itoa(s.windowSize),
	)
	if err != nil {
		return nil, err
	}

	admitted := ints[0] == 1
	current := ints[1]
	limit := ints[2]
	resetAtEpoch := ints[3]
	resetAt := epochSeconds(resetAtEpoch)

	if admitted {
		return ratelimit.Allowed(ratelimit.FixedWindow, current, limit, resetAt), nil
	}
	return ratelimit.Denied(ratelimit.FixedWindow, current, limit, resetAt), nil
}

func (s *fixedWindowStrategy) Reset(ctx context.Context, identifier string) error {
	key := keyPrefix(ratelimit.FixedWindow, identifier)
	keys, err := s.exec.FindKeys(ctx, key+":*")
	if err != nil {
		return err
	}
	return s.exec.DeleteKeys(ctx, keys...)
}

func epochSeconds(sec int64) *time.Time {
	t := time.Unix(sec, 0)
	return &t
}
