package strategy

import (
	"context"
	"strconv"

	"github.com/lowc1012/ratelimitcore/internal/redisscript"
	"github.com/lowc1012/ratelimitcore/ratelimit"
)

var slidingWindowCounterScript = redisscript.Compile(slidingWindowCounterLua)

type slidingWindowCounterStrategy struct {
	exec       redisscript.Executor
	limit      int
	windowSize int
}

// NewSlidingWindowCounter builds the Sliding Window Counter Strategy.
func NewSlidingWindowCounter(exec redisscript.Executor, limit, windowSize int) Strategy {
	return &slidingWindowCounterStrategy{exec: exec, limit: limit, windowSize: windowSize}
}

func (s *slidingWindowCounterStrategy) Kind() ratelimit.Kind { return ratelimit.SlidingWindowCounter }

func (s *slidingWindowCounterStrategy) Run(ctx context.Context, identifier string) (*ratelimit.Result, error) {
	key := keyPrefix(ratelimit.SlidingWindowCounter, identifier)

	ints, err := s.exec.RunInts(ctx, slidingWindowCounterScript, []string{key},
		strconv.Itoa(s.limit),
		strconv.Itoa(s.windowSize),
	)
	if err != nil {
		return nil, err
	}

	admitted := ints[0] == 1
	weighted := ints[1]
	limit := ints[2]
	nextWindowStart := ints[3]
	prevCount := ints[4]
	currCount := ints[5]

	resetAt := epochSeconds(nextWindowStart)
	metadata := ratelimit.MetadataForSlidingWindowCounter(prevCount, currCount, nextWindowStart-int64(s.windowSize))

	var result *ratelimit.Result
	if admitted {
		result = ratelimit.Allowed(ratelimit.SlidingWindowCounter, weighted, limit, resetAt)
	} else {
		result = ratelimit.Denied(ratelimit.SlidingWindowCounter, weighted, limit, resetAt)
	}
	return result.WithMetadata(metadata), nil
}

func (s *slidingWindowCounterStrategy) Reset(ctx context.Context, identifier string) error {
	key := keyPrefix(ratelimit.SlidingWindowCounter, identifier)
	keys, err := s.exec.FindKeys(ctx, key+":*")
	if err != nil {
		return err
	}
	return s.exec.DeleteKeys(ctx, keys...)
}
