package strategy

import (
	"context"
	"strconv"
	"time"

	"github.com/lowc1012/ratelimitcore/internal/redisscript"
	"github.com/lowc1012/ratelimitcore/ratelimit"
)

var slidingWindowLogScript = redisscript.Compile(slidingWindowLogLua)

type slidingWindowLogStrategy struct {
	exec       redisscript.Executor
	limit      int
	windowSize int
}

// NewSlidingWindowLog builds the Sliding Window Log Strategy.
func NewSlidingWindowLog(exec redisscript.Executor, limit, windowSize int) Strategy {
	return &slidingWindowLogStrategy{exec: exec, limit: limit, windowSize: windowSize}
}

func (s *slidingWindowLogStrategy) Kind() ratelimit.Kind { return ratelimit.SlidingWindowLog }

func (s *slidingWindowLogStrategy) Run(ctx context.Context, identifier string) (*ratelimit.Result, error) {
	key := keyPrefix(ratelimit.SlidingWindowLog, identifier)

	ints, err := s.exec.RunInts(ctx, slidingWindowLogScript, []string{key},
		strconv.Itoa(s.limit),
		strconv.Itoa(s.windowSize),
	)
	if err != nil {
		return nil, err
	}

	admitted := ints[0] == 1
	current := ints[1]
	limit := ints[2]

	// The window slides continuously, so there is no fixed instant at which
	// capacity fully returns; windowSize from now is the best-effort hint.
	resetAt := time.Now().Add(time.Duration(s.windowSize) * time.Second)

	if admitted {
		return ratelimit.Allowed(ratelimit.SlidingWindowLog, current, limit, &resetAt), nil
	}
	return ratelimit.Denied(ratelimit.SlidingWindowLog, current, limit, &resetAt), nil
}

func (s *slidingWindowLogStrategy) Reset(ctx context.Context, identifier string) error {
	key := keyPrefix(ratelimit.SlidingWindowLog, identifier)
	return s.exec.DeleteKeys(ctx, key+":log", key+":seq")
}
