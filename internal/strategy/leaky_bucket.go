package strategy

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/lowc1012/ratelimitcore/internal/redisscript"
	"github.com/lowc1012/ratelimitcore/ratelimit"
)

const leakyBucketTTLSeconds = 3600

var leakyBucketScript = redisscript.Compile(leakyBucketLua)

type leakyBucketStrategy struct {
	exec     redisscript.Executor
	capacity int
	leakRate float64
}

// NewLeakyBucket builds the Leaky Bucket Strategy.
func NewLeakyBucket(exec redisscript.Executor, capacity int, leakRate float64) Strategy {
	return &leakyBucketStrategy{exec: exec, capacity: capacity, leakRate: leakRate}
}

func (s *leakyBucketStrategy) Kind() ratelimit.Kind { return ratelimit.LeakyBucket }

func (s *leakyBucketStrategy) Run(ctx context.Context, identifier string) (*ratelimit.Result, error) {
	key := keyPrefix(ratelimit.LeakyBucket, identifier)

	ints, err := s.exec.RunInts(ctx, leakyBucketScript, []string{key},
		strconv.Itoa(s.capacity),
		strconv.FormatFloat(s.leakRate, 'f', -1, 64),
		strconv.Itoa(leakyBucketTTLSeconds),
	)
	if err != nil {
		return nil, err
	}

	admitted := ints[0] == 1
	queueSize := ints[1]
	capacity := ints[2]

	resetAt := s.resetAt(queueSize)
	metadata := ratelimit.MetadataForLeakyBucket(queueSize)

	var result *ratelimit.Result
	if admitted {
		result = ratelimit.Allowed(ratelimit.LeakyBucket, queueSize, capacity, resetAt)
	} else {
		result = ratelimit.Denied(ratelimit.LeakyBucket, queueSize, capacity, resetAt)
	}
	return result.WithMetadata(metadata), nil
}

func (s *leakyBucketStrategy) resetAt(queueSize int64) *time.Time {
	if queueSize == 0 {
		now := time.Now()
		return &now
	}
	secondsUntilEmpty := math.Ceil(float64(queueSize) / s.leakRate)
	at := time.Now().Add(time.Duration(secondsUntilEmpty) * time.Second)
	return &at
}

func (s *leakyBucketStrategy) Reset(ctx context.Context, identifier string) error {
	key := keyPrefix(ratelimit.LeakyBucket, identifier)
	return s.exec.DeleteKeys(ctx, key+":queue", key+":timestamp")
}
