package strategy

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/lowc1012/ratelimitcore/internal/redisscript"
	"github.com/lowc1012/ratelimitcore/ratelimit"
)

const tokenBucketTTLSeconds = 3600

var tokenBucketScript = redisscript.Compile(tokenBucketLua)

type tokenBucketStrategy struct {
	exec       redisscript.Executor
	capacity   int
	refillRate float64
}

// NewTokenBucket builds the Token Bucket Strategy. capacity and refillRate
// must already be positive; the Factory is responsible for validating cfg
// before calling this constructor.
func NewTokenBucket(exec redisscript.Executor, capacity int, refillRate float64) Strategy {
	return &tokenBucketStrategy{exec: exec, capacity: capacity, refillRate: refillRate}
}

func (s *tokenBucketStrategy) Kind() ratelimit.Kind { return ratelimit.TokenBucket }

func (s *tokenBucketStrategy) Run(ctx context.Context, identifier string) (*ratelimit.Result, error) {
	key := keyPrefix(ratelimit.TokenBucket, identifier)

	reply, err := s.exec.RunRaw(ctx, tokenBucketScript, []string{key},
		strconv.Itoa(s.capacity),
		strconv.FormatFloat(s.refillRate, 'f', -1, 64),
		"1",
		strconv.Itoa(tokenBucketTTLSeconds),
	)
	if err != nil {
		return nil, err
	}

	admitted := reply[0].(int64) == 1
	tokens, err := strconv.ParseFloat(reply[1].(string), 64)
	if err != nil {
		return nil, err
	}
	capacity := reply[2].(int64)

	current := int64(math.Floor(float64(capacity) - tokens))
	resetAt := s.resetAt(tokens)
	metadata := ratelimit.MetadataForTokenBucket(tokens)

	var result *ratelimit.Result
	if admitted {
		result = ratelimit.Allowed(ratelimit.TokenBucket, current, capacity, resetAt)
	} else {
		result = ratelimit.Denied(ratelimit.TokenBucket, current, capacity, resetAt)
	}
	return result.WithMetadata(metadata), nil
}

// resetAt estimates the wall-clock instant at which the bucket will be full
// again, given the refill rate and the tokens remaining right now.
func (s *tokenBucketStrategy) resetAt(tokens float64) *time.Time {
	if tokens >= float64(s.capacity) {
		now := time.Now()
		return &now
	}
	tokensNeeded := float64(s.capacity) - tokens
	secondsUntilFull := math.Ceil(tokensNeeded / s.refillRate)
	at := time.Now().Add(time.Duration(secondsUntilFull) * time.Second)
	return &at
}

func (s *tokenBucketStrategy) Reset(ctx context.Context, identifier string) error {
	key := keyPrefix(ratelimit.TokenBucket, identifier)
	return s.exec.DeleteKeys(ctx, key+":tokens", key+":timestamp")
}
