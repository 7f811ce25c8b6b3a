// Package ratelimitcore implements a distributed rate limiter backed by
// Redis, offering five interchangeable admission algorithms — Token Bucket,
// Leaky Bucket, Fixed Window, Sliding Window Log, and Sliding Window
// Counter — all executed as atomic server-side Lua scripts so that multiple
// application instances share a single source of truth without taking a
// cross-instance lock.
//
// Construct a *Limiter with New and call Check for every request that needs
// an admission decision:
//
//	limiter := ratelimitcore.New(redisClient)
//	result, err := limiter.Check(ctx, ratelimit.TokenBucket, "user:42")
//	if err != nil {
//		// *ratelimit.ValidationError: caller bug, fix the config.
//	}
//	if !result.Admitted() {
//		// deny
//	}
package ratelimitcore
