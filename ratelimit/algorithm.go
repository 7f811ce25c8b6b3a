// Package ratelimit defines the data model shared by every rate-limiting
// algorithm: the algorithm enumeration, the immutable result/metadata value
// objects, the strategy configuration builder, and the error kinds that flow
// out of the core.
package ratelimit

// Kind identifies one of the five interchangeable rate-limiting algorithms.
type Kind int

const (
	TokenBucket Kind = iota
	LeakyBucket
	FixedWindow
	SlidingWindowLog
	SlidingWindowCounter
)

var kindNames = map[Kind]string{
	TokenBucket:          "TOKEN_BUCKET",
	LeakyBucket:          "LEAKY_BUCKET",
	FixedWindow:          "FIXED_WINDOW",
	SlidingWindowLog:     "SLIDING_WINDOW_LOG",
	SlidingWindowCounter: "SLIDING_WINDOW_COUNTER",
}

var kindSnake = map[Kind]string{
	TokenBucket:          "token_bucket",
	LeakyBucket:          "leaky_bucket",
	FixedWindow:          "fixed_window",
	SlidingWindowLog:     "sliding_window_log",
	SlidingWindowCounter: "sliding_window_counter",
}

// String returns the tag used in Result.Algorithm and the X-RateLimit-Algorithm header.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// SnakeCase returns the key-namespace segment for this algorithm, e.g. "token_bucket".
func (k Kind) SnakeCase() string {
	if name, ok := kindSnake[k]; ok {
		return name
	}
	return "unknown"
}

// Kinds lists every algorithm the core supports, in factory-registration order.
func Kinds() []Kind {
	return []Kind{TokenBucket, LeakyBucket, FixedWindow, SlidingWindowLog, SlidingWindowCounter}
}
