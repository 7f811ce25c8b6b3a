package ratelimit

import "time"

// Metadata carries algorithm-specific detail about a decision. Every field
// is a pointer so that a value the algorithm did not compute round-trips as
// absent rather than as a misleading zero.
type Metadata struct {
	Tokens              *float64
	QueueSize           *int64
	WindowStart         *int64
	PreviousWindowCount *int64
	CurrentWindowCount  *int64
}

// MetadataForTokenBucket builds Metadata carrying the bucket's remaining
// fractional token balance.
func MetadataForTokenBucket(tokens float64) *Metadata {
	return &Metadata{Tokens: &tokens}
}

// MetadataForLeakyBucket builds Metadata carrying the queue depth after the decision.
func MetadataForLeakyBucket(queueSize int64) *Metadata {
	return &Metadata{QueueSize: &queueSize}
}

// MetadataForSlidingWindowCounter builds Metadata carrying the two raw
// counters the weighted estimate was derived from.
func MetadataForSlidingWindowCounter(previousWindowCount, currentWindowCount, windowStart int64) *Metadata {
	return &Metadata{
		PreviousWindowCount: &previousWindowCount,
		CurrentWindowCount:  &currentWindowCount,
		WindowStart:         &windowStart,
	}
}

// Result is the immutable outcome of one admission decision. Construct it
// only through Allowed/Denied; every field is unexported so that no caller
// can mutate a Result after the fact.
type Result struct {
	admitted  bool
	algorithm Kind
	current   int64
	limit     int64
	resetAt   *time.Time
	metadata  *Metadata
}

// Allowed builds an admitted Result.
func Allowed(algorithm Kind, current, limit int64, resetAt *time.Time) *Result {
	return &Result{admitted: true, algorithm: algorithm, current: current, limit: limit, resetAt: resetAt}
}

// Denied builds a denied Result.
func Denied(algorithm Kind, current, limit int64, resetAt *time.Time) *Result {
	return &Result{admitted: false, algorithm: algorithm, current: current, limit: limit, resetAt: resetAt}
}

// WithMetadata returns a copy of r carrying the given metadata.
func (r *Result) WithMetadata(m *Metadata) *Result {
	clone := *r
	clone.metadata = m
	return &clone
}

func (r *Result) Admitted() bool      { return r.admitted }
func (r *Result) Algorithm() Kind     { return r.algorithm }
func (r *Result) Current() int64      { return r.current }
func (r *Result) Limit() int64        { return r.limit }
func (r *Result) ResetAt() *time.Time { return r.resetAt }
func (r *Result) Metadata() *Metadata { return r.metadata }

// Remaining reports max(0, Limit-Current).
func (r *Result) Remaining() int64 {
	remaining := r.limit - r.current
	if remaining < 0 {
		return 0
	}
	return remaining
}
