package strategy

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/lowc1012/ratelimitcore/internal/redisscript"
)

// testClockStart is the Redis server time every test server starts at.
// Tests move the clock that TIME reports with SetTime; FastForward only ages
// key TTLs.
var testClockStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newMiniredis(t *testing.T) (*redisscript.Client, *miniredis.Miniredis) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)
	server.SetTime(testClockStart)

	rdb := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return redisscript.New(rdb), server
}

// TestTokenBucket_AdmitsExactlyCapacity exercises scenario #1 of the design:
// capacity 10, refill 1/s, 11 back-to-back checks for one identifier.
func TestTokenBucket_AdmitsExactlyCapacity(t *testing.T) {
	exec, _ := newMiniredis(t)
	s := NewTokenBucket(exec, 10, 1.0)
	ctx := context.Background()

	admitted := 0
	var lastAdmitted bool
	var lastRemaining int64
	for i := 0; i < 11; i++ {
		r, err := s.Run(ctx, "u")
		require.NoError(t, err)
		if r.Admitted() {
			admitted++
			lastRemaining = r.Remaining()
		}
		lastAdmitted = r.Admitted()
	}

	require.Equal(t, 10, admitted)
	require.False(t, lastAdmitted)
	require.Equal(t, int64(0), lastRemaining)
}

func TestTokenBucket_RefillsOverTime(t *testing.T) {
	exec, server := newMiniredis(t)
	s := NewTokenBucket(exec, 3, 1.0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		r, err := s.Run(ctx, "u")
		require.NoError(t, err)
		require.True(t, r.Admitted())
	}

	denied, err := s.Run(ctx, "u")
	require.NoError(t, err)
	require.False(t, denied.Admitted())

	server.SetTime(testClockStart.Add(2 * time.Second))
	server.FastForward(2 * time.Second)

	admitted, err := s.Run(ctx, "u")
	require.NoError(t, err)
	require.True(t, admitted.Admitted())
}

func TestTokenBucket_IndependentIdentifiers(t *testing.T) {
	exec, _ := newMiniredis(t)
	s := NewTokenBucket(exec, 1, 1.0)
	ctx := context.Background()

	r1, err := s.Run(ctx, "a")
	require.NoError(t, err)
	require.True(t, r1.Admitted())

	// "b" must see a pristine bucket, unaffected by "a" draining its own.
	r2, err := s.Run(ctx, "b")
	require.NoError(t, err)
	require.True(t, r2.Admitted())
}

func TestTokenBucket_Reset(t *testing.T) {
	exec, _ := newMiniredis(t)
	s := NewTokenBucket(exec, 1, 1.0)
	ctx := context.Background()

	r1, err := s.Run(ctx, "u")
	require.NoError(t, err)
	require.True(t, r1.Admitted())

	denied, err := s.Run(ctx, "u")
	require.NoError(t, err)
	require.False(t, denied.Admitted())

	require.NoError(t, s.Reset(ctx, "u"))

	admitted, err := s.Run(ctx, "u")
	require.NoError(t, err)
	require.True(t, admitted.Admitted())
}

func TestTokenBucket_PrecisionRoundTrip(t *testing.T) {
	exec, _ := newMiniredis(t)
	s := NewTokenBucket(exec, 10, 1000.0)
	ctx := context.Background()

	r, err := s.Run(ctx, "u")
	require.NoError(t, err)
	require.True(t, r.Admitted())
	require.NotNil(t, r.Metadata())
	require.NotNil(t, r.Metadata().Tokens)
	// capacity - 1 token consumed, no time elapsed yet.
	require.InDelta(t, 9.0, *r.Metadata().Tokens, 1e-9)
}
