package strategy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestLeakyBucket_LeaksAtConfiguredRate exercises scenario #3 of the design:
// capacity 10, leakRate 0.5/s. 10 rapid admits saturate the queue; after
// waiting 6s, one leak period is 1/0.5 = 2s, so 3 items leak; queueSize
// after the next admit is 8.
func TestLeakyBucket_LeaksAtConfiguredRate(t *testing.T) {
	exec, server := newMiniredis(t)
	s := NewLeakyBucket(exec, 10, 0.5)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		r, err := s.Run(ctx, "u")
		require.NoError(t, err)
		require.True(t, r.Admitted())
	}

	full, err := s.Run(ctx, "u")
	require.NoError(t, err)
	require.False(t, full.Admitted())

	server.SetTime(testClockStart.Add(6 * time.Second))
	server.FastForward(6 * time.Second)

	admitted, err := s.Run(ctx, "u")
	require.NoError(t, err)
	require.True(t, admitted.Admitted())
	require.NotNil(t, admitted.Metadata())
	require.NotNil(t, admitted.Metadata().QueueSize)
	require.Equal(t, int64(8), *admitted.Metadata().QueueSize)
}

func TestLeakyBucket_NeverLeaksMoreThanElapsedWholeUnits(t *testing.T) {
	exec, server := newMiniredis(t)
	s := NewLeakyBucket(exec, 10, 1.0)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Run(ctx, "u")
		require.NoError(t, err)
	}

	// Less than one full leak period (1s at rate 1/s): no leak should occur yet.
	server.SetTime(testClockStart.Add(400 * time.Millisecond))
	server.FastForward(400 * time.Millisecond)
	r, err := s.Run(ctx, "u")
	require.NoError(t, err)
	require.NotNil(t, r.Metadata().QueueSize)
	require.Equal(t, int64(6), *r.Metadata().QueueSize)
}

func TestLeakyBucket_Reset(t *testing.T) {
	exec, _ := newMiniredis(t)
	s := NewLeakyBucket(exec, 1, 1.0)
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
