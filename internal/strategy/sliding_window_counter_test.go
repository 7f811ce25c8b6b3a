package strategy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestSlidingWindowCounter_WeightsPreviousWindow exercises scenario #5:
// with window 100s, a previous window count of 8 and a current window count
// of 2, sampled 50% into the current window, the weighted estimate is
// 8*(1-0.5)+2 = 6, which is below a limit of 10 and is admitted; admitting
// raises the current window count to 3, yielding weighted = 8*0.5+3 = 7.
func TestSlidingWindowCounter_WeightsPreviousWindow(t *testing.T) {
	exec, server := newMiniredis(t)
	s := NewSlidingWindowCounter(exec, 10, 100)
	ctx := context.Background()

	// Window 9 spans [900, 1000); build a previous-window count of 8.
	server.SetTime(time.Unix(900, 0))
	for i := 0; i < 8; i++ {
		_, err := s.Run(ctx, "u")
		require.NoError(t, err)
	}

	// Window 10 spans [1000, 1100); build a current-window count of 2.
	server.SetTime(time.Unix(1000, 0))
	for i := 0; i < 2; i++ {
		_, err := s.Run(ctx, "u")
		require.NoError(t, err)
	}

	// 50% into window 10.
	server.SetTime(time.Unix(1050, 0))

	r, err := s.Run(ctx, "u")
	require.NoError(t, err)
	require.True(t, r.Admitted())
	require.Equal(t, int64(7), r.Current())
	require.NotNil(t, r.Metadata())
	require.Equal(t, int64(8), *r.Metadata().PreviousWindowCount)
	require.Equal(t, int64(3), *r.Metadata().CurrentWindowCount)
}

func TestSlidingWindowCounter_DeniesAboveLimit(t *testing.T) {
	exec, _ := newMiniredis(t)
	s := NewSlidingWindowCounter(exec, 2, 60)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		r, err := s.Run(ctx, "u")
		require.NoError(t, err)
		require.True(t, r.Admitted())
	}

	denied, err := s.Run(ctx, "u")
	require.NoError(t, err)
	require.False(t, denied.Admitted())
}

func TestSlidingWindowCounter_Reset(t *testing.T) {
	exec, _ := newMiniredis(t)
	s := NewSlidingWindowCounter(exec, 1, 60)
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
