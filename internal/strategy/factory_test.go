package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lowc1012/ratelimitcore/ratelimit"
)

func TestCreate_BuildsEveryKnownAlgorithm(t *testing.T) {
	exec, _ := newMiniredis(t)

	for _, kind := range ratelimit.Kinds() {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			s, err := Create(kind, ratelimit.DefaultsFor(kind), exec)
			require.NoError(t, err)
			require.Equal(t, kind, s.Kind())

			r, err := s.Run(context.Background(), "u")
			require.NoError(t, err)
			require.True(t, r.Admitted())
		})
	}
}

func TestCreate_RejectsInvalidConfig(t *testing.T) {
	exec, _ := newMiniredis(t)

	cfg := ratelimit.StrategyConfig{} // zero value: nothing is positive
	_, err := Create(ratelimit.TokenBucket, cfg, exec)
	require.Error(t, err)

	var valErr *ratelimit.ValidationError
	require.ErrorAs(t, err, &valErr)
}
