package playout_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/playout"
)

func TestRolloutReturnsNormalizedValueVector(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	s, err := game.New(3, rng)
	require.NoError(t, err)

	values, err := playout.Rollout(s, rng)
	require.NoError(t, err)
	require.Len(t, values, 3)

	sum := 0.0
	for _, v := range values {
		require.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestRolloutIsDeterministicForFixedSeed(t *testing.T) {
	seed := int64(123)

	run := func() []float64 {
		rng := rand.New(rand.NewSource(seed))
		s, err := game.New(2, rng)
		require.NoError(t, err)
		values, err := playout.Rollout(s, rng)
		require.NoError(t, err)
		return values
	}

	require.Equal(t, run(), run())
}
