package player_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/player"
)

func newTestState(t *testing.T) *game.GameState {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	state, err := game.New(2, rng)
	require.NoError(t, err)
	state.FillFactories(rng)
	return state
}

func TestRandomPlayerReturnsLegalMove(t *testing.T) {
	state := newTestState(t)
	p := player.NewRandomPlayer(7)

	m, err := p.GetMove(context.Background(), state)
	require.NoError(t, err)
	require.NoError(t, state.Clone().DoMove(m))
}

func TestRandomPlayerNameRoundTrips(t *testing.T) {
	p := player.NewRandomPlayer(1)
	require.Equal(t, "Random", p.GetName())
	p.SetName("Bot 1")
	require.Equal(t, "Bot 1", p.GetName())
}

func TestHeuristicPlayerReturnsLegalMove(t *testing.T) {
	state := newTestState(t)
	p := player.NewHeuristicPlayer(3)

	m, err := p.GetMove(context.Background(), state)
	require.NoError(t, err)
	require.NoError(t, state.Clone().DoMove(m))
}

func TestHeuristicPlayerIsDeterministicGivenSameSeedAndState(t *testing.T) {
	state := newTestState(t)

	a := player.NewHeuristicPlayer(42)
	b := player.NewHeuristicPlayer(42)

	m1, err := a.GetMove(context.Background(), state.Clone())
	require.NoError(t, err)
	m2, err := b.GetMove(context.Background(), state.Clone())
	require.NoError(t, err)

	require.Equal(t, m1, m2)
}
