package player_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nikohass/azulcore/mcts"
	"github.com/nikohass/azulcore/player"
)

func shortTimeControl() mcts.TimeControl {
	return mcts.TimeControl{Kind: mcts.ConstantTimePerMove, MillisecondsPerMove: 30}
}

func TestMCTSPlayerReturnsLegalMoveAndReusesTreeAcrossCalls(t *testing.T) {
	state := newTestState(t)
	p := player.NewMCTSPlayer(11, shortTimeControl())

	m1, err := p.GetMove(context.Background(), state)
	require.NoError(t, err)
	require.NoError(t, state.DoMove(m1))
	p.NotifyMove(state, m1)

	m2, err := p.GetMove(context.Background(), state)
	require.NoError(t, err)
	require.NoError(t, state.Clone().DoMove(m2))
}

func TestMCTSPlayerResetStartsFreshTreeOnNextMove(t *testing.T) {
	state := newTestState(t)
	p := player.NewMCTSPlayer(11, shortTimeControl())

	_, err := p.GetMove(context.Background(), state)
	require.NoError(t, err)

	p.Reset()

	m, err := p.GetMove(context.Background(), state)
	require.NoError(t, err)
	require.NoError(t, state.Clone().DoMove(m))
}

func TestStrengthLimitedPlayerLevel5AlwaysPlaysInnerBest(t *testing.T) {
	state := newTestState(t)
	inner := player.NewMCTSPlayer(5, shortTimeControl())
	p := player.NewStrengthLimitedPlayer(inner, player.Strength5, 9)

	m, err := p.GetMove(context.Background(), state)
	require.NoError(t, err)
	require.NoError(t, state.Clone().DoMove(m))
	require.True(t, m.Equal(inner.Stats().BestMove))
}

func TestStrengthLimitedPlayerLevel1ReturnsLegalMove(t *testing.T) {
	state := newTestState(t)
	inner := player.NewMCTSPlayer(5, shortTimeControl())
	p := player.NewStrengthLimitedPlayer(inner, player.Strength1, 9)

	for i := 0; i < 5; i++ {
		m, err := p.GetMove(context.Background(), state)
		require.NoError(t, err)
		require.NoError(t, state.Clone().DoMove(m))
	}
}

func TestMCTSPlayerNotifyGameOverStopsBackgroundSearch(t *testing.T) {
	state := newTestState(t)
	p := player.NewMCTSPlayer(11, shortTimeControl())

	_, err := p.GetMove(context.Background(), state)
	require.NoError(t, err)

	p.NotifyGameOver(state)
	// Give the cancelled driver goroutine a moment to unwind before the
	// test process exits, matching the grace period get_move itself uses.
	time.Sleep(5 * time.Millisecond)
}
