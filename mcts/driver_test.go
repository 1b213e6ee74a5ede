package mcts_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/mcts"
)

func TestDriverAccumulatesVisitsWhileWorking(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s, err := game.New(2, rng)
	require.NoError(t, err)
	s.FillFactories(rng)

	tree := mcts.NewTree(s)
	driver := mcts.NewDriver(7)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx, tree) }()

	driver.StartWorking()
	time.Sleep(50 * time.Millisecond)
	driver.StopWorking()

	stats := driver.Stats()
	require.Greater(t, stats.Visits, 0.0)

	driver.Terminate()
	require.NoError(t, <-done)
}

func TestGetMoveReturnsLegalMove(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	s, err := game.New(2, rng)
	require.NoError(t, err)
	s.FillFactories(rng)

	tree := mcts.NewTree(s)
	driver := mcts.NewDriver(9)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx, tree) }()

	tc := mcts.TimeControl{Kind: mcts.ConstantTimePerMove, MillisecondsPerMove: 30}
	m, err := mcts.GetMove(driver, s, nil, tc, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	require.NoError(t, s.Clone().DoMove(m))

	driver.Terminate()
	require.NoError(t, <-done)
}
