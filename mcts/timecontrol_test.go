package mcts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nikohass/azulcore/mcts"
)

func TestDecideStopsOnceAllocationExhausted(t *testing.T) {
	tc := mcts.TimeControl{Kind: mcts.ConstantTimePerMove, MillisecondsPerMove: 5}
	start := time.Now().Add(-10 * time.Millisecond)

	decision := mcts.Decide(tc, start, mcts.RootStatistics{})
	require.True(t, decision.Stop)
}

func TestDecideContinuesWithinAllocation(t *testing.T) {
	tc := mcts.TimeControl{Kind: mcts.ConstantTimePerMove, MillisecondsPerMove: 10_000}
	start := time.Now()

	decision := mcts.Decide(tc, start, mcts.RootStatistics{})
	require.False(t, decision.Stop)
	require.Greater(t, decision.ContinueFor, time.Duration(0))
}

func TestDecideStopsEarlyOnHighConfidenceAfterFloor(t *testing.T) {
	tc := mcts.TimeControl{Kind: mcts.ConstantTimePerMove, MillisecondsPerMove: 10_000}
	start := time.Now().Add(-2 * time.Second)

	stats := mcts.RootStatistics{
		Visits:          2_000_000,
		TopValue:        0.97,
		TopVisits:       500_000,
		SecondVisits:    100,
		BranchingFactor: 6,
	}
	decision := mcts.Decide(tc, start, stats)
	require.True(t, decision.Stop)
}

func TestFischerWithCapRespectsMaxTime(t *testing.T) {
	tc := mcts.TimeControl{
		Kind:                  mcts.FischerWithCap,
		RemainingMilliseconds: 60_000,
		IncrementMilliseconds: 2_000,
		MaxTimeMilliseconds:   3_000,
		NumPlayers:            2,
	}
	// An even root value keeps the early-stop score at zero, so only the
	// capped allocation decides.
	undecided := mcts.RootStatistics{TopValue: 0.5}

	start := time.Now().Add(-2900 * time.Millisecond)
	decision := mcts.Decide(tc, start, undecided)
	require.False(t, decision.Stop)

	start = time.Now().Add(-3100 * time.Millisecond)
	decision = mcts.Decide(tc, start, undecided)
	require.True(t, decision.Stop)
}
