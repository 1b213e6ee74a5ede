package mcts_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/mcts"
)

func newSeededTree(t *testing.T, numPlayers int, seed int64) *mcts.Tree {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	s, err := game.New(numPlayers, rng)
	require.NoError(t, err)
	s.FillFactories(rng)
	return mcts.NewTree(s)
}

func TestIterateGrowsRootVisitsAndStaysIntegrityClean(t *testing.T) {
	tree := newSeededTree(t, 2, 11)
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 200; i++ {
		_, err := tree.Iterate(rng)
		require.NoError(t, err)
	}

	require.Equal(t, float64(200), tree.Root.N)
	require.NotEmpty(t, tree.Root.Children)
	require.NoError(t, tree.RootState.CheckIntegrity())
}

// Scenario 6: after notify_move/get_move, the new root's N equals the old
// chosen child's N at the time of the switch.
func TestAdvanceRootReusesObservedChild(t *testing.T) {
	tree := newSeededTree(t, 2, 22)
	rng := rand.New(rand.NewSource(22))

	for i := 0; i < 300; i++ {
		_, err := tree.Iterate(rng)
		require.NoError(t, err)
	}
	require.False(t, tree.Root.HasChanceChildren, "seed should not hit a round boundary this quickly")

	chosen, ok := tree.BestMove()
	require.True(t, ok)

	var chosenChild *mcts.Node
	for _, c := range tree.Root.Children {
		if c.Edge.Move.Equal(chosen) {
			chosenChild = c
		}
	}
	require.NotNil(t, chosenChild)
	wantN := chosenChild.N

	next := tree.RootState.Clone()
	require.NoError(t, next.DoMove(chosen))
	edge := mcts.Edge{Kind: mcts.MoveEdge, Move: chosen}
	tree.AdvanceRoot(next, &edge)

	require.Equal(t, wantN, tree.Root.N)
}

func TestAdvanceRootDiscardsTreeOnUnobservedEdge(t *testing.T) {
	tree := newSeededTree(t, 2, 33)
	rng := rand.New(rand.NewSource(33))
	for i := 0; i < 50; i++ {
		_, err := tree.Iterate(rng)
		require.NoError(t, err)
	}

	fresh, err := game.New(2, rng)
	require.NoError(t, err)
	fresh.FillFactories(rng)

	tree.AdvanceRoot(fresh, nil)
	require.Equal(t, float64(0), tree.Root.N)
	require.Empty(t, tree.Root.Children)
}

func TestPrincipalVariationProducesLegalMoves(t *testing.T) {
	tree := newSeededTree(t, 3, 44)
	rng := rand.New(rand.NewSource(44))
	for i := 0; i < 400; i++ {
		_, err := tree.Iterate(rng)
		require.NoError(t, err)
	}

	pv := tree.PrincipalVariation()
	state := tree.RootState.Clone()
	for _, m := range pv {
		require.NoError(t, state.DoMove(m))
	}
}
