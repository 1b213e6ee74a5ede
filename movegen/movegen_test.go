package movegen_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/matryer/is"

	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/move"
	"github.com/nikohass/azulcore/movegen"
	"github.com/nikohass/azulcore/tile"
)

func newFilledState(t *testing.T, numPlayers int, seed int64) *game.GameState {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	s, err := game.New(numPlayers, rng)
	if err != nil {
		t.Fatal(err)
	}
	s.FillFactories(rng)
	return s
}

// Scenario/law: move-generator soundness (property 6) — every generated
// move's distribution sums to the number of tiles of that color at its
// source factory.
func TestGeneratedMovesAreSound(t *testing.T) {
	is := is.New(t)
	s := newFilledState(t, 2, 42)

	var list movegen.MoveList
	result, err := movegen.PossibleMoves(s, &list, rand.New(rand.NewSource(42)))
	is.NoErr(err)
	is.Equal(result, movegen.Continue)
	is.True(len(list.Moves) > 0)

	for _, m := range list.Moves {
		source := int(m.FactoryIndex)
		if m.TakenFromCenter() {
			source = s.CenterIndex()
		}
		is.Equal(m.TotalTiles(), int(s.Factories[source][m.Color]))
	}
}

func moveKey(m move.Move) string {
	return m.String()
}

// Property 7: an independent brute-force enumerator produces the same
// multiset of moves as PossibleMoves.
func TestBruteForceMatchesGenerator(t *testing.T) {
	is := is.New(t)

	for seed := int64(0); seed < 10; seed++ {
		s := newFilledState(t, 3, seed)

		var list movegen.MoveList
		_, err := movegen.PossibleMoves(s, &list, rand.New(rand.NewSource(seed)))
		is.NoErr(err)

		brute := movegen.BruteForce(s)

		got := make([]string, len(list.Moves))
		for i, m := range list.Moves {
			got[i] = moveKey(m)
		}
		want := make([]string, len(brute))
		for i, m := range brute {
			want[i] = moveKey(m)
		}
		sort.Strings(got)
		sort.Strings(want)
		is.Equal(got, want)
	}
}

func TestPossibleMovesEvaluatesRoundWhenFactoriesEmpty(t *testing.T) {
	is := is.New(t)
	s := newFilledState(t, 2, 1)
	for i := range s.Factories {
		for c := 0; c < tile.NumColors; c++ {
			s.Factories[i][c] = 0
		}
	}

	var list movegen.MoveList
	result, err := movegen.PossibleMoves(s, &list, rand.New(rand.NewSource(1)))
	is.NoErr(err)
	is.True(result == movegen.RoundOver || result == movegen.GameOver)
}
