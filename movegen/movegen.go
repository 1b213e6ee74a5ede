// Package movegen enumerates legal moves for the player to move in a
// game.GameState, driving the factory refill at round boundaries.
package movegen

import (
	"math/rand"

	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/move"
	"github.com/nikohass/azulcore/tile"
	"github.com/nikohass/azulcore/wall"
)

// Result reports what PossibleMoves did before returning the move list.
type Result uint8

const (
	// Continue means the factories already held tiles; out holds the
	// current player's legal moves.
	Continue Result = iota
	// RoundOver means every factory was empty, the round was evaluated
	// (the game did not end), and the factories were refilled; out holds
	// moves for the new round.
	RoundOver
	// GameOver means every factory was empty and evaluating the round
	// ended the game; out is empty.
	GameOver
)

// MoveList is a reusable buffer for generated moves, avoiding an
// allocation per call when reused across a search loop.
type MoveList struct {
	Moves []move.Move
}

// Reset empties the list while retaining its backing array.
func (l *MoveList) Reset() {
	l.Moves = l.Moves[:0]
}

// Add appends m to the list.
func (l *MoveList) Add(m move.Move) {
	l.Moves = append(l.Moves, m)
}

// PossibleMoves generates all legal moves for s's current player into out.
// If every factory is empty it first evaluates the round; on game over it
// returns GameOver with an empty list, otherwise it refills the factories
// (consuming rng) before generating moves and returns RoundOver.
func PossibleMoves(s *game.GameState, out *MoveList, rng *rand.Rand) (Result, error) {
	out.Reset()

	if s.AllFactoriesEmpty() {
		if s.EvaluateRound() {
			return GameOver, nil
		}
		s.FillFactories(rng)
		generate(s, out)
		return RoundOver, nil
	}

	generate(s, out)
	return Continue, nil
}

// Generate enumerates moves for s's current player directly, assuming the
// caller already handled any round evaluation and factory refill (mcts
// uses this to re-derive a chance child's move set after replaying a
// captured or freshly sampled refill outcome).
func Generate(s *game.GameState, out *MoveList) {
	out.Reset()
	generate(s, out)
}

func generate(s *game.GameState, out *MoveList) {
	player := s.CurrentPlayer
	center := s.CenterIndex()

	for f, factory := range s.Factories {
		factoryIndex := uint8(f)
		if f == center {
			factoryIndex = move.CenterFactoryIndex
		}

		for c := 0; c < tile.NumColors; c++ {
			count := factory[c]
			if count == 0 {
				continue
			}
			color := tile.Color(c)

			var discardOnly [6]uint8
			discardOnly[5] = count
			out.Add(move.Move{FactoryIndex: factoryIndex, Color: color, Distribution: discardOnly})

			for row := 0; row < 5; row++ {
				capacity := uint8(row + 1)
				lineColor := s.PatternLineColor[player][row]
				if lineColor != tile.NoColor && lineColor != color {
					continue
				}
				occupancy := s.PatternLineCount[player][row]
				if occupancy >= capacity {
					continue
				}
				col := (int(color) + row) % 5
				if s.Walls[player]&wall.FieldAt(row, col) != 0 {
					continue
				}

				space := capacity - occupancy
				placed := count
				if placed > space {
					placed = space
				}

				var dist [6]uint8
				dist[row] = placed
				dist[5] = count - placed
				out.Add(move.Move{FactoryIndex: factoryIndex, Color: color, Distribution: dist})
			}
		}
	}
}
