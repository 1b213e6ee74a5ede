// Package playout implements the heuristic rollout policy used to
// estimate a per-player value vector for a non-terminal MCTS leaf: play
// greedily-scored moves to a terminal state (or a ply guard) and derive a
// normalized value vector from final scores.
package playout

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/move"
	"github.com/nikohass/azulcore/movegen"
	"github.com/nikohass/azulcore/wall"
)

// MaxPlies guards against pathological discard-only loops.
const MaxPlies = 90

// TieBreakProbability is the chance an equal-or-better candidate move
// replaces the current best during greedy selection, keeping a little
// exploration in the rollout instead of always taking the first-found max.
const TieBreakProbability = 0.8

const epsilonFactor = 1e-6

// placeBonusPerTile and completionBonus are indexed by pattern-line row.
// Azul's wall layout is a color-invariant diagonal (every color occupies
// exactly one cell per row and column), so these tables do not need a
// separate column per color.
var placeBonusPerTile = [5]float64{0.3, 0.35, 0.4, 0.45, 0.5}
var completionBonus = [5]float64{1.0, 1.4, 1.8, 2.2, 2.6}

// Rollout clones s, plays the heuristic policy to a terminal state (or
// MaxPlies), and returns the resulting per-player value vector. rng drives
// both move generation's factory refills and the policy's tie-breaking.
func Rollout(s *game.GameState, rng *rand.Rand) ([]float64, error) {
	state := s.Clone()
	var list movegen.MoveList

	for ply := 0; ply < MaxPlies; ply++ {
		result, err := movegen.PossibleMoves(state, &list, rng)
		if err != nil {
			return nil, err
		}
		if result == movegen.GameOver {
			return ValueVector(state), nil
		}
		if len(list.Moves) == 0 {
			return ValueVector(state), nil
		}

		best := pickMove(state, list.Moves, rng)
		if err := state.DoMove(best); err != nil {
			return nil, err
		}
	}
	return ValueVector(state), nil
}

// BestMove scores every candidate with the same heuristic Rollout uses
// internally and returns the winner, for players that want a one-ply
// heuristic choice without running a full rollout.
func BestMove(s *game.GameState, moves []move.Move, rng *rand.Rand) move.Move {
	return pickMove(s, moves, rng)
}

func pickMove(s *game.GameState, moves []move.Move, rng *rand.Rand) move.Move {
	best := moves[0]
	bestScore := scoreMove(s, best)

	for _, m := range moves[1:] {
		sc := scoreMove(s, m)
		if sc >= bestScore && rng.Float64() < TieBreakProbability {
			best, bestScore = m, sc
		}
	}
	return best
}

func patternRow(m move.Move) int {
	for row := 0; row < 5; row++ {
		if m.Distribution[row] > 0 {
			return row
		}
	}
	return -1
}

func discardPenalty(floorProgress uint8, discarded int) float64 {
	if discarded == 0 {
		return 0
	}
	clamp := func(i int) int {
		if i >= len(game.FloorPenalty) {
			return len(game.FloorPenalty) - 1
		}
		return i
	}
	before := game.FloorPenalty[clamp(int(floorProgress))]
	after := game.FloorPenalty[clamp(int(floorProgress)+discarded)]
	return -float64(after - before)
}

func scoreMove(s *game.GameState, m move.Move) float64 {
	player := s.CurrentPlayer
	score := discardPenalty(s.FloorLineProgress[player], int(m.FloorCount()))

	row := patternRow(m)
	if row < 0 {
		return score
	}

	placed := m.Distribution[row]
	score += placeBonusPerTile[row] * float64(placed)

	capacity := uint8(row + 1)
	occupancyBefore := s.PatternLineCount[player][row]
	newOccupancy := occupancyBefore + placed

	if newOccupancy < capacity {
		remaining := capacity - newOccupancy
		score += 1.0 / float64(remaining+1)
		return score
	}

	score += completionBonus[row]

	col := (row + int(m.Color)) % 5
	bitIndex := uint8(row*wall.Stride + col)
	currentWall := s.Walls[player]
	immediate := wall.PlacedTileScore(currentWall, bitIndex)
	hypothetical := currentWall | wall.FieldAt(row, col)

	multiplier := 1.0
	if wall.HasCompleteRow(hypothetical) && !wall.HasCompleteRow(currentWall) {
		multiplier *= 2
	}
	if wall.CountCompleteColumns(hypothetical) > wall.CountCompleteColumns(currentWall) {
		multiplier *= 7
	}
	if wall.CountFullColors(hypothetical) > wall.CountFullColors(currentWall) {
		multiplier *= 10
	}
	score += float64(immediate) * multiplier

	return score
}

// ValueVector derives a normalized per-player value vector from s's current
// scores: min-max normalized, perturbed by a tiny score-proportional epsilon
// to break exact ties, then renormalized to sum to 1. Exported so mcts can
// reuse it to cache a terminal node's backed-up value without re-deriving
// the normalization rule.
func ValueVector(s *game.GameState) []float64 {
	n := s.NumPlayers
	values := make([]float64, n)

	minScore, maxScore := s.Scores[0], s.Scores[0]
	for _, sc := range s.Scores {
		if sc < minScore {
			minScore = sc
		}
		if sc > maxScore {
			maxScore = sc
		}
	}

	if minScore == maxScore {
		uniform := 1.0 / float64(n)
		for i := range values {
			values[i] = uniform
		}
		return values
	}

	for i, sc := range s.Scores {
		norm := float64(sc-minScore) / float64(maxScore-minScore)
		values[i] = norm + epsilonFactor*float64(sc)
	}

	sum := floats.Sum(values)
	floats.Scale(1/sum, values)
	return values
}
