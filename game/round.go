package game

import (
	"math/rand"

	"github.com/nikohass/azulcore/tile"
	"github.com/nikohass/azulcore/wall"
)

// EvaluateRound scores every complete pattern line onto its owner's wall,
// applies floor-line penalties, and resets round-scoped state. It returns
// true iff the game ends after this round (any player completed a wall
// row), in which case end-of-game bonuses have already been added.
func (s *GameState) EvaluateRound() bool {
	for p := 0; p < s.NumPlayers; p++ {
		for row := 0; row < 5; row++ {
			capacity := uint8(row + 1)
			if s.PatternLineCount[p][row] != capacity {
				continue
			}
			color := s.PatternLineColor[p][row]
			col := (int(color) + row) % 5
			bitIndex := uint8(row*wall.Stride + col)

			score := wall.PlacedTileScore(s.Walls[p], bitIndex)
			s.Walls[p] |= wall.FieldAt(row, col)
			s.Scores[p] += int32(score)

			s.OutOfBag[color] += capacity - 1
			s.PatternLineCount[p][row] = 0
			s.PatternLineColor[p][row] = tile.NoColor
		}
	}

	for p := 0; p < s.NumPlayers; p++ {
		idx := int(s.FloorLineProgress[p])
		if idx >= len(FloorPenalty) {
			idx = len(FloorPenalty) - 1
		}
		s.Scores[p] -= FloorPenalty[idx]
		if s.Scores[p] < 0 {
			s.Scores[p] = 0
		}
		for c := 0; c < tile.NumColors; c++ {
			s.OutOfBag[c] += s.FloorTiles[p][c]
			s.FloorTiles[p][c] = 0
		}
		s.FloorLineProgress[p] = 0
	}

	gameOver := false
	for p := 0; p < s.NumPlayers; p++ {
		if wall.HasCompleteRow(s.Walls[p]) {
			gameOver = true
		}
	}
	if gameOver {
		for p := 0; p < s.NumPlayers; p++ {
			s.Scores[p] += int32(wall.CountCompleteRows(s.Walls[p]))*2 +
				int32(wall.CountCompleteColumns(s.Walls[p]))*7 +
				int32(wall.CountFullColors(s.Walls[p]))*10
		}
	}

	s.CurrentPlayer = s.NextRoundStartingPlayer
	s.TileTakenFromCenter = false
	return gameOver
}

// FillFactories refills every non-center factory with 4 tiles drawn
// uniformly without replacement from the bag, refilling the bag from
// out-of-bag (and emptying out-of-bag) whenever it runs dry mid-draw. If
// the bag and out-of-bag are both exhausted it stops early, leaving the
// remaining factories empty or partially filled.
func (s *GameState) FillFactories(rng *rand.Rand) {
	displayFactories := NumDisplayFactories(s.NumPlayers)
	for i := 0; i < displayFactories; i++ {
		for n := 0; n < 4; n++ {
			color, ok := s.drawFromBag(rng)
			if !ok {
				return
			}
			s.Factories[i][color]++
		}
	}
}

func (s *GameState) drawFromBag(rng *rand.Rand) (tile.Color, bool) {
	total := sumColors(s.Bag)
	if total == 0 {
		if sumColors(s.OutOfBag) == 0 {
			return 0, false
		}
		s.Bag = s.OutOfBag
		s.OutOfBag = [tile.NumColors]uint8{}
		total = sumColors(s.Bag)
	}

	r := rng.Intn(total)
	for c := 0; c < tile.NumColors; c++ {
		if r < int(s.Bag[c]) {
			s.Bag[c]--
			return tile.Color(c), true
		}
		r -= int(s.Bag[c])
	}
	panic("drawFromBag: unreachable, bag total miscounted")
}
