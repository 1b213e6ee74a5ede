package movegen

import (
	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/move"
	"github.com/nikohass/azulcore/tile"
	"github.com/nikohass/azulcore/wall"
)

// BruteForce independently re-derives the legal-move set for s's current
// player, assuming the factories already hold tiles (it does not evaluate
// rounds or refill). It walks colors outermost and factories innermost,
// the opposite traversal order of generate, and recomputes row
// eligibility from scratch rather than sharing any helper with it. Used
// by tests to check PossibleMoves for soundness and completeness, not by
// the search-hot path.
func BruteForce(s *game.GameState) []move.Move {
	player := s.CurrentPlayer
	center := s.CenterIndex()
	var out []move.Move

	for c := 0; c < tile.NumColors; c++ {
		color := tile.Color(c)

		eligibleRows := make([]int, 0, 5)
		for row := 0; row < 5; row++ {
			capacity := uint8(row + 1)
			if s.PatternLineCount[player][row] >= capacity {
				continue
			}
			lineColor := s.PatternLineColor[player][row]
			if lineColor != tile.NoColor && lineColor != color {
				continue
			}
			col := (row + int(color)) % 5
			if s.Walls[player]&wall.FieldAt(row, col) != 0 {
				continue
			}
			eligibleRows = append(eligibleRows, row)
		}

		for f := len(s.Factories) - 1; f >= 0; f-- {
			count := s.Factories[f][c]
			if count == 0 {
				continue
			}
			factoryIndex := uint8(f)
			if f == center {
				factoryIndex = move.CenterFactoryIndex
			}

			var discardOnly [6]uint8
			discardOnly[5] = count
			out = append(out, move.Move{FactoryIndex: factoryIndex, Color: color, Distribution: discardOnly})

			for _, row := range eligibleRows {
				capacity := uint8(row + 1)
				occupancy := s.PatternLineCount[player][row]
				space := capacity - occupancy
				placed := count
				if space < placed {
					placed = space
				}
				var dist [6]uint8
				dist[row] = placed
				dist[5] = count - placed
				out = append(out, move.Move{FactoryIndex: factoryIndex, Color: color, Distribution: dist})
			}
		}
	}

	return out
}
