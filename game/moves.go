package game

import (
	"github.com/nikohass/azulcore/errs"
	"github.com/nikohass/azulcore/move"
	"github.com/nikohass/azulcore/tile"
)

// DoMove applies m for the current player. It validates the move against
// the state it is given (factory holds enough tiles of the stated color,
// distribution matches the count taken, pattern lines stay color-coherent
// and within capacity) and returns an IllegalMove error rather than
// corrupting state on a bad move. Legal moves are expected to come from
// movegen.PossibleMoves; this check is a defensive second line, not the
// primary legality gate.
func (s *GameState) DoMove(m move.Move) error {
	total := m.TotalTiles()
	if total == 0 {
		return errs.IllegalMove(m.String(), "empty distribution")
	}

	source := int(m.FactoryIndex)
	if m.TakenFromCenter() {
		source = s.CenterIndex()
	}
	if source < 0 || source >= len(s.Factories) {
		return errs.IllegalMove(m.String(), "factory index out of range")
	}

	count := s.Factories[source][m.Color]
	if int(count) == 0 {
		return errs.IllegalMove(m.String(), "no tiles of that color at the source")
	}
	if int(count) != total {
		return errs.IllegalMove(m.String(), "distribution does not sum to tiles taken")
	}

	player := s.CurrentPlayer
	for row := 0; row < 5; row++ {
		n := m.Distribution[row]
		if n == 0 {
			continue
		}
		current := s.PatternLineColor[player][row]
		if current != tile.NoColor && current != m.Color {
			return errs.IllegalMove(m.String(), "pattern line already holds a different color")
		}
		if s.PatternLineCount[player][row]+n > uint8(row+1) {
			return errs.IllegalMove(m.String(), "pattern line would overflow its capacity")
		}
	}

	s.Factories[source][m.Color] = 0

	if m.TakenFromCenter() {
		if !s.TileTakenFromCenter {
			s.TileTakenFromCenter = true
			s.NextRoundStartingPlayer = player
			s.FloorLineProgress[player]++
		}
	} else {
		center := s.CenterIndex()
		for c := 0; c < tile.NumColors; c++ {
			if tile.Color(c) == m.Color {
				continue
			}
			s.Factories[center][c] += s.Factories[source][c]
			s.Factories[source][c] = 0
		}
	}

	for row := 0; row < 5; row++ {
		n := m.Distribution[row]
		if n == 0 {
			continue
		}
		capacity := uint8(row + 1)
		current := s.PatternLineColor[player][row]
		if current == tile.NoColor {
			s.PatternLineColor[player][row] = m.Color
		} else if current != m.Color {
			return errs.IllegalMove(m.String(), "pattern line already holds a different color")
		}
		newCount := s.PatternLineCount[player][row] + n
		if newCount > capacity {
			return errs.IllegalMove(m.String(), "pattern line would overflow its capacity")
		}
		s.PatternLineCount[player][row] = newCount
	}

	if floorCount := m.FloorCount(); floorCount > 0 {
		s.FloorTiles[player][m.Color] += floorCount
		s.FloorLineProgress[player] += floorCount
	}

	s.CurrentPlayer = (s.CurrentPlayer + 1) % s.NumPlayers
	return nil
}
