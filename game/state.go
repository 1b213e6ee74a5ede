// Package game implements the authoritative Azul game state: factories,
// bag, walls, pattern lines, and the floor line, plus move application,
// round/game evaluation, and integrity checking.
package game

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/nikohass/azulcore/errs"
	"github.com/nikohass/azulcore/tile"
	"github.com/nikohass/azulcore/wall"
)

// MinPlayers and MaxPlayers bound the supported player count.
const (
	MinPlayers = 2
	MaxPlayers = 4
)

// FloorPenalty is the cumulative penalty table indexed by floor-line
// progress, saturating at the last entry.
var FloorPenalty = [8]int32{0, 1, 2, 4, 6, 8, 11, 14}

// GameState is the authoritative, mutable state of one Azul game. It is
// cheap to Clone and intended to be cloned freely by move generation,
// playouts, and MCTS search.
type GameState struct {
	ID uuid.UUID

	NumPlayers int

	Bag      [tile.NumColors]uint8
	OutOfBag [tile.NumColors]uint8

	// Factories holds one entry per display factory plus the center as
	// the last entry. CenterIndex reports that position.
	Factories [][tile.NumColors]uint8

	Scores             []int32
	FloorLineProgress  []uint8
	FloorTiles         [][tile.NumColors]uint8
	Walls              []uint32
	PatternLineCount   [][5]uint8
	PatternLineColor   [][5]tile.Color

	CurrentPlayer           int
	NextRoundStartingPlayer int
	TileTakenFromCenter     bool
}

// NumDisplayFactories returns the number of non-center factories for a
// given player count: 5 for 2 players, 7 for 3, 9 for 4.
func NumDisplayFactories(numPlayers int) int {
	return 2*numPlayers + 1
}

// New creates the initial state for numPlayers: empty factories, a full
// bag, and player 0 to move. rng is unused here (no randomness is needed
// before the first fill_factories) but is accepted for symmetry with the
// rest of the contract and to allow deterministic construction in tests.
func New(numPlayers int, rng *rand.Rand) (*GameState, error) {
	if numPlayers < MinPlayers || numPlayers > MaxPlayers {
		return nil, errs.PlayerCountMismatch(numPlayers)
	}
	_ = rng

	s := &GameState{
		ID:         uuid.New(),
		NumPlayers: numPlayers,
		Factories:  make([][tile.NumColors]uint8, NumDisplayFactories(numPlayers)+1),

		Scores:            make([]int32, numPlayers),
		FloorLineProgress: make([]uint8, numPlayers),
		FloorTiles:        make([][tile.NumColors]uint8, numPlayers),
		Walls:             make([]uint32, numPlayers),
		PatternLineCount:  make([][5]uint8, numPlayers),
		PatternLineColor:  make([][5]tile.Color, numPlayers),
	}
	for c := range s.Bag {
		s.Bag[c] = tile.SupplyPerColor
	}
	for p := 0; p < numPlayers; p++ {
		for row := 0; row < 5; row++ {
			s.PatternLineColor[p][row] = tile.NoColor
		}
	}
	return s, nil
}

// CenterIndex returns the index of the center factory within Factories.
func (s *GameState) CenterIndex() int {
	return len(s.Factories) - 1
}

// Clone returns a deep copy of s, independent of further mutation.
func (s *GameState) Clone() *GameState {
	c := &GameState{
		ID:                      s.ID,
		NumPlayers:              s.NumPlayers,
		Bag:                     s.Bag,
		OutOfBag:                s.OutOfBag,
		Factories:               make([][tile.NumColors]uint8, len(s.Factories)),
		Scores:                  make([]int32, s.NumPlayers),
		FloorLineProgress:       make([]uint8, s.NumPlayers),
		FloorTiles:              make([][tile.NumColors]uint8, s.NumPlayers),
		Walls:                   make([]uint32, s.NumPlayers),
		PatternLineCount:        make([][5]uint8, s.NumPlayers),
		PatternLineColor:        make([][5]tile.Color, s.NumPlayers),
		CurrentPlayer:           s.CurrentPlayer,
		NextRoundStartingPlayer: s.NextRoundStartingPlayer,
		TileTakenFromCenter:     s.TileTakenFromCenter,
	}
	copy(c.Factories, s.Factories)
	copy(c.Scores, s.Scores)
	copy(c.FloorLineProgress, s.FloorLineProgress)
	copy(c.FloorTiles, s.FloorTiles)
	copy(c.Walls, s.Walls)
	copy(c.PatternLineCount, s.PatternLineCount)
	copy(c.PatternLineColor, s.PatternLineColor)
	return c
}

// AllFactoriesEmpty reports whether every factory, including the center,
// holds no tiles.
func (s *GameState) AllFactoriesEmpty() bool {
	for _, f := range s.Factories {
		for _, n := range f {
			if n > 0 {
				return false
			}
		}
	}
	return true
}

func sumColors(counts [tile.NumColors]uint8) int {
	n := 0
	for _, c := range counts {
		n += int(c)
	}
	return n
}

// CheckIntegrity verifies the global tile-conservation invariant and all
// per-player constraints, returning an errs.InvalidGameState error
// describing the first violation found.
func (s *GameState) CheckIntegrity() error {
	var total [tile.NumColors]int

	for c := 0; c < tile.NumColors; c++ {
		total[c] += int(s.Bag[c])
		total[c] += int(s.OutOfBag[c])
	}
	for _, f := range s.Factories {
		for c := 0; c < tile.NumColors; c++ {
			total[c] += int(f[c])
		}
	}

	for p := 0; p < s.NumPlayers; p++ {
		for row := 0; row < 5; row++ {
			count := s.PatternLineCount[p][row]
			color := s.PatternLineColor[p][row]
			capacity := uint8(row + 1)
			if count == 0 {
				continue
			}
			if color == tile.NoColor {
				return errs.InvalidGameState("pattern line has tiles but no color")
			}
			if count > capacity {
				return errs.InvalidGameState("pattern line exceeds capacity")
			}
			col := (int(color) + row) % 5
			if s.Walls[p]&wall.FieldAt(row, col) != 0 {
				return errs.InvalidGameState("pattern line color already placed on wall")
			}
			total[color] += int(count)
		}

		if s.Walls[p]&^wall.ValidCells != 0 {
			return errs.InvalidGameState("wall occupancy outside valid cells")
		}
		for bit := 0; bit < 30; bit++ {
			if wall.ValidCells&(1<<uint(bit)) == 0 {
				continue
			}
			if s.Walls[p]&(1<<uint(bit)) == 0 {
				continue
			}
			row, col := bit/wall.Stride, bit%wall.Stride
			color := wall.ColorAt(row, col)
			total[color]++
		}

		for c := 0; c < tile.NumColors; c++ {
			total[c] += int(s.FloorTiles[p][c])
		}
		if sumColors(s.FloorTiles[p]) > int(s.FloorLineProgress[p]) {
			return errs.InvalidGameState("floor tiles exceed floor line progress")
		}
		if s.Scores[p] < 0 {
			return errs.InvalidGameState("negative score")
		}
	}

	for c := 0; c < tile.NumColors; c++ {
		if total[c] != tile.SupplyPerColor {
			return errs.InvalidGameState("tile conservation violated")
		}
	}

	if s.CurrentPlayer < 0 || s.CurrentPlayer >= s.NumPlayers {
		return errs.InvalidGameState("current player out of range")
	}
	if s.NextRoundStartingPlayer < 0 || s.NextRoundStartingPlayer >= s.NumPlayers {
		return errs.InvalidGameState("next round starting player out of range")
	}

	return nil
}
