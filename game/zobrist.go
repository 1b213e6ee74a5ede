package game

import (
	"lukechampine.com/frand"

	"github.com/nikohass/azulcore/tile"
)

// Fingerprint is a Zobrist-style hash of a GameState: a table of random
// 64-bit words, one per (domain, index) pair, XORed together over every
// occupied feature of the state. The tables are filled from frand at
// package init, so a fingerprint is stable within one process but differs
// between runs. It is never used as a transposition-table key (this MCTS
// design does not use one).
const (
	zobristMaxCount     = 20
	zobristMaxFactories = 10
)

var (
	zobristBag         = newZobristTable(tile.NumColors * (zobristMaxCount + 1))
	zobristOutOfBag    = newZobristTable(tile.NumColors * (zobristMaxCount + 1))
	zobristFactory     = newZobristTable(zobristMaxFactories * tile.NumColors * (zobristMaxCount + 1))
	zobristWall        = newZobristTable(MaxPlayers * 32)
	zobristPatternLine = newZobristTable(MaxPlayers * 5 * 6 * (tile.NumColors + 1))
	zobristFloor       = newZobristTable(MaxPlayers * (zobristMaxCount + 1))
	zobristTurn        = newZobristTable(MaxPlayers)
)

func newZobristTable(n int) []uint64 {
	t := make([]uint64, n)
	for i := range t {
		t[i] = frand.Uint64()
	}
	return t
}

func clampCount(n, max int) int {
	if n > max {
		return max
	}
	return n
}

// Fingerprint computes the Zobrist hash of s.
func (s *GameState) Fingerprint() uint64 {
	var key uint64

	for c := 0; c < tile.NumColors; c++ {
		key ^= zobristBag[c*(zobristMaxCount+1)+clampCount(int(s.Bag[c]), zobristMaxCount)]
		key ^= zobristOutOfBag[c*(zobristMaxCount+1)+clampCount(int(s.OutOfBag[c]), zobristMaxCount)]
	}

	for f, factory := range s.Factories {
		if f >= zobristMaxFactories {
			break
		}
		for c := 0; c < tile.NumColors; c++ {
			idx := f*tile.NumColors*(zobristMaxCount+1) + c*(zobristMaxCount+1) + clampCount(int(factory[c]), zobristMaxCount)
			key ^= zobristFactory[idx]
		}
	}

	for p := 0; p < s.NumPlayers; p++ {
		for bit := 0; bit < 32; bit++ {
			if s.Walls[p]&(1<<uint(bit)) != 0 {
				key ^= zobristWall[p*32+bit]
			}
		}
		for row := 0; row < 5; row++ {
			colorIdx := tile.NumColors
			if s.PatternLineColor[p][row] != tile.NoColor {
				colorIdx = int(s.PatternLineColor[p][row])
			}
			count := int(s.PatternLineCount[p][row])
			idx := p*5*6*(tile.NumColors+1) + row*6*(tile.NumColors+1) + count*(tile.NumColors+1) + colorIdx
			key ^= zobristPatternLine[idx]
		}
		key ^= zobristFloor[p*(zobristMaxCount+1)+clampCount(int(s.FloorLineProgress[p]), zobristMaxCount)]
	}

	key ^= zobristTurn[s.CurrentPlayer]
	return key
}
