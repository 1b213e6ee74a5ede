package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nikohass/azulcore/tile"
)

// Serialize renders s as a single-line, FEN-like string suitable for the
// stdio protocol: uuid, header fields, bag, out-of-bag, factories (slash
// separated, center last), then one semicolon-separated block per player
// (score, floor progress, floor tiles, wall bitboard, pattern lines).
func (s *GameState) Serialize() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d %d %d %d",
		s.ID.String(), s.NumPlayers, s.CurrentPlayer, s.NextRoundStartingPlayer, boolToInt(s.TileTakenFromCenter))

	b.WriteByte(' ')
	b.WriteString(colorCountsString(s.Bag))
	b.WriteByte(' ')
	b.WriteString(colorCountsString(s.OutOfBag))

	b.WriteByte(' ')
	factoryStrs := make([]string, len(s.Factories))
	for i, f := range s.Factories {
		factoryStrs[i] = colorCountsString(f)
	}
	b.WriteString(strings.Join(factoryStrs, "/"))

	b.WriteByte(' ')
	playerStrs := make([]string, s.NumPlayers)
	for p := 0; p < s.NumPlayers; p++ {
		lineStrs := make([]string, 5)
		for row := 0; row < 5; row++ {
			colorChar := byte('N')
			if s.PatternLineColor[p][row] != tile.NoColor {
				colorChar = s.PatternLineColor[p][row].Char()
			}
			lineStrs[row] = fmt.Sprintf("%d%c", s.PatternLineCount[p][row], colorChar)
		}
		playerStrs[p] = strings.Join([]string{
			strconv.Itoa(int(s.Scores[p])),
			strconv.Itoa(int(s.FloorLineProgress[p])),
			colorCountsString(s.FloorTiles[p]),
			strconv.FormatUint(uint64(s.Walls[p]), 16),
			strings.Join(lineStrs, ","),
		}, ":")
	}
	b.WriteString(strings.Join(playerStrs, ";"))

	return b.String()
}

func colorCountsString(counts [tile.NumColors]uint8) string {
	parts := make([]string, tile.NumColors)
	for c, n := range counts {
		parts[c] = strconv.Itoa(int(n))
	}
	return strings.Join(parts, ",")
}

func parseColorCounts(s string) ([tile.NumColors]uint8, error) {
	var out [tile.NumColors]uint8
	parts := strings.Split(s, ",")
	if len(parts) != tile.NumColors {
		return out, fmt.Errorf("expected %d color counts, got %d in %q", tile.NumColors, len(parts), s)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return out, fmt.Errorf("bad color count %q in %q", p, s)
		}
		out[i] = uint8(n)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Deserialize parses a string produced by Serialize back into a
// GameState.
func Deserialize(data string) (*GameState, error) {
	fields := strings.Split(data, " ")
	if len(fields) != 9 {
		return nil, fmt.Errorf("expected 9 space-separated fields, got %d", len(fields))
	}

	id, err := uuid.Parse(fields[0])
	if err != nil {
		return nil, fmt.Errorf("bad uuid: %w", err)
	}
	numPlayers, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("bad player count: %w", err)
	}
	currentPlayer, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("bad current player: %w", err)
	}
	nextStarting, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("bad next round starting player: %w", err)
	}
	tileTaken, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("bad tile-taken-from-center flag: %w", err)
	}

	bag, err := parseColorCounts(fields[5])
	if err != nil {
		return nil, fmt.Errorf("bad bag: %w", err)
	}
	outOfBag, err := parseColorCounts(fields[6])
	if err != nil {
		return nil, fmt.Errorf("bad out-of-bag: %w", err)
	}

	factoryStrs := strings.Split(fields[7], "/")
	factories := make([][tile.NumColors]uint8, len(factoryStrs))
	for i, fs := range factoryStrs {
		counts, err := parseColorCounts(fs)
		if err != nil {
			return nil, fmt.Errorf("bad factory %d: %w", i, err)
		}
		factories[i] = counts
	}

	playerBlocks := strings.Split(fields[8], ";")
	if len(playerBlocks) != numPlayers {
		return nil, fmt.Errorf("expected %d player blocks, got %d", numPlayers, len(playerBlocks))
	}

	s := &GameState{
		ID:                      id,
		NumPlayers:              numPlayers,
		Bag:                     bag,
		OutOfBag:                outOfBag,
		Factories:               factories,
		CurrentPlayer:           currentPlayer,
		NextRoundStartingPlayer: nextStarting,
		TileTakenFromCenter:     tileTaken != 0,
		Scores:                  make([]int32, numPlayers),
		FloorLineProgress:       make([]uint8, numPlayers),
		FloorTiles:              make([][tile.NumColors]uint8, numPlayers),
		Walls:                   make([]uint32, numPlayers),
		PatternLineCount:        make([][5]uint8, numPlayers),
		PatternLineColor:        make([][5]tile.Color, numPlayers),
	}

	for p, block := range playerBlocks {
		parts := strings.Split(block, ":")
		if len(parts) != 5 {
			return nil, fmt.Errorf("player %d: expected 5 colon-separated fields, got %d", p, len(parts))
		}

		score, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("player %d: bad score: %w", p, err)
		}
		floorProgress, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("player %d: bad floor progress: %w", p, err)
		}
		floorTiles, err := parseColorCounts(parts[2])
		if err != nil {
			return nil, fmt.Errorf("player %d: bad floor tiles: %w", p, err)
		}
		wallOccupancy, err := strconv.ParseUint(parts[3], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("player %d: bad wall: %w", p, err)
		}

		lineTokens := strings.Split(parts[4], ",")
		if len(lineTokens) != 5 {
			return nil, fmt.Errorf("player %d: expected 5 pattern lines, got %d", p, len(lineTokens))
		}
		var counts [5]uint8
		var colors [5]tile.Color
		for row, tok := range lineTokens {
			if len(tok) < 2 {
				return nil, fmt.Errorf("player %d row %d: malformed pattern line token %q", p, row, tok)
			}
			n, err := strconv.Atoi(tok[:len(tok)-1])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("player %d row %d: bad count in %q", p, row, tok)
			}
			counts[row] = uint8(n)
			colorChar := tok[len(tok)-1]
			if colorChar == 'N' {
				colors[row] = tile.NoColor
			} else {
				color, ok := tile.FromChar(colorChar)
				if !ok {
					return nil, fmt.Errorf("player %d row %d: bad color in %q", p, row, tok)
				}
				colors[row] = color
			}
		}

		s.Scores[p] = int32(score)
		s.FloorLineProgress[p] = uint8(floorProgress)
		s.FloorTiles[p] = floorTiles
		s.Walls[p] = uint32(wallOccupancy)
		s.PatternLineCount[p] = counts
		s.PatternLineColor[p] = colors
	}

	return s, nil
}
