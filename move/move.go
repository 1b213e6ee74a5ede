// Package move defines the Move type shared by game, movegen, playout, and
// mcts: which factory (or the center) a player draws from, which color
// they take, and how the drawn tiles are distributed across the five
// pattern lines plus the floor line.
package move

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nikohass/azulcore/tile"
)

// CenterFactoryIndex is the FactoryIndex value meaning "take from the
// center" rather than from a numbered display factory.
const CenterFactoryIndex = 0xFF

// Move is a single legal action: take every tile of Color from the named
// factory (or the center), distributing the drawn tiles across
// Distribution, indexed 0..4 by pattern-line row and 5 by the floor line.
type Move struct {
	FactoryIndex uint8
	Color        tile.Color
	Distribution [6]uint8
}

// TakenFromCenter reports whether this move draws from the center rather
// than a numbered factory display.
func (m Move) TakenFromCenter() bool {
	return m.FactoryIndex == CenterFactoryIndex
}

// TotalTiles returns how many tiles this move distributes in total.
func (m Move) TotalTiles() int {
	n := 0
	for _, c := range m.Distribution {
		n += int(c)
	}
	return n
}

// FloorCount returns how many of this move's tiles land on the floor line.
func (m Move) FloorCount() uint8 {
	return m.Distribution[5]
}

// Equal reports whether m and other describe the same action.
func (m Move) Equal(other Move) bool {
	return m == other
}

// String renders the move as its wire token, e.g. "2:B:0,0,3,0,0,0" or
// "C:R:1,0,0,0,0,2" for a center draw.
func (m Move) String() string {
	var factoryToken string
	if m.TakenFromCenter() {
		factoryToken = "C"
	} else {
		factoryToken = strconv.Itoa(int(m.FactoryIndex))
	}
	parts := make([]string, len(m.Distribution))
	for i, c := range m.Distribution {
		parts[i] = strconv.Itoa(int(c))
	}
	return fmt.Sprintf("%s:%c:%s", factoryToken, m.Color.Char(), strings.Join(parts, ","))
}

// ErrMalformedToken is returned by Parse when a token cannot be decoded.
var ErrMalformedToken = fmt.Errorf("malformed move token")

// Parse decodes a move token produced by String. It returns
// ErrMalformedToken if the token does not have the expected shape.
func Parse(token string) (Move, error) {
	fields := strings.Split(token, ":")
	if len(fields) != 3 {
		return Move{}, fmt.Errorf("%w: %q: expected 3 colon-separated fields", ErrMalformedToken, token)
	}

	var m Move
	if fields[0] == "C" {
		m.FactoryIndex = CenterFactoryIndex
	} else {
		idx, err := strconv.Atoi(fields[0])
		if err != nil || idx < 0 {
			return Move{}, fmt.Errorf("%w: %q: bad factory index", ErrMalformedToken, token)
		}
		m.FactoryIndex = uint8(idx)
	}

	if len(fields[1]) != 1 {
		return Move{}, fmt.Errorf("%w: %q: bad color token", ErrMalformedToken, token)
	}
	color, ok := tile.FromChar(fields[1][0])
	if !ok {
		return Move{}, fmt.Errorf("%w: %q: unknown color %q", ErrMalformedToken, token, fields[1])
	}
	m.Color = color

	counts := strings.Split(fields[2], ",")
	if len(counts) != len(m.Distribution) {
		return Move{}, fmt.Errorf("%w: %q: expected %d distribution fields, got %d",
			ErrMalformedToken, token, len(m.Distribution), len(counts))
	}
	for i, s := range counts {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 20 {
			return Move{}, fmt.Errorf("%w: %q: bad distribution count %q", ErrMalformedToken, token, s)
		}
		m.Distribution[i] = uint8(n)
	}

	return m, nil
}