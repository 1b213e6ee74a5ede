package move_test

import (
	"testing"

	"github.com/nikohass/azulcore/move"
	"github.com/nikohass/azulcore/tile"
	"github.com/stretchr/testify/require"
)

func TestStringRoundTrip(t *testing.T) {
	cases := []move.Move{
		{FactoryIndex: 2, Color: tile.Blue, Distribution: [6]uint8{0, 0, 3, 0, 0, 0}},
		{FactoryIndex: move.CenterFactoryIndex, Color: tile.Red, Distribution: [6]uint8{1, 0, 0, 0, 0, 2}},
	}
	for _, m := range cases {
		token := m.String()
		parsed, err := move.Parse(token)
		require.NoError(t, err)
		require.True(t, m.Equal(parsed))
	}
}

func TestTakenFromCenter(t *testing.T) {
	m := move.Move{FactoryIndex: move.CenterFactoryIndex}
	require.True(t, m.TakenFromCenter())
	m2 := move.Move{FactoryIndex: 0}
	require.False(t, m2.TakenFromCenter())
}

func TestTotalTilesAndFloorCount(t *testing.T) {
	m := move.Move{Distribution: [6]uint8{1, 2, 0, 0, 0, 3}}
	require.Equal(t, 6, m.TotalTiles())
	require.Equal(t, uint8(3), m.FloorCount())
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := move.Parse("not-a-move")
	require.ErrorIs(t, err, move.ErrMalformedToken)

	_, err = move.Parse("2:Z:0,0,0,0,0,0")
	require.ErrorIs(t, err, move.ErrMalformedToken)

	_, err = move.Parse("2:B:0,0,0,0,0")
	require.ErrorIs(t, err, move.ErrMalformedToken)
}
