package wall_test

import (
	"testing"

	"github.com/nikohass/azulcore/tile"
	"github.com/nikohass/azulcore/wall"
	"github.com/stretchr/testify/require"
)

func TestFieldAtAndColorAt(t *testing.T) {
	require.Equal(t, uint32(1), wall.FieldAt(0, 0))
	require.Equal(t, uint32(1<<(1*wall.Stride+2)), wall.FieldAt(1, 2))
	require.Equal(t, tile.Blue, wall.ColorAt(0, 0))
	require.Equal(t, tile.Yellow, wall.ColorAt(1, 2))
}

func TestColorMasksAreDisjointAndCoverAllCells(t *testing.T) {
	var union uint32
	for _, m := range wall.ColorMasks {
		require.Zero(t, union&m, "color masks must be disjoint")
		union |= m
	}
	require.Equal(t, wall.ValidCells, union)
}

// Scenario 1: a single isolated tile placement scores 1.
func TestPlacedTileScoreSingleTile(t *testing.T) {
	var occupancy uint32
	score := wall.PlacedTileScore(occupancy, uint8(wall.Stride*2+2))
	require.Equal(t, 1, score)
}

// Scenario 2: completing a run of three in a row scores 3.
func TestPlacedTileScoreRowRun(t *testing.T) {
	occupancy := wall.FieldAt(0, 0) | wall.FieldAt(0, 1)
	score := wall.PlacedTileScore(occupancy, uint8(wall.Stride*0+2))
	require.Equal(t, 3, score)
}

// Scenario 3: a placement that closes both a row run and a column run
// counts the tile itself once per axis, scoring the sum of both runs.
func TestPlacedTileScoreRowAndColumnIntersection(t *testing.T) {
	occupancy := wall.FieldAt(1, 1) | wall.FieldAt(0, 2)
	score := wall.PlacedTileScore(occupancy, uint8(wall.Stride*1+2))
	require.Equal(t, 4, score)
}

func TestCountCompleteRows(t *testing.T) {
	occupancy := wall.RowMaskAt(0) | wall.RowMaskAt(2)
	require.Equal(t, 2, wall.CountCompleteRows(occupancy))
	require.True(t, wall.HasCompleteRow(occupancy))
}

func TestCountCompleteColumns(t *testing.T) {
	var occupancy uint32
	for row := 0; row < 5; row++ {
		occupancy |= wall.FieldAt(row, 3)
	}
	require.Equal(t, 1, wall.CountCompleteColumns(occupancy))
}

func TestCountFullColors(t *testing.T) {
	occupancy := wall.ColorMasks[0]
	require.Equal(t, 1, wall.CountFullColors(occupancy))
	require.Equal(t, 0, wall.CountFullColors(occupancy&^wall.FieldAt(0, 0)))
}
