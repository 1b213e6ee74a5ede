// Package wall implements the bitboard primitives for a player's 5x5 Azul
// wall: occupancy masks, the fixed per-color diagonal layout, and the
// placed-tile scoring rule. Cells are packed into a uint32 using a 6-column
// stride (one spare bit per row) so that row and column walks are cheap
// shifts rather than index arithmetic:
//
//	 0  1  2  3  4  (5)
//	 6  7  8  9 10 (11)
//	12 13 14 15 16 (17)
//	18 19 20 21 22 (23)
//	24 25 26 27 28 (29)
package wall

import "github.com/nikohass/azulcore/tile"

// Stride is the bit-distance between a cell and the cell directly below it.
const Stride = 6

// RowMask is the occupancy mask for a single packed row before shifting.
const RowMask uint32 = 0b11111

// ValidCells masks every real cell position across all five packed rows.
const ValidCells uint32 = 0b00_0_11111_0_11111_0_11111_0_11111_0_11111

// ColorMasks gives, for each tile color, the bitboard of the wall cells it
// occupies under the fixed diagonal layout: color c sits at column
// (row+c) mod 5 of every row.
var ColorMasks = buildColorMasks()

func buildColorMasks() [tile.NumColors]uint32 {
	var masks [tile.NumColors]uint32
	for row := 0; row < 5; row++ {
		for c := 0; c < tile.NumColors; c++ {
			col := (row + c) % 5
			masks[c] |= FieldAt(row, col)
		}
	}
	return masks
}

// FieldAt returns the single-bit mask for the cell at (row, col).
func FieldAt(row, col int) uint32 {
	return 1 << uint(row*Stride+col)
}

// RowMaskAt returns the occupancy mask for every cell in the given row.
func RowMaskAt(row int) uint32 {
	return RowMask << uint(row*Stride)
}

// ColorAt returns the color occupying (row, col) under the fixed layout.
func ColorAt(row, col int) tile.Color {
	return tile.Color((col - row + 5) % 5)
}

// rowNeighborsLookup[colInRow][rowOccupancy5bit] is the number of
// contiguous occupied cells touching colInRow (including colInRow itself,
// assumed occupied) within a 5-bit row occupancy. Precomputed once so
// PlacedTileScore never has to walk bit-by-bit in both directions.
var rowNeighborsLookup = buildRowNeighborsLookup()

func buildRowNeighborsLookup() [5][32]uint8 {
	var table [5][32]uint8
	for col := 0; col < 5; col++ {
		for occ := 0; occ < 32; occ++ {
			withTile := uint32(occ) | (1 << uint(col))
			table[col][occ] = uint8(countRowRunAt(withTile, col))
		}
	}
	return table
}

func countRowRunAt(rowOccupancy uint32, col int) int {
	count := 1
	for c := col - 1; c >= 0 && rowOccupancy&(1<<uint(c)) != 0; c-- {
		count++
	}
	for c := col + 1; c < 5 && rowOccupancy&(1<<uint(c)) != 0; c++ {
		count++
	}
	return count
}

func countRowNeighbors(occupancy uint32, bitIndex uint) uint32 {
	row := bitIndex / Stride
	col := bitIndex % Stride
	rowOcc := (occupancy >> (row * Stride)) & RowMask
	return uint32(rowNeighborsLookup[col][rowOcc])
}

func countColumnNeighbors(occupancy uint32, bitIndex uint) uint32 {
	newTile := uint32(1) << bitIndex
	occupancy |= newTile

	var neighbors uint32
	for bit := newTile; bit&occupancy != 0; bit <<= Stride {
		neighbors |= bit
	}
	for bit := newTile; bit&occupancy != 0; bit >>= Stride {
		neighbors |= bit
	}
	return popcount(neighbors)
}

func popcount(v uint32) uint32 {
	var n uint32
	for v != 0 {
		v &= v - 1
		n++
	}
	return n
}

// PlacedTileScore returns the immediate score for newly occupying
// bitIndex on a wall whose current (pre-placement) occupancy is occupancy.
// It sums the row run length and the column run length through the new
// tile, counting the tile itself once when at most one axis has a
// neighbor and twice (once per axis) when both axes do.
func PlacedTileScore(occupancy uint32, bitIndex uint8) int {
	col := int(countColumnNeighbors(occupancy, uint(bitIndex))) - 1
	row := int(countRowNeighbors(occupancy, uint(bitIndex))) - 1
	if col > 0 && row > 0 {
		return col + row + 2
	}
	return col + row + 1
}

// CountCompleteRows returns how many of the five rows are fully occupied.
func CountCompleteRows(occupancy uint32) int {
	occupancy &= occupancy >> 1
	occupancy &= occupancy >> 2
	occupancy &= occupancy >> 1
	return int(popcount(occupancy))
}

// HasCompleteRow reports whether any row is fully occupied; it is
// cheaper than CountCompleteRows when the caller only needs a boolean.
func HasCompleteRow(occupancy uint32) bool {
	occupancy &= occupancy >> 1
	occupancy &= occupancy >> 2
	occupancy &= occupancy >> 1
	return occupancy > 0
}

// CountCompleteColumns returns how many of the five columns are fully
// occupied.
func CountCompleteColumns(occupancy uint32) int {
	occupancy &= occupancy >> Stride
	occupancy &= occupancy >> (2 * Stride)
	occupancy &= occupancy >> Stride
	return int(popcount(occupancy))
}

// CountFullColors returns how many colors have all five of their cells
// occupied.
func CountFullColors(occupancy uint32) int {
	n := 0
	for _, mask := range ColorMasks {
		if occupancy&mask == mask {
			n++
		}
	}
	return n
}
