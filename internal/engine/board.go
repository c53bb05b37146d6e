package engine

// Board is the playfield tile map. Row 0 is the top (spawn) row.
type Board struct {
	width  int
	height int
	rows   [][]Cell // rows[y][x]
}

// NewBoard allocates an empty board of the given size.
func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height}
	b.rows = make([][]Cell, height)
	for y := range b.rows {
		b.rows[y] = make([]Cell, width)
	}
	b.Clear()
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// Clear empties every tile.
func (b *Board) Clear() {
	for y := range b.rows {
		b.clearRow(y)
	}
}

func (b *Board) clearRow(y int) {
	for x := range b.rows[y] {
		b.rows[y][x] = Empty
	}
}

// Contains reports whether (x, y) is a tile of the board.
func (b *Board) Contains(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the tile at column x, row y. Off-board positions read as Empty.
func (b *Board) At(x, y int) Cell {
	if !b.Contains(x, y) {
		return Empty
	}
	return b.rows[y][x]
}

// Set writes a tile. Off-board positions are silently ignored.
func (b *Board) Set(x, y int, c Cell) {
	if !b.Contains(x, y) {
		return
	}
	b.rows[y][x] = c
}

// Filled returns the number of non-empty tiles.
func (b *Board) Filled() int {
	n := 0
	for _, row := range b.rows {
		for _, c := range row {
			if !c.IsEmpty() {
				n++
			}
		}
	}
	return n
}

// isRowFull reports whether every column of row y is occupied.
func (b *Board) isRowFull(y int) bool {
	for _, c := range b.rows[y] {
		if c.IsEmpty() {
			return false
		}
	}
	return true
}

// collapseRow removes row y by shifting every row above it down by one.
// Row 0 becomes empty.
func (b *Board) collapseRow(y int) {
	for r := y; r > 0; r-- {
		copy(b.rows[r], b.rows[r-1])
	}
	b.clearRow(0)
}

// clearFullRows scans rows 1..height-1 top-down and collapses every full one.
// Row 0 is the spawn row and is never scanned. Returns the number of rows removed.
func (b *Board) clearFullRows() int {
	cleared := 0
	for y := 1; y < b.height; y++ {
		if b.isRowFull(y) {
			b.collapseRow(y)
			cleared++
		}
	}
	return cleared
}
