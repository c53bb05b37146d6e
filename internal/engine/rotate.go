package engine

// RotateTetromino turns the falling piece a quarter turn. The O piece never
// rotates. When the piece hangs over a side wall the rotated buffer is pushed
// back onto the board; if the result still overlaps the floor or a locked
// block the rotation is abandoned and the piece is left unchanged.
func (g *Game) RotateTetromino(clockwise bool) {
	if g.falling.Type == ShapeO {
		return
	}

	rotated := g.falling.rotated(clockwise)
	displace := g.wallDisplacement(&rotated)

	if g.collides(&rotated, g.falling.Size, g.falling.X+displace, g.falling.Y) {
		return
	}

	g.falling.X += displace
	g.falling.Cells = rotated
	g.stateChanged = true
	g.onTetrominoMoved()
}

// wallDisplacement returns the horizontal shift that brings the first
// overhanging column of the rotated buffer back inside the walls.
func (g *Game) wallDisplacement(rotated *[TetrominoSize][TetrominoSize]Cell) int {
	x, size, width := g.falling.X, g.falling.Size, g.board.Width()

	switch {
	case x < 0:
		for i := 0; i < -x; i++ {
			if columnFilled(rotated, i, size) {
				return i - x
			}
		}
	case x > width-size:
		for i := size - 1; i >= width-x; i-- {
			if columnFilled(rotated, i, size) {
				return width - 1 - x - i
			}
		}
	}
	return 0
}

func columnFilled(cells *[TetrominoSize][TetrominoSize]Cell, i, size int) bool {
	for j := 0; j < size; j++ {
		if !cells[i][j].IsEmpty() {
			return true
		}
	}
	return false
}
