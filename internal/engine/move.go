package engine

// CheckCollision reports whether the falling piece would overlap a wall, the
// floor or a locked block if it were offset by (dx, dy). Rows above the board
// are not checked: pieces only ever start on row 0 and move down.
func (g *Game) CheckCollision(dx, dy int) bool {
	return g.collides(&g.falling.Cells, g.falling.Size, g.falling.X+dx, g.falling.Y+dy)
}

// collides tests a cell buffer placed with its origin at (x, y).
func (g *Game) collides(cells *[TetrominoSize][TetrominoSize]Cell, size, x, y int) bool {
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if cells[i][j].IsEmpty() {
				continue
			}
			bx, by := x+i, y+j
			if bx < 0 || bx >= g.board.Width() || by >= g.board.Height() {
				return true
			}
			if by >= 0 && !g.board.At(bx, by).IsEmpty() {
				return true
			}
		}
	}
	return false
}

// MoveTetromino moves the falling piece by (dx, dy). A blocked downward step
// locks the piece, or ends the game when the piece is still on row 0 or 1.
func (g *Game) MoveTetromino(dx, dy int) {
	if !g.CheckCollision(dx, dy) {
		g.falling.X += dx
		g.falling.Y += dy
	} else if dy == 1 {
		if g.falling.Y <= 1 {
			g.isOver = true
			g.stateChanged = true
		} else {
			g.lockTetromino()
		}
	}
	g.onTetrominoMoved()
}

// lockTetromino copies the falling piece into the board, clears full rows,
// updates statistics and promotes the preview piece.
func (g *Game) lockTetromino() {
	g.falling.Blocks(func(i, j int, c Cell) bool {
		g.board.Set(g.falling.X+i, g.falling.Y+j, c)
		return true
	})

	if filled := g.board.clearFullRows(); filled > 0 {
		g.onFilledRows(filled)
	}
	g.stats.TotalPieces++
	g.stats.Pieces[g.falling.Type]++

	g.falling.Cells = g.next.Cells
	g.falling.Size = g.next.Size
	g.falling.Type = g.next.Type
	g.spawn()
	g.next = g.randomTetromino()
	g.stateChanged = true
}

// dropTetromino performs a hard drop: the piece jumps to its shadow and is
// locked immediately.
func (g *Game) dropTetromino() {
	g.falling.Y += g.shadowGap
	g.MoveTetromino(0, 1)

	divisor := g.cfg.HardDropDivisor
	if g.showShadow {
		divisor = g.cfg.HardDropShadowDivisor
	}
	g.stats.Score += int64(g.cfg.RowScores[1]) * int64(g.stats.Level+1) / int64(divisor)
}

// onTetrominoMoved recomputes the shadow gap and flags the move for the host.
func (g *Game) onTetrominoMoved() {
	y := 1
	for y <= g.board.Height() && !g.CheckCollision(0, y) {
		y++
	}
	g.shadowGap = y - 1
	g.stateMoved = true
}
