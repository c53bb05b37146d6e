package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCollisionEmptyBoard(t *testing.T) {
	g, _ := newTestGame(t)

	for s := ShapeI; s <= ShapeL; s++ {
		for x := -4; x <= g.Width()+1; x++ {
			for y := 0; y <= g.Height()+1; y++ {
				g.falling = NewTetromino(s)
				g.falling.X, g.falling.Y = x, y

				inBounds := true
				g.falling.Blocks(func(i, j int, _ Cell) bool {
					if !g.board.Contains(x+i, y+j) {
						inBounds = false
					}
					return inBounds
				})

				assert.Equal(t, !inBounds, g.CheckCollision(0, 0), "shape %s at (%d,%d)", s, x, y)
			}
		}
	}
}

func TestCheckCollisionWithLockedBlock(t *testing.T) {
	g, _ := newTestGame(t)
	g.falling = NewTetromino(ShapeO)
	g.falling.X, g.falling.Y = 4, 10
	g.board.Set(4, 12, Red)

	assert.False(t, g.CheckCollision(0, 0))
	assert.True(t, g.CheckCollision(0, 1))
	assert.False(t, g.CheckCollision(-1, 0))
}

func TestCheckCollisionAboveTop(t *testing.T) {
	g, _ := newTestGame(t)
	g.falling = NewTetromino(ShapeO)
	g.falling.X, g.falling.Y = 4, -2
	g.board.Set(4, 0, Red)

	assert.Equal(t, Empty, g.board.At(4, -1))
	assert.False(t, g.CheckCollision(0, 0), "rows above the board are open")
	assert.True(t, g.CheckCollision(0, 1))
	assert.True(t, g.CheckCollision(-5, 0), "columns left of the board are solid")
}

func TestIPieceLocksOnFloorAndPromotesNext(t *testing.T) {
	g, _ := newTestGame(t, int(ShapeI), int(ShapeT), int(ShapeJ))

	for !g.CheckCollision(0, 1) {
		g.MoveTetromino(0, 1)
	}
	require.Equal(t, 20, g.Falling().Y)
	assert.Zero(t, g.ShadowGap())

	g.MoveTetromino(0, 1)

	for x := 3; x <= 6; x++ {
		assert.Equal(t, Cyan, g.Cell(x, 21))
	}
	assert.Equal(t, 4, g.board.Filled())

	stats := g.Stats()
	assert.Equal(t, 1, stats.TotalPieces)
	assert.Equal(t, 1, stats.Pieces[ShapeI])

	falling := g.Falling()
	assert.Equal(t, ShapeT, falling.Type)
	assert.Equal(t, 3, falling.X)
	assert.Equal(t, 0, falling.Y)
	assert.Equal(t, NewTetromino(ShapeT).Cells, falling.Cells)
	assert.Equal(t, ShapeJ, g.Next().Type)
	assert.False(t, g.IsOver())
}

func TestSideMovesStopAtWalls(t *testing.T) {
	g, _ := newTestGame(t, int(ShapeO))

	for i := 0; i < 10; i++ {
		g.MoveTetromino(-1, 0)
	}
	assert.Equal(t, 0, g.Falling().X)

	for i := 0; i < 10; i++ {
		g.MoveTetromino(1, 0)
	}
	assert.Equal(t, 8, g.Falling().X)
	assert.Equal(t, 0, g.board.Filled(), "sideways collisions never lock")
}

func TestSingleRowClear(t *testing.T) {
	g, _ := newTestGame(t, int(ShapeI))

	fillRow(g.board, 21, Red, 9)
	g.RotateTetromino(true) // vertical, blocks in buffer column 2
	g.falling.X = 7
	require.False(t, g.CheckCollision(0, 0))

	for !g.CheckCollision(0, 1) {
		g.MoveTetromino(0, 1)
	}
	require.Equal(t, 18, g.Falling().Y)
	g.MoveTetromino(0, 1)

	stats := g.Stats()
	assert.Equal(t, 1, stats.Lines)
	assert.Equal(t, int64(400), stats.Score)
	assert.Equal(t, 3, g.board.Filled())
	for y := 19; y <= 21; y++ {
		assert.Equal(t, Cyan, g.Cell(9, y))
	}
	assert.True(t, g.Cell(0, 21).IsEmpty())
}

func TestHardDrop(t *testing.T) {
	tests := []struct {
		name   string
		shadow bool
		score  int64
	}{
		{"with shadow", true, 10},
		{"without shadow", false, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(t, int(ShapeI))
			g.showShadow = tt.shadow

			g.dropTetromino()

			assert.Equal(t, tt.score, g.Stats().Score)
			assert.Equal(t, 1, g.Stats().TotalPieces)
			assert.Equal(t, Cyan, g.Cell(3, 21))
			assert.Equal(t, 0, g.Falling().Y)
		})
	}
}

func TestGameOverBlocksUntilRestart(t *testing.T) {
	g, p := newTestGame(t, int(ShapeI))
	g.falling.Y = 1
	g.board.Set(3, 3, Red)

	g.MoveTetromino(0, 1)
	require.True(t, g.IsOver())
	assert.Equal(t, StateGameOver, g.State())

	x := g.Falling().X
	step(g, p, 50, press(EventMoveLeft|EventDrop))
	step(g, p, 5000, nil)
	assert.Equal(t, x, g.Falling().X)
	assert.Equal(t, 1, g.Falling().Y)
	assert.True(t, g.IsOver())

	step(g, p, 6000, press(EventRestart))
	assert.False(t, g.IsOver())
	assert.Zero(t, g.board.Filled())
	assert.Equal(t, 0, g.Falling().Y)
	assert.Equal(t, Stats{}, g.Stats())
}

func TestBlockedDownStepNearTop(t *testing.T) {
	tests := []struct {
		name   string
		y      int
		isOver bool
	}{
		{"row 1 tops out", 1, true},
		{"row 2 locks", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(t, int(ShapeO))
			g.falling.Y = tt.y
			g.board.Set(4, tt.y+2, Red)
			require.True(t, g.CheckCollision(0, 1))

			g.MoveTetromino(0, 1)

			assert.Equal(t, tt.isOver, g.IsOver())
			if tt.isOver {
				assert.Zero(t, g.Stats().TotalPieces)
				return
			}
			assert.Equal(t, 1, g.Stats().TotalPieces)
			for _, c := range [][2]int{{4, 2}, {5, 2}, {4, 3}, {5, 3}} {
				assert.Equal(t, Yellow, g.Cell(c[0], c[1]))
			}
			assert.Equal(t, 0, g.Falling().Y)
		})
	}
}

func TestSpawnOnFullStackEndsGame(t *testing.T) {
	g, _ := newTestGame(t, int(ShapeO))
	for y := 2; y < g.Height(); y++ {
		g.board.Set(4, y, Red)
	}

	g.MoveTetromino(0, 1)
	assert.True(t, g.IsOver())
	assert.Zero(t, g.Stats().TotalPieces)
}
