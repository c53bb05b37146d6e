package engine

import "strings"

// Snapshot captures the observable game state for determinism checks and
// replay verification. Two snapshots compare equal with ==.
type Snapshot struct {
	State        State
	Score        int64
	Lines        int
	Level        int
	TotalPieces  int
	Pieces       [ShapeCount]int // placed pieces per shape
	FallingType  Shape
	FallingX     int
	FallingY     int
	NextType     Shape
	ShadowGap    int
	FallingDelay int
	Board        string // one line per row, '.' for empty tiles
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		State:        g.State(),
		Score:        g.stats.Score,
		Lines:        g.stats.Lines,
		Level:        g.stats.Level,
		TotalPieces:  g.stats.TotalPieces,
		Pieces:       g.stats.Pieces,
		FallingType:  g.falling.Type,
		FallingX:     g.falling.X,
		FallingY:     g.falling.Y,
		NextType:     g.next.Type,
		ShadowGap:    g.shadowGap,
		FallingDelay: g.fallingDelay,
		Board:        g.board.String(),
	}
}

// String renders the locked tiles, top row first.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for y, row := range b.rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			if c.IsEmpty() {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(byte('0' + c))
			}
		}
	}
	return sb.String()
}
