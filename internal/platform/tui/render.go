package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stc/internal/core"
	"github.com/vovakirdan/stc/internal/engine"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// cellColors maps block colors to the screen palette.
var cellColors = map[engine.Cell]core.Color{
	engine.White:  core.ColorWhite,
	engine.Cyan:   core.ColorCyan,
	engine.Red:    core.ColorRed,
	engine.Blue:   core.ColorBlue,
	engine.Orange: core.ColorOrange,
	engine.Green:  core.ColorGreen,
	engine.Yellow: core.ColorYellow,
	engine.Purple: core.ColorMagenta,
}

// Tiles are two characters wide so the playfield looks square.
const (
	tileWidth  = 2
	panelWidth = 16
	previewH   = 4
	panelMinH  = 21 // preview, stats and one row per shape
)

const (
	blockTile = "██"
	ghostTile = "░░"
	emptyTile = " ·"
)

// Layout positions the playfield and the side panel on a Screen.
type Layout struct {
	Board core.Rect // inside of the well, one row per board row
	Panel core.Rect
}

// NewLayout computes the layout for a board of cols x rows tiles.
func NewLayout(cols, rows int) Layout {
	board := core.NewRect(1, 1, cols*tileWidth, rows)
	return Layout{
		Board: board,
		Panel: core.NewRect(board.Right()+2, 0, panelWidth, max(rows+2, panelMinH)),
	}
}

// Size returns the screen size the layout needs.
func (l Layout) Size() (width, height int) {
	return l.Panel.Right(), max(l.Panel.Bottom(), l.Board.Bottom()+1)
}

// DrawGame draws the whole game state into s.
func DrawGame(s *core.Screen, g *engine.Game, l Layout) {
	s.Clear()
	s.DrawBox(l.Board.Inset(-1), core.ColorGray)

	for row := range g.Height() {
		for col := range g.Width() {
			c := g.Cell(col, row)
			if c.IsEmpty() {
				drawTile(s, l.Board, col, row, emptyTile, core.ColorDim)
				continue
			}
			drawTile(s, l.Board, col, row, blockTile, cellColors[c])
		}
	}

	if !g.IsOver() {
		falling := g.Falling()
		if g.ShowShadow() && g.ShadowGap() > 0 {
			drawTetromino(s, l.Board, falling, falling.X, falling.Y+g.ShadowGap(), ghostTile, core.ColorDim)
		}
		drawTetromino(s, l.Board, falling, falling.X, falling.Y, blockTile, cellColors[falling.Color()])
	}

	drawPanel(s, g, l.Panel)

	switch {
	case g.IsOver():
		drawOverlay(s, l.Board, "GAME OVER", "r to restart")
	case g.IsPaused():
		drawOverlay(s, l.Board, "PAUSED", "p to resume")
	}
}

func drawTile(s *core.Screen, board core.Rect, col, row int, tile string, c core.Color) {
	if row < 0 {
		return
	}
	s.DrawTextColor(board.X+col*tileWidth, board.Y+row, tile, c)
}

// drawTetromino draws t with its buffer origin at column x, row y.
func drawTetromino(s *core.Screen, area core.Rect, t engine.Tetromino, x, y int, tile string, c core.Color) {
	t.Blocks(func(i, j int, _ engine.Cell) bool {
		drawTile(s, area, x+i, y+j, tile, c)
		return true
	})
}

func drawPanel(s *core.Screen, g *engine.Game, panel core.Rect) {
	x := panel.X
	y := panel.Y + 1

	s.DrawTextColor(x, y, "NEXT", core.ColorGray)
	preview := core.NewRect(x, y+1, engine.TetrominoSize*tileWidth, previewH)
	if g.ShowPreview() {
		next := g.Next()
		drawTetromino(s, preview, next, 0, 0, blockTile, cellColors[next.Color()])
	} else {
		s.DrawTextColor(x, preview.Y+1, "hidden", core.ColorDim)
	}
	y = preview.Bottom() + 1

	stats := g.Stats()
	for _, line := range []struct {
		label string
		value string
	}{
		{"SCORE", fmt.Sprint(stats.Score)},
		{"LINES", fmt.Sprint(stats.Lines)},
		{"LEVEL", fmt.Sprint(stats.Level)},
		{"SPEED", fmt.Sprintf("%dms", g.FallingDelay())},
		{"PIECES", fmt.Sprint(stats.TotalPieces)},
	} {
		s.DrawTextColor(x, y, line.label, core.ColorGray)
		s.DrawTextColor(x+7, y, fmt.Sprintf("%9s", line.value), core.ColorWhite)
		y++
	}
	y++

	for shape := range engine.Shape(engine.ShapeCount) {
		s.DrawTextColor(x, y, blockTile, cellColors[engine.NewTetromino(shape).Color()])
		s.DrawTextColor(x+3, y, fmt.Sprintf("%s %10d", shape, stats.Pieces[shape]), core.ColorWhite)
		y++
	}
}

func drawOverlay(s *core.Screen, board core.Rect, title, hint string) {
	mid := board.Y + board.H/2
	s.DrawRect(core.NewRect(board.X, mid-1, board.W, 4), ' ', core.ColorDefault)
	s.DrawTextCentered(board, mid, title, core.ColorYellow)
	s.DrawTextCentered(board, mid+1, hint, core.ColorGray)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
