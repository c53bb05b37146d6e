package core

// Color is a foreground color of a screen cell. The terminal renderer maps
// each value to an ANSI 256-color code.
type Color uint8

// Palette used by the playfield, the side panel and overlays.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorDim // ghost piece and empty tiles
)
