package engine

// Cell is the content of one board tile or one tetromino buffer slot.
type Cell int8

// Cell values. Empty is -1, so buffers must be cleared with Empty before use.
const (
	Empty  Cell = -1
	White  Cell = 0 // decorative only, never placed by the engine
	Cyan   Cell = 1
	Red    Cell = 2
	Blue   Cell = 3
	Orange Cell = 4
	Green  Cell = 5
	Yellow Cell = 6
	Purple Cell = 7
)

// IsEmpty reports whether the cell holds no block.
func (c Cell) IsEmpty() bool {
	return c == Empty
}

// String returns the color name of the cell.
func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case White:
		return "white"
	case Cyan:
		return "cyan"
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Orange:
		return "orange"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Purple:
		return "purple"
	default:
		return "unknown"
	}
}
