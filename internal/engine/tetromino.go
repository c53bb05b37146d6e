package engine

// TetrominoSize is the edge of the square buffer holding any tetromino.
const TetrominoSize = 4

// ShapeCount is the number of distinct tetromino shapes.
const ShapeCount = 7

// Shape identifies one of the seven tetrominoes.
type Shape int

// Shapes, in the order used to pick them from the platform's random source.
const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
)

// String returns the single-letter name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeT:
		return "T"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	default:
		return "?"
	}
}

// Tetromino is a piece buffer plus its position on the board.
// Cells is indexed [x][y]: x grows to the right, y grows downwards.
type Tetromino struct {
	Cells [TetrominoSize][TetrominoSize]Cell
	X     int
	Y     int
	Size  int // edge of the square actually used by the shape
	Type  Shape
}

// shapeLayout describes the canonical spawn orientation of a shape.
type shapeLayout struct {
	color Cell
	size  int
	cells [4][2]int
}

// Spawn layouts, following the SRS initial orientations.
var shapeLayouts = [ShapeCount]shapeLayout{
	ShapeI: {Cyan, 4, [4][2]int{{0, 1}, {1, 1}, {2, 1}, {3, 1}}},
	ShapeO: {Yellow, 2, [4][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
	ShapeT: {Purple, 3, [4][2]int{{0, 1}, {1, 0}, {1, 1}, {2, 1}}},
	ShapeS: {Green, 3, [4][2]int{{0, 1}, {1, 0}, {1, 1}, {2, 0}}},
	ShapeZ: {Red, 3, [4][2]int{{0, 0}, {1, 0}, {1, 1}, {2, 1}}},
	ShapeJ: {Blue, 3, [4][2]int{{0, 0}, {0, 1}, {1, 1}, {2, 1}}},
	ShapeL: {Orange, 3, [4][2]int{{0, 1}, {1, 1}, {2, 0}, {2, 1}}},
}

// NewTetromino builds a shape in its spawn orientation at the origin.
// Shapes outside the known range wrap around.
func NewTetromino(shape Shape) Tetromino {
	shape = Shape((int(shape)%ShapeCount + ShapeCount) % ShapeCount)
	layout := shapeLayouts[shape]

	t := Tetromino{Size: layout.size, Type: shape}
	t.clear()
	for _, c := range layout.cells {
		t.Cells[c[0]][c[1]] = layout.color
	}
	return t
}

// clear resets every slot of the buffer to Empty.
func (t *Tetromino) clear() {
	for i := range t.Cells {
		for j := range t.Cells[i] {
			t.Cells[i][j] = Empty
		}
	}
}

// Color returns the color of the shape's blocks.
func (t Tetromino) Color() Cell {
	return shapeLayouts[t.Type].color
}

// Blocks calls fn with the buffer coordinates of every filled slot.
// Iteration stops early when fn returns false.
func (t Tetromino) Blocks(fn func(i, j int, c Cell) bool) {
	for i := 0; i < t.Size; i++ {
		for j := 0; j < t.Size; j++ {
			if t.Cells[i][j].IsEmpty() {
				continue
			}
			if !fn(i, j, t.Cells[i][j]) {
				return
			}
		}
	}
}

// rotated returns the buffer turned a quarter turn inside the used square.
func (t Tetromino) rotated(clockwise bool) [TetrominoSize][TetrominoSize]Cell {
	var out [TetrominoSize][TetrominoSize]Cell
	for i := range out {
		for j := range out[i] {
			out[i][j] = Empty
		}
	}

	n := t.Size
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if clockwise {
				out[n-1-j][i] = t.Cells[i][j]
			} else {
				out[j][n-1-i] = t.Cells[i][j]
			}
		}
	}
	return out
}
