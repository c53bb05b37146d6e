// Package engine implements the rules of a falling-block puzzle game: the
// board, the falling and preview pieces, collision, rotation with wall-kick,
// line clearing, scoring, leveling and autoshift timing.
//
// The engine is a synchronous state machine advanced by Update once per host
// frame. It has no dependencies beyond the Platform it is given.
package engine

// State is the coarse state of a session.
type State int

const (
	StatePlaying State = iota
	StatePaused
	StateGameOver
)

// String returns a lowercase name for the state.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Stats is the statistic data of the current session.
type Stats struct {
	Score       int64
	Lines       int
	TotalPieces int
	Level       int
	Pieces      [ShapeCount]int // placed pieces per shape
}

// timerInactive marks an autoshift timer as disarmed.
const timerInactive = -1

// Game is the engine state machine.
type Game struct {
	cfg      Config
	platform Platform

	board   *Board
	falling Tetromino
	next    Tetromino
	stats   Stats

	errorCode   ErrorCode
	isOver      bool
	isPaused    bool
	showPreview bool
	showShadow  bool
	shadowGap   int

	stateChanged bool
	stateMoved   bool

	systemTime   int64
	lastFallTime int64
	fallingDelay int

	// Pending events, consumed at the next Update.
	events Event

	// Autoshift countdowns in milliseconds, timerInactive when released.
	delayLeft     int
	delayRight    int
	delayDown     int
	delayRotation int
}

// New creates a game with the given rules. Invalid configurations fall back
// to DefaultConfig; callers that care should run Config.Validate first.
func New(cfg Config) *Game {
	if cfg.Validate() != nil {
		cfg = DefaultConfig()
	}
	return &Game{
		cfg:   cfg,
		board: NewBoard(cfg.BoardWidth, cfg.BoardHeight),
	}
}

// Init stores the platform, initializes it and starts a new session.
// The returned code is also kept in ErrorCode.
func (g *Game) Init(p Platform) ErrorCode {
	if p == nil {
		g.errorCode = ErrNoMemory
		return g.errorCode
	}
	g.platform = p
	g.errorCode = p.Init(g)
	if g.errorCode == ErrNone {
		g.Start()
	}
	return g.errorCode
}

// End releases the platform.
func (g *Game) End() {
	if g.platform != nil {
		g.platform.End()
	}
}

// Start resets every piece of session state and spawns the first pieces.
func (g *Game) Start() {
	g.errorCode = ErrNone
	g.systemTime = g.platform.SystemTime()
	g.lastFallTime = g.systemTime
	g.isOver = false
	g.isPaused = false
	g.showPreview = true
	g.showShadow = true
	g.events = EventNone
	g.fallingDelay = g.cfg.InitialFallDelay
	g.stats = Stats{}

	g.board.Clear()

	g.falling = g.randomTetromino()
	g.spawn()
	g.next = g.randomTetromino()

	g.stateChanged = true
	g.onTetrominoMoved()

	g.delayLeft = timerInactive
	g.delayRight = timerInactive
	g.delayDown = timerInactive
	g.delayRotation = timerInactive
}

// randomTetromino draws the next shape from the platform's random source.
func (g *Game) randomTetromino() Tetromino {
	r := g.platform.Random()
	if r < 0 {
		r = -r
	}
	return NewTetromino(Shape(r % ShapeCount))
}

// spawn places the falling piece horizontally centered on the top row.
func (g *Game) spawn() {
	g.falling.X = (g.cfg.BoardWidth - g.falling.Size) / 2
	g.falling.Y = 0
}

// Config returns the rules the game was built with.
func (g *Game) Config() Config { return g.cfg }

// Width returns the board width in tiles.
func (g *Game) Width() int { return g.board.Width() }

// Height returns the board height in tiles.
func (g *Game) Height() int { return g.board.Height() }

// Cell returns the board tile at (column, row).
func (g *Game) Cell(column, row int) Cell { return g.board.At(column, row) }

// Stats returns a copy of the statistic data.
func (g *Game) Stats() Stats { return g.stats }

// Falling returns a copy of the falling tetromino.
func (g *Game) Falling() Tetromino { return g.falling }

// Next returns a copy of the preview tetromino.
func (g *Game) Next() Tetromino { return g.next }

// ErrorCode returns the current error code.
func (g *Game) ErrorCode() ErrorCode { return g.errorCode }

// IsPaused reports whether the game is paused.
func (g *Game) IsPaused() bool { return g.isPaused }

// IsOver reports whether the game is over.
func (g *Game) IsOver() bool { return g.isOver }

// ShowPreview reports whether the host should draw the next piece.
func (g *Game) ShowPreview() bool { return g.showPreview }

// ShowShadow reports whether the host should draw the ghost piece.
func (g *Game) ShowShadow() bool { return g.showShadow }

// ShadowGap is the distance the falling piece can drop uninterrupted.
func (g *Game) ShadowGap() int { return g.shadowGap }

// FallingDelay is the current gravity interval in milliseconds.
func (g *Game) FallingDelay() int { return g.fallingDelay }

// HasChanged reports whether anything besides the falling piece changed
// since the host last called OnChangeProcessed.
func (g *Game) HasChanged() bool { return g.stateChanged }

// HasMoved reports whether the falling piece moved since the host last
// called OnMoveProcessed.
func (g *Game) HasMoved() bool { return g.stateMoved }

// OnChangeProcessed acknowledges HasChanged.
func (g *Game) OnChangeProcessed() { g.stateChanged = false }

// OnMoveProcessed acknowledges HasMoved.
func (g *Game) OnMoveProcessed() { g.stateMoved = false }

// State returns the coarse session state.
func (g *Game) State() State {
	switch {
	case g.isOver:
		return StateGameOver
	case g.isPaused:
		return StatePaused
	default:
		return StatePlaying
	}
}
