package engine

// Platform is everything the engine needs from its host: a clock, a random
// source, and hooks to read input and draw. Implementations live under
// internal/platform.
type Platform interface {
	// Init prepares host resources. Any code other than ErrNone aborts the
	// game start and is surfaced through Game.ErrorCode.
	Init(g *Game) ErrorCode

	// End releases host resources.
	End()

	// ProcessEvents is called at the start of every Update. The host
	// translates raw input into OnEventStart/OnEventEnd calls.
	ProcessEvents(g *Game)

	// RenderGame is called at the end of every Update. The host inspects
	// HasChanged/HasMoved and the accessors, then acknowledges with
	// OnChangeProcessed/OnMoveProcessed.
	RenderGame(g *Game)

	// SystemTime returns a millisecond clock. Only differences are used.
	SystemTime() int64

	// Random returns a non-negative pseudo-random integer.
	Random() int
}
