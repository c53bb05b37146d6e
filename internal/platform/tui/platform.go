package tui

import (
	"cmp"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stc/internal/core"
	"github.com/vovakirdan/stc/internal/engine"
	"github.com/vovakirdan/stc/internal/registry"
)

// Platform implements engine.Platform for a terminal. The clock counts
// milliseconds since Init and only moves when a tick is sampled, so every
// Update of a frame sees one consistent time.
type Platform struct {
	rng   *rand.Rand
	seed  int64
	clock func() time.Time
	epoch time.Time
	now   int64

	// A terminal reports presses only. A key pressed during one frame is
	// released on the next frame unless it was pressed again.
	pressed engine.Event
	held    engine.Event

	maxW, maxH int
	layout     Layout
	screen     *core.Screen

	recorder registry.Recorder
	logger   *log.Logger
	frames   int
}

// NewPlatform creates a terminal platform. ScreenW and ScreenH bound the
// layout when set; Seed fixes the piece sequence (0 picks one from the clock).
func NewPlatform(rt core.RuntimeConfig, logger *log.Logger) *Platform {
	rng, seed := core.NewRand(rt.Seed)
	if logger == nil {
		logger = registry.Options{}.Log()
	}
	return &Platform{
		rng:    rng,
		seed:   seed,
		clock:  time.Now,
		maxW:   rt.ScreenW,
		maxH:   rt.ScreenH,
		logger: logger,
	}
}

// Seed returns the effective RNG seed.
func (p *Platform) Seed() int64 { return p.seed }

// SetRecorder forwards every delivered frame to r.
func (p *Platform) SetRecorder(r registry.Recorder) { p.recorder = r }

// Screen returns the buffer RenderGame draws into.
func (p *Platform) Screen() *core.Screen { return p.screen }

// Frames returns the number of Updates rendered so far.
func (p *Platform) Frames() int { return p.frames }

// Press queues key presses for the next Update.
func (p *Platform) Press(e engine.Event) { p.pressed |= e }

// Sample moves the clock to t. The clock never goes backwards.
func (p *Platform) Sample(t time.Time) {
	if ms := t.Sub(p.epoch).Milliseconds(); ms > p.now {
		p.now = ms
	}
}

// Init implements engine.Platform. It fails with ErrNoVideo when the
// terminal is too small for the playfield.
func (p *Platform) Init(g *engine.Game) engine.ErrorCode {
	p.layout = NewLayout(g.Width(), g.Height())
	w, h := p.layout.Size()
	term := core.NewRect(0, 0, cmp.Or(p.maxW, w), cmp.Or(p.maxH, h))
	if !term.Contains(w-1, h-1) {
		p.logger.Error("terminal too small", "need", [2]int{w, h}, "have", [2]int{p.maxW, p.maxH})
		return engine.ErrNoVideo
	}
	p.screen = core.NewScreen(w, h)

	p.epoch = p.clock()
	p.now = 0
	p.pressed, p.held = engine.EventNone, engine.EventNone
	p.frames = 0
	p.logger.Debug("platform ready", "seed", p.seed, "width", w, "height", h)
	return engine.ErrNone
}

// End implements engine.Platform.
func (p *Platform) End() {
	p.logger.Debug("platform closed", "frames", p.frames)
}

// ProcessEvents delivers this frame's presses, then releases the keys that
// were held on the previous frame and not pressed again.
func (p *Platform) ProcessEvents(g *engine.Game) {
	start := p.pressed
	end := p.held &^ start
	p.held, p.pressed = start, engine.EventNone

	if start != engine.EventNone {
		g.OnEventStart(start)
	}
	for _, e := range end.Events() {
		g.OnEventEnd(e)
	}
	if p.recorder != nil {
		p.recorder.Record(p.now, start, end)
	}
}

// RenderGame redraws the screen buffer when the game changed or moved.
func (p *Platform) RenderGame(g *engine.Game) {
	p.frames++
	if g.HasChanged() || g.HasMoved() {
		DrawGame(p.screen, g, p.layout)
	}
	g.OnChangeProcessed()
	g.OnMoveProcessed()
}

// SystemTime implements engine.Platform.
func (p *Platform) SystemTime() int64 { return p.now }

// Random implements engine.Platform.
func (p *Platform) Random() int { return p.rng.Int() }
