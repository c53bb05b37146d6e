// Package headless provides a deterministic engine.Platform with no display:
// the clock only moves when told to, pieces come from a seeded RNG and input
// is queued by the caller. Tests, benchmarks and replays run on it.
package headless

import (
	"math/rand"

	"github.com/vovakirdan/stc/internal/core"
	"github.com/vovakirdan/stc/internal/engine"
	"github.com/vovakirdan/stc/internal/registry"
)

// Frame is the input delivered to the engine on one Update.
type Frame struct {
	Time  int64        // clock value in milliseconds
	Start engine.Event // pressed keys, OR-combined
	End   engine.Event // released keys, OR-combined
}

// Platform implements engine.Platform.
type Platform struct {
	now  int64
	rng  *rand.Rand
	seed int64

	start engine.Event
	end   engine.Event

	initCode engine.ErrorCode
	recorder registry.Recorder

	frames  int
	changes int
	ended   bool
}

// New creates a platform whose piece sequence is fixed by seed.
// Seed 0 picks one from the clock; Seed reports the effective value.
func New(seed int64) *Platform {
	rng, seed := core.NewRand(seed)
	return &Platform{rng: rng, seed: seed}
}

// Seed returns the effective RNG seed.
func (p *Platform) Seed() int64 { return p.seed }

// FailInit makes the next Init return code.
func (p *Platform) FailInit(code engine.ErrorCode) { p.initCode = code }

// SetRecorder forwards every delivered frame to r.
func (p *Platform) SetRecorder(r registry.Recorder) { p.recorder = r }

// Now returns the current clock value.
func (p *Platform) Now() int64 { return p.now }

// SetTime moves the clock to t milliseconds.
func (p *Platform) SetTime(t int64) { p.now = t }

// Advance moves the clock forward by ms milliseconds.
func (p *Platform) Advance(ms int64) { p.now += ms }

// Press queues key presses for the next Update.
func (p *Platform) Press(e engine.Event) { p.start |= e }

// Release queues key releases for the next Update.
func (p *Platform) Release(e engine.Event) { p.end |= e }

// Frames returns how many times the engine asked for a redraw.
func (p *Platform) Frames() int { return p.frames }

// Changes returns how many redraws found HasChanged set.
func (p *Platform) Changes() int { return p.changes }

// Ended reports whether End was called.
func (p *Platform) Ended() bool { return p.ended }

// Step plays one frame: moves the clock to f.Time, queues its input and
// runs a single Update.
func (p *Platform) Step(g *engine.Game, f Frame) {
	p.now = f.Time
	p.Press(f.Start)
	p.Release(f.End)
	g.Update()
}

// Init implements engine.Platform.
func (p *Platform) Init(*engine.Game) engine.ErrorCode {
	code := p.initCode
	p.initCode = engine.ErrNone
	return code
}

// End implements engine.Platform.
func (p *Platform) End() { p.ended = true }

// ProcessEvents delivers queued presses, then queued releases.
func (p *Platform) ProcessEvents(g *engine.Game) {
	start, end := p.start, p.end
	p.start, p.end = engine.EventNone, engine.EventNone

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

// RenderGame counts frames and acknowledges the change flags.
func (p *Platform) RenderGame(g *engine.Game) {
	p.frames++
	if g.HasChanged() {
		p.changes++
		g.OnChangeProcessed()
	}
	g.OnMoveProcessed()
}

// SystemTime implements engine.Platform.
func (p *Platform) SystemTime() int64 { return p.now }

// Random implements engine.Platform.
func (p *Platform) Random() int { return p.rng.Int() }
