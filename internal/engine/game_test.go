package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlatform is a scriptable Platform for engine tests.
type fakePlatform struct {
	now      int64
	rolls    []int
	rolled   int
	initCode ErrorCode
	input    func(g *Game) // consumed by the next ProcessEvents
	renders  int
	ended    bool
}

func (p *fakePlatform) Init(*Game) ErrorCode { return p.initCode }
func (p *fakePlatform) End()                 { p.ended = true }
func (p *fakePlatform) SystemTime() int64    { return p.now }

func (p *fakePlatform) ProcessEvents(g *Game) {
	if p.input != nil {
		p.input(g)
		p.input = nil
	}
}

func (p *fakePlatform) RenderGame(g *Game) {
	p.renders++
	g.OnChangeProcessed()
	g.OnMoveProcessed()
}

func (p *fakePlatform) Random() int {
	if len(p.rolls) == 0 {
		return 0
	}
	r := p.rolls[p.rolled%len(p.rolls)]
	p.rolled++
	return r
}

// newTestGame starts a default game whose pieces follow rolls.
func newTestGame(t *testing.T, rolls ...int) (*Game, *fakePlatform) {
	t.Helper()
	p := &fakePlatform{rolls: rolls}
	g := New(DefaultConfig())
	require.Equal(t, ErrNone, g.Init(p))
	return g, p
}

// step runs one Update at time now, delivering input first.
func step(g *Game, p *fakePlatform, now int64, input func(g *Game)) {
	p.now = now
	p.input = input
	g.Update()
}

func press(events Event) func(g *Game) {
	return func(g *Game) { g.OnEventStart(events) }
}

func TestInitNilPlatform(t *testing.T) {
	g := New(DefaultConfig())
	assert.Equal(t, ErrNoMemory, g.Init(nil))
	assert.Equal(t, ErrNoMemory, g.ErrorCode())
}

func TestInitPlatformFailureBlocksStart(t *testing.T) {
	p := &fakePlatform{initCode: ErrNoVideo}
	g := New(DefaultConfig())

	assert.Equal(t, ErrNoVideo, g.Init(p))
	assert.Equal(t, ErrNoVideo, g.ErrorCode())
	assert.True(t, g.ErrorCode().IsFailure())
	assert.Zero(t, g.Falling().Size, "no piece should be spawned")
}

func TestNewFallsBackOnInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BoardWidth = 2

	g := New(cfg)
	assert.Equal(t, 10, g.Width())
	assert.Equal(t, 22, g.Height())
}

func TestStart(t *testing.T) {
	g, _ := newTestGame(t, int(ShapeI), int(ShapeT))

	falling := g.Falling()
	assert.Equal(t, ShapeI, falling.Type)
	assert.Equal(t, 3, falling.X)
	assert.Equal(t, 0, falling.Y)
	assert.Equal(t, ShapeT, g.Next().Type)

	assert.Equal(t, StatePlaying, g.State())
	assert.True(t, g.ShowPreview())
	assert.True(t, g.ShowShadow())
	assert.True(t, g.HasChanged())
	assert.True(t, g.HasMoved())
	assert.Equal(t, 20, g.ShadowGap(), "horizontal I sits on buffer row 1")
	assert.Equal(t, 1000, g.FallingDelay())
	assert.Equal(t, Stats{}, g.Stats())
	assert.Zero(t, g.board.Filled())
}

func TestNegativeRandomIsFolded(t *testing.T) {
	g, _ := newTestGame(t, -2)
	assert.Equal(t, ShapeT, g.Falling().Type)
}

func TestEndReleasesPlatform(t *testing.T) {
	g, p := newTestGame(t)
	g.End()
	assert.True(t, p.ended)
}

func TestRenderAcknowledgesFlags(t *testing.T) {
	g, p := newTestGame(t)
	step(g, p, 10, nil)

	assert.Equal(t, 1, p.renders)
	assert.False(t, g.HasChanged())
	assert.False(t, g.HasMoved())
}
