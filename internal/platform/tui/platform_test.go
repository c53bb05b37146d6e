package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/stc/internal/core"
	"github.com/vovakirdan/stc/internal/engine"
)

type recordedFrame struct {
	now        int64
	start, end engine.Event
}

type frameLog struct {
	frames []recordedFrame
}

func (l *frameLog) Record(now int64, start, end engine.Event) {
	l.frames = append(l.frames, recordedFrame{now, start, end})
}

var testEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T) (Model, *engine.Game, *Platform, *frameLog) {
	t.Helper()

	p := NewPlatform(core.RuntimeConfig{Seed: 7}, nil)
	p.clock = func() time.Time { return testEpoch }
	log := &frameLog{}
	p.SetRecorder(log)

	g := engine.New(engine.DefaultConfig())
	require.Equal(t, engine.ErrNone, g.Init(p))
	return NewModel(g, p, 60), g, p, log
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func tickAt(m Model, ms int64) (Model, tea.Cmd) {
	return send(m, TickMsg(testEpoch.Add(time.Duration(ms)*time.Millisecond)))
}

func TestPlatformInitTooSmall(t *testing.T) {
	p := NewPlatform(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1}, nil)
	g := engine.New(engine.DefaultConfig())

	assert.Equal(t, engine.ErrNoVideo, g.Init(p))
	assert.Equal(t, engine.ErrNoVideo, g.ErrorCode())
}

func TestPlatformClock(t *testing.T) {
	_, _, p, _ := newTestSession(t)

	assert.Equal(t, int64(0), p.SystemTime())

	p.Sample(testEpoch.Add(250 * time.Millisecond))
	assert.Equal(t, int64(250), p.SystemTime())

	p.Sample(testEpoch.Add(100 * time.Millisecond))
	assert.Equal(t, int64(250), p.SystemTime(), "clock must not go backwards")
}

func TestPlatformRandomIsSeeded(t *testing.T) {
	a := NewPlatform(core.RuntimeConfig{Seed: 99}, nil)
	b := NewPlatform(core.RuntimeConfig{Seed: 99}, nil)

	assert.Equal(t, int64(99), a.Seed())
	for range 10 {
		assert.Equal(t, a.Random(), b.Random())
	}
}

func TestModelKeyPressIsReleasedNextTick(t *testing.T) {
	m, g, _, log := newTestSession(t)
	x := g.Falling().X

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = tickAt(m, 16)
	assert.Equal(t, x-1, g.Falling().X)

	_, _ = tickAt(m, 33)
	assert.Equal(t, x-1, g.Falling().X)

	require.Len(t, log.frames, 2)
	assert.Equal(t, recordedFrame{16, engine.EventMoveLeft, engine.EventNone}, log.frames[0])
	assert.Equal(t, recordedFrame{33, engine.EventNone, engine.EventMoveLeft}, log.frames[1])
}

func TestModelRepeatedKeyStaysHeld(t *testing.T) {
	m, g, _, log := newTestSession(t)
	x := g.Falling().X

	m, _ = send(m, runeKey('a'))
	m, _ = tickAt(m, 16)
	m, _ = send(m, runeKey('a'))
	_, _ = tickAt(m, 33)

	assert.Equal(t, x-2, g.Falling().X)
	require.Len(t, log.frames, 2)
	assert.Equal(t, engine.EventNone, log.frames[1].end)
}

func TestModelQuit(t *testing.T) {
	m, g, _, _ := newTestSession(t)

	m, cmd := send(m, runeKey('q'))
	assert.Nil(t, cmd, "quit is delivered on the next tick")

	m, cmd = tickAt(m, 16)
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
	assert.Equal(t, engine.ErrPlayerQuits, g.ErrorCode())
	assert.Empty(t, m.View())
}

func TestModelTickKeepsRunning(t *testing.T) {
	m, g, _, _ := newTestSession(t)

	_, cmd := tickAt(m, 16)
	assert.NotNil(t, cmd)
	assert.Equal(t, engine.ErrNone, g.ErrorCode())
}

func TestModelRendersGame(t *testing.T) {
	m, _, p, _ := newTestSession(t)

	m, _ = tickAt(m, 16)
	screen := p.Screen().String()
	assert.Contains(t, screen, "NEXT")
	assert.Contains(t, screen, "SCORE")
	assert.Contains(t, screen, blockTile)
	assert.Contains(t, screen, ghostTile)
	assert.NotContains(t, screen, "PAUSED")

	m, _ = send(m, runeKey('p'))
	_, _ = tickAt(m, 33)
	assert.Contains(t, p.Screen().String(), "PAUSED")
}

func TestModelTogglesGhost(t *testing.T) {
	m, g, p, _ := newTestSession(t)

	m, _ = send(m, runeKey('g'))
	_, _ = tickAt(m, 16)

	assert.False(t, g.ShowShadow())
	assert.NotContains(t, p.Screen().String(), ghostTile)
}

func TestModelViewIsCentered(t *testing.T) {
	m, _, _, _ := newTestSession(t)
	m, _ = tickAt(m, 16)

	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	view := m.View()

	assert.Equal(t, 40, lipgloss.Height(view))
	assert.Equal(t, 100, lipgloss.Width(view))
}

func TestModelViewFitsCheckedTerminal(t *testing.T) {
	p := NewPlatform(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 7}, nil)
	p.clock = func() time.Time { return testEpoch }
	g := engine.New(engine.DefaultConfig())
	require.Equal(t, engine.ErrNone, g.Init(p))

	m := NewModel(g, p, 60)
	m, _ = tickAt(m, 16)
	first := m.View()
	assert.LessOrEqual(t, lipgloss.Height(first), 24)
	assert.Contains(t, first, "┌")

	m, _ = send(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	view := m.View()
	assert.LessOrEqual(t, lipgloss.Height(view), 24)
	assert.Contains(t, view, "┌")
	assert.NotContains(t, view, "more keys")

	m, _ = send(m, tea.WindowSizeMsg{Width: 80, Height: 30})
	assert.Contains(t, m.View(), "more keys")
}

func TestModelShowsShapeCounts(t *testing.T) {
	m, g, p, _ := newTestSession(t)
	shape := g.Falling().Type

	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	_, _ = tickAt(m, 16)
	require.Equal(t, 1, g.Stats().TotalPieces)

	screen := p.Screen().String()
	for s := range engine.Shape(engine.ShapeCount) {
		n := 0
		if s == shape {
			n = 1
		}
		assert.Contains(t, screen, fmt.Sprintf("%s %10d", s, n))
	}

	panel := p.layout.Panel
	row := panel.Y + 13 + int(shape)
	assert.Equal(t, cellColors[engine.NewTetromino(shape).Color()], p.Screen().GetCell(panel.X, row).Color)
}

func TestModelHelpToggle(t *testing.T) {
	m, _, _, _ := newTestSession(t)
	m, _ = tickAt(m, 16)

	short := m.View()
	m, _ = send(m, runeKey('?'))
	full := m.View()

	assert.Greater(t, strings.Count(full, "\n"), strings.Count(short, "\n"))
}

func TestModelScreenshot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	m, _, _, _ := newTestSession(t)
	m, _ = tickAt(m, 16)
	_, cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)

	files, err := filepath.Glob(filepath.Join(home, ".stc", "screenshots", "stc_*.txt"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "SCORE")
}

func TestLayoutSize(t *testing.T) {
	l := NewLayout(10, 22)
	w, h := l.Size()

	assert.Equal(t, 1, l.Board.X)
	assert.Equal(t, 20, l.Board.W)
	assert.Equal(t, 39, w)
	assert.Equal(t, 24, h)
}
