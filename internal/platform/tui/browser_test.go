package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/stc/internal/engine"
	"github.com/vovakirdan/stc/internal/platform/headless"
	"github.com/vovakirdan/stc/internal/replay"
	"github.com/vovakirdan/stc/internal/storage"
)

func openBrowserStore(t *testing.T, scores ...int64) (*storage.Store, []int64) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ids := make([]int64, 0, len(scores))
	for _, score := range scores {
		id, err := store.SaveReplay(replay.Journal{
			Target: headless.TargetID,
			Seed:   score,
			Config: engine.DefaultConfig(),
			Frames: []headless.Frame{{Time: 16}},
			Final:  replay.Summary{Code: engine.ErrPlayerQuits, Score: score},
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return store, ids
}

func sendBrowser(m BrowserModel, msg tea.Msg) (BrowserModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(BrowserModel), cmd
}

func TestBrowserListsReplays(t *testing.T) {
	store, _ := openBrowserStore(t, 100, 200)
	m := NewBrowserModel(store, 10, 100, 30)

	view := m.View()
	assert.Contains(t, view, "REPLAYS (2)")
	assert.Contains(t, view, "200")
	assert.Contains(t, view, "quit")
}

func TestBrowserEmpty(t *testing.T) {
	store, _ := openBrowserStore(t)
	m := NewBrowserModel(store, 10, 100, 30)

	assert.Contains(t, m.View(), "No replays recorded yet")

	m, cmd := sendBrowser(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Zero(t, m.Selected())
}

func TestBrowserSelect(t *testing.T) {
	store, ids := openBrowserStore(t, 100, 200)
	m := NewBrowserModel(store, 10, 100, 30)

	// Newest first, so one step down is the first saved replay.
	m, _ = sendBrowser(m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := sendBrowser(m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, ids[0], m.Selected())
	assert.Empty(t, m.View())
}

func TestBrowserDelete(t *testing.T) {
	store, ids := openBrowserStore(t, 100, 200)
	m := NewBrowserModel(store, 10, 100, 30)

	m, _ = sendBrowser(m, runeKey('x'))
	assert.Contains(t, m.View(), "REPLAYS (1)")

	_, err := store.Replay(ids[1])
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.Replay(ids[0])
	assert.NoError(t, err)
}

func TestBrowserDeleteLastRowMovesCursorUp(t *testing.T) {
	store, ids := openBrowserStore(t, 100, 200)
	m := NewBrowserModel(store, 10, 100, 30)

	m, _ = sendBrowser(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = sendBrowser(m, runeKey('x'))
	m, cmd := sendBrowser(m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, ids[1], m.Selected())
}

func TestBrowserQuit(t *testing.T) {
	store, _ := openBrowserStore(t, 100)
	m := NewBrowserModel(store, 10, 100, 30)

	m, cmd := sendBrowser(m, runeKey('q'))
	require.NotNil(t, cmd)
	assert.Zero(t, m.Selected())
	assert.Empty(t, m.View())
}
