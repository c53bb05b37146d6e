package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stc/internal/engine"
	"github.com/vovakirdan/stc/internal/registry"
)

// TargetID is the registry ID of the terminal target.
const TargetID = "terminal"

func init() {
	registry.Register(TargetID, func() registry.Target { return &Target{} })
}

// Target plays a session interactively in the terminal.
type Target struct {
	// ProgramOptions are appended to the defaults (alt screen, context).
	ProgramOptions []tea.ProgramOption
}

// ID implements registry.Target.
func (t *Target) ID() string { return TargetID }

// Title implements registry.Target.
func (t *Target) Title() string { return "Terminal (Bubble Tea)" }

// Run implements registry.Target. The session lasts until the player quits
// or ctx is done; game over waits for a restart or quit.
func (t *Target) Run(ctx context.Context, game *engine.Game, opts registry.Options) (registry.Result, error) {
	logger := opts.Log().WithPrefix(TargetID)

	p := NewPlatform(opts.Runtime, logger)
	if opts.Recorder != nil {
		p.SetRecorder(opts.Recorder)
	}
	if code := game.Init(p); code != engine.ErrNone {
		return registry.Result{Code: code}, fmt.Errorf("terminal: init: %w", code)
	}
	defer game.End()

	programOpts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}, t.ProgramOptions...)

	prog := tea.NewProgram(NewModel(game, p, opts.Runtime.TickRate), programOpts...)
	_, err := prog.Run()

	res := registry.Result{
		Code:     game.ErrorCode(),
		Frames:   p.Frames(),
		Snapshot: game.Snapshot(),
	}
	logger.Debug("session finished", "frames", res.Frames, "code", res.Code, "score", res.Snapshot.Score)
	if err != nil {
		return res, fmt.Errorf("terminal: %w", err)
	}
	return res, nil
}
