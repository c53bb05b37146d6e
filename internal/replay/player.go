package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/stc/internal/engine"
	"github.com/vovakirdan/stc/internal/platform/headless"
)

// ErrMismatch is returned by Verify when a replay diverges from the
// recorded outcome.
var ErrMismatch = errors.New("replay: outcome differs from the recording")

// Play re-runs a journal on a fresh headless platform and returns the final
// engine snapshot and error code.
func Play(j Journal) (engine.Snapshot, engine.ErrorCode, error) {
	if err := j.Config.Validate(); err != nil {
		return engine.Snapshot{}, engine.ErrNone, fmt.Errorf("replay: %w", err)
	}

	game := engine.New(j.Config)
	p := headless.New(j.Seed)
	if code := game.Init(p); code != engine.ErrNone {
		return engine.Snapshot{}, code, fmt.Errorf("replay: init: %w", code)
	}
	defer game.End()

	for _, f := range j.Frames {
		p.Step(game, f)
	}
	return game.Snapshot(), game.ErrorCode(), nil
}

// Verify replays j and compares the outcome with j.Final.
func Verify(j Journal) (Summary, error) {
	snap, code, err := Play(j)
	if err != nil {
		return Summary{}, err
	}
	got := Summarize(code, snap)
	if got != j.Final {
		return got, fmt.Errorf("%w: score %d lines %d, recorded score %d lines %d",
			ErrMismatch, got.Score, got.Lines, j.Final.Score, j.Final.Lines)
	}
	return got, nil
}
