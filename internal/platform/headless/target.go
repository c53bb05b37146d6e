package headless

import (
	"context"
	"fmt"

	"github.com/vovakirdan/stc/internal/engine"
	"github.com/vovakirdan/stc/internal/registry"
)

// TargetID is the registry ID of the headless target.
const TargetID = "headless"

// DefaultMaxFrames bounds a headless session: one simulated hour at 60 fps.
const DefaultMaxFrames = 60 * 60 * 60

func init() {
	registry.Register(TargetID, func() registry.Target { return &Target{} })
}

// Target runs a session on a Platform as fast as possible. Without a script
// the pieces just fall until the stack tops out.
type Target struct {
	Script    []Frame // input keyed by frame index; Time is ignored
	MaxFrames int     // 0 means DefaultMaxFrames
}

// ID implements registry.Target.
func (t *Target) ID() string { return TargetID }

// Title implements registry.Target.
func (t *Target) Title() string { return "Headless simulation" }

// Run implements registry.Target. The clock advances by one frame period
// per Update; the session stops at game over, on any error code, when ctx
// is done, or after MaxFrames.
func (t *Target) Run(ctx context.Context, game *engine.Game, opts registry.Options) (registry.Result, error) {
	logger := opts.Log().WithPrefix(TargetID)

	p := New(opts.Runtime.Seed)
	if opts.Recorder != nil {
		p.SetRecorder(opts.Recorder)
	}
	if code := game.Init(p); code != engine.ErrNone {
		return registry.Result{Code: code}, fmt.Errorf("headless: init: %w", code)
	}
	defer game.End()

	period := framePeriod(opts.Runtime.TickRate)
	limit := t.MaxFrames
	if limit <= 0 {
		limit = DefaultMaxFrames
	}
	logger.Debug("session started", "seed", p.Seed(), "period_ms", period, "max_frames", limit)

	frame := 0
	for ; frame < limit; frame++ {
		if err := ctx.Err(); err != nil {
			return result(game, frame), err
		}

		f := Frame{Time: p.Now() + period}
		if frame < len(t.Script) {
			f.Start, f.End = t.Script[frame].Start, t.Script[frame].End
		}
		p.Step(game, f)

		if game.ErrorCode() != engine.ErrNone || game.IsOver() {
			frame++
			break
		}
	}

	res := result(game, frame)
	logger.Debug("session finished", "frames", res.Frames, "code", res.Code, "score", res.Snapshot.Score)
	return res, nil
}

func result(game *engine.Game, frames int) registry.Result {
	return registry.Result{
		Code:     game.ErrorCode(),
		Frames:   frames,
		Snapshot: game.Snapshot(),
	}
}

// framePeriod converts a tick rate to whole milliseconds per frame.
func framePeriod(tickRate int) int64 {
	if tickRate <= 0 {
		tickRate = 60
	}
	return max(int64(1000/tickRate), 1)
}
