package replay

import (
	"time"

	"github.com/vovakirdan/stc/internal/engine"
	"github.com/vovakirdan/stc/internal/platform/headless"
	"github.com/vovakirdan/stc/internal/registry"
)

// Recorder implements registry.Recorder by appending every frame to a
// Journal. Targets must report a clock that read zero when the engine was
// initialized, as the headless platform does.
type Recorder struct {
	journal Journal
}

var _ registry.Recorder = (*Recorder)(nil)

// NewRecorder starts a journal for a session on target with the given
// rules and effective piece seed.
func NewRecorder(target string, seed int64, cfg engine.Config) *Recorder {
	return &Recorder{journal: Journal{
		Target: target,
		Seed:   seed,
		Config: cfg,
	}}
}

// Record implements registry.Recorder.
func (r *Recorder) Record(now int64, start, end engine.Event) {
	r.journal.Frames = append(r.journal.Frames, headless.Frame{
		Time:  now,
		Start: start,
		End:   end,
	})
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int { return len(r.journal.Frames) }

// Finish stores the session outcome and returns the completed journal.
func (r *Recorder) Finish(res registry.Result) Journal {
	r.journal.Final = Summarize(res.Code, res.Snapshot)
	r.journal.CreatedAt = time.Now()
	return r.journal
}
