// Package replay records the input of a session so it can be re-run on the
// headless platform. The engine is deterministic given its rules, the piece
// seed, and the time and input of every frame, which is all a Journal holds.
package replay

import (
	"time"

	"github.com/vovakirdan/stc/internal/engine"
	"github.com/vovakirdan/stc/internal/platform/headless"
)

// Journal is a recorded session.
type Journal struct {
	ID        int64 // assigned by storage
	Target    string
	Seed      int64
	Config    engine.Config
	Frames    []headless.Frame
	Final     Summary
	CreatedAt time.Time
}

// Summary is the outcome of a session, kept alongside the journal so a
// replay can be checked against it.
type Summary struct {
	Code        engine.ErrorCode
	State       engine.State
	Score       int64
	Lines       int
	Level       int
	TotalPieces int
	Pieces      [engine.ShapeCount]int
	Board       string
}

// Summarize extracts the comparable outcome of a session.
func Summarize(code engine.ErrorCode, s engine.Snapshot) Summary {
	return Summary{
		Code:        code,
		State:       s.State,
		Score:       s.Score,
		Lines:       s.Lines,
		Level:       s.Level,
		TotalPieces: s.TotalPieces,
		Pieces:      s.Pieces,
		Board:       s.Board,
	}
}

// Duration is the simulated time covered by the journal.
func (j Journal) Duration() time.Duration {
	if len(j.Frames) == 0 {
		return 0
	}
	return time.Duration(j.Frames[len(j.Frames)-1].Time) * time.Millisecond
}

// Inputs counts the frames that carry at least one press or release.
func (j Journal) Inputs() int {
	n := 0
	for _, f := range j.Frames {
		if f.Start != engine.EventNone || f.End != engine.EventNone {
			n++
		}
	}
	return n
}
