// Package registry provides a global registry of platform targets.
// Targets register themselves in init() functions, so the CLI can list and
// start them without importing each one by name.
package registry

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stc/internal/core"
	"github.com/vovakirdan/stc/internal/engine"
)

// Target is a host that runs engine sessions: it owns the engine.Platform,
// drives Update once per frame and stops when the error code is set.
type Target interface {
	// ID returns a unique identifier used on the command line (e.g. "terminal").
	ID() string

	// Title returns a human-readable name for listings.
	Title() string

	// Run initializes game with the target's platform and plays until the
	// game reports an error code, the target runs out of input, or ctx is
	// done. Platform initialization failures are returned as errors.
	Run(ctx context.Context, game *engine.Game, opts Options) (Result, error)
}

// Recorder receives the input a target delivers to the engine on every frame.
type Recorder interface {
	Record(now int64, start, end engine.Event)
}

// Options are the host settings shared by every target.
type Options struct {
	Runtime  core.RuntimeConfig
	Recorder Recorder    // optional
	Logger   *log.Logger // optional
}

// Log returns o.Logger, or a logger that discards everything.
func (o Options) Log() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// Result describes how a session ended.
type Result struct {
	Code     engine.ErrorCode
	Frames   int
	Snapshot engine.Snapshot
}

// TargetInfo contains metadata about a registered target.
type TargetInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a target.
type Factory func() Target

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a target factory to the registry.
// Panics if a target with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: target %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered targets, sorted by ID.
func List() []TargetInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]TargetInfo, 0, len(factories))
	for id := range factories {
		result = append(result, TargetInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a target by its ID.
func Create(id string) (Target, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown target %q", id)
	}
	return f(), nil
}

// Exists checks if a target with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
