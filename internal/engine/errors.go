package engine

import "fmt"

// ErrorCode is the engine's error register. The host is expected to check it
// after every Update and stop the loop when it is not ErrNone.
type ErrorCode int

// Error codes. Negative values are failures; ErrPlayerQuits is a normal exit.
const (
	ErrNone        ErrorCode = 0
	ErrPlayerQuits ErrorCode = 1
	ErrNoMemory    ErrorCode = -1
	ErrNoVideo     ErrorCode = -2
	ErrNoImages    ErrorCode = -3
	ErrPlatform    ErrorCode = -4
	ErrAssert      ErrorCode = -100
)

// Error implements the error interface.
func (c ErrorCode) Error() string {
	switch c {
	case ErrNone:
		return "engine: no error"
	case ErrPlayerQuits:
		return "engine: player quits"
	case ErrNoMemory:
		return "engine: not enough memory"
	case ErrNoVideo:
		return "engine: video system not initialized"
	case ErrNoImages:
		return "engine: cannot load images"
	case ErrPlatform:
		return "engine: platform failure"
	case ErrAssert:
		return "engine: internal invariant violated"
	default:
		return fmt.Sprintf("engine: error code %d", int(c))
	}
}

// Err returns nil for ErrNone and the code itself otherwise, so it can be
// used with errors.Is and the usual err != nil checks.
func (c ErrorCode) Err() error {
	if c == ErrNone {
		return nil
	}
	return c
}

// IsFailure reports whether the code represents a failure rather than a
// normal termination.
func (c ErrorCode) IsFailure() bool {
	return c < 0
}
