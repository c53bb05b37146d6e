package engine

import "fmt"

// Config holds every tunable of the rules. It is copied into the Game at
// construction and never mutated afterwards.
type Config struct {
	BoardWidth  int
	BoardHeight int

	// Initial gravity interval in milliseconds and the floor it can shrink to.
	InitialFallDelay int
	MinFallDelay     int

	// Points for 1, 2, 3 and 4 rows cleared at once, multiplied by level+1.
	RowScores [4]int

	// Soft and hard drop rewards are RowScores[1]*(level+1) divided by these.
	SoftDropDivisor       int
	HardDropDivisor       int
	HardDropShadowDivisor int

	// Level goes up every RowsPerLevel*(level+1) cumulative rows, and the
	// fall delay is multiplied by DelayFactor/DelayDivisor.
	RowsPerLevel int
	DelayFactor  int
	DelayDivisor int

	// Delayed autoshift: initial delay and repeat interval, in milliseconds.
	DASDelay  int
	DASRepeat int

	// Rotation autorepeat, in milliseconds.
	AutoRotation         bool
	RotationRepeatDelay  int
	RotationRepeatPeriod int
}

// DefaultConfig returns the classic 10x22 rules.
func DefaultConfig() Config {
	return Config{
		BoardWidth:            10,
		BoardHeight:           22,
		InitialFallDelay:      1000,
		MinFallDelay:          1,
		RowScores:             [4]int{400, 1000, 3000, 12000},
		SoftDropDivisor:       1000,
		HardDropDivisor:       20,
		HardDropShadowDivisor: 100,
		RowsPerLevel:          10,
		DelayFactor:           9,
		DelayDivisor:          10,
		DASDelay:              200,
		DASRepeat:             40,
		AutoRotation:          true,
		RotationRepeatDelay:   375,
		RotationRepeatPeriod:  200,
	}
}

// Validate reports the first setting that would make the rules unplayable.
func (c Config) Validate() error {
	switch {
	case c.BoardWidth < TetrominoSize:
		return fmt.Errorf("engine: board width %d is narrower than a tetromino", c.BoardWidth)
	case c.BoardHeight < TetrominoSize:
		return fmt.Errorf("engine: board height %d is shorter than a tetromino", c.BoardHeight)
	case c.InitialFallDelay <= 0:
		return fmt.Errorf("engine: initial fall delay must be positive, got %d", c.InitialFallDelay)
	case c.MinFallDelay <= 0:
		return fmt.Errorf("engine: minimum fall delay must be positive, got %d", c.MinFallDelay)
	case c.SoftDropDivisor <= 0 || c.HardDropDivisor <= 0 || c.HardDropShadowDivisor <= 0:
		return fmt.Errorf("engine: drop divisors must be positive")
	case c.RowsPerLevel <= 0:
		return fmt.Errorf("engine: rows per level must be positive, got %d", c.RowsPerLevel)
	case c.DelayDivisor <= 0 || c.DelayFactor <= 0:
		return fmt.Errorf("engine: level delay factor and divisor must be positive")
	case c.DASDelay <= 0 || c.DASRepeat <= 0:
		return fmt.Errorf("engine: autoshift timers must be positive")
	case c.AutoRotation && (c.RotationRepeatDelay <= 0 || c.RotationRepeatPeriod <= 0):
		return fmt.Errorf("engine: rotation autorepeat timers must be positive")
	}
	return nil
}
