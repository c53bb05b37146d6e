// Package config provides YAML-based rules configuration loading,
// environment overrides and difficulty presets.
package config

import (
	"fmt"

	"github.com/vovakirdan/stc/internal/engine"
)

// StcConfig is the on-disk form of the engine rules.
type StcConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Timing  TimingConfig  `yaml:"timing"`
	Scoring ScoringConfig `yaml:"scoring"`
	Input   InputConfig   `yaml:"input"`
}

// BoardConfig defines the playfield size in tiles.
type BoardConfig struct {
	Width  int `yaml:"width" env:"BOARD_WIDTH"`
	Height int `yaml:"height" env:"BOARD_HEIGHT"`
}

// TimingConfig defines gravity and its speed-up on level changes.
type TimingConfig struct {
	FallDelayMs    int `yaml:"fall_delay_ms" env:"FALL_DELAY_MS"`
	MinFallDelayMs int `yaml:"min_fall_delay_ms" env:"MIN_FALL_DELAY_MS"`
	RowsPerLevel   int `yaml:"rows_per_level" env:"ROWS_PER_LEVEL"`
	DelayFactor    int `yaml:"delay_factor"`  // fall delay is multiplied by factor/divisor
	DelayDivisor   int `yaml:"delay_divisor"` // on every level-up
}

// ScoringConfig defines line clear and drop rewards.
type ScoringConfig struct {
	Rows                  []int `yaml:"rows"` // 1, 2, 3 and 4 rows
	SoftDropDivisor       int   `yaml:"soft_drop_divisor"`
	HardDropDivisor       int   `yaml:"hard_drop_divisor"`
	HardDropShadowDivisor int   `yaml:"hard_drop_shadow_divisor"`
}

// InputConfig defines delayed autoshift and rotation autorepeat timings.
type InputConfig struct {
	DASDelayMs       int  `yaml:"das_delay_ms" env:"DAS_DELAY_MS"`
	DASRepeatMs      int  `yaml:"das_repeat_ms" env:"DAS_REPEAT_MS"`
	AutoRotation     bool `yaml:"auto_rotation" env:"AUTO_ROTATION"`
	RotationDelayMs  int  `yaml:"rotation_delay_ms"`
	RotationRepeatMs int  `yaml:"rotation_repeat_ms"`
}

// DefaultStcConfig returns the classic rules.
func DefaultStcConfig() StcConfig {
	return FromEngine(engine.DefaultConfig())
}

// FromEngine converts engine rules to their on-disk form.
func FromEngine(c engine.Config) StcConfig {
	return StcConfig{
		Board: BoardConfig{
			Width:  c.BoardWidth,
			Height: c.BoardHeight,
		},
		Timing: TimingConfig{
			FallDelayMs:    c.InitialFallDelay,
			MinFallDelayMs: c.MinFallDelay,
			RowsPerLevel:   c.RowsPerLevel,
			DelayFactor:    c.DelayFactor,
			DelayDivisor:   c.DelayDivisor,
		},
		Scoring: ScoringConfig{
			Rows:                  c.RowScores[:],
			SoftDropDivisor:       c.SoftDropDivisor,
			HardDropDivisor:       c.HardDropDivisor,
			HardDropShadowDivisor: c.HardDropShadowDivisor,
		},
		Input: InputConfig{
			DASDelayMs:       c.DASDelay,
			DASRepeatMs:      c.DASRepeat,
			AutoRotation:     c.AutoRotation,
			RotationDelayMs:  c.RotationRepeatDelay,
			RotationRepeatMs: c.RotationRepeatPeriod,
		},
	}
}

// Engine converts the configuration to engine rules. Call Validate first:
// a short score table leaves the missing entries at zero.
func (c StcConfig) Engine() engine.Config {
	out := engine.Config{
		BoardWidth:            c.Board.Width,
		BoardHeight:           c.Board.Height,
		InitialFallDelay:      c.Timing.FallDelayMs,
		MinFallDelay:          c.Timing.MinFallDelayMs,
		SoftDropDivisor:       c.Scoring.SoftDropDivisor,
		HardDropDivisor:       c.Scoring.HardDropDivisor,
		HardDropShadowDivisor: c.Scoring.HardDropShadowDivisor,
		RowsPerLevel:          c.Timing.RowsPerLevel,
		DelayFactor:           c.Timing.DelayFactor,
		DelayDivisor:          c.Timing.DelayDivisor,
		DASDelay:              c.Input.DASDelayMs,
		DASRepeat:             c.Input.DASRepeatMs,
		AutoRotation:          c.Input.AutoRotation,
		RotationRepeatDelay:   c.Input.RotationDelayMs,
		RotationRepeatPeriod:  c.Input.RotationRepeatMs,
	}
	copy(out.RowScores[:], c.Scoring.Rows)
	return out
}

// Validate reports the first problem that would make the rules unplayable.
func (c StcConfig) Validate() error {
	if n := len(c.Scoring.Rows); n != 4 {
		return fmt.Errorf("config: scoring.rows needs 4 entries, got %d", n)
	}
	if err := c.Engine().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
