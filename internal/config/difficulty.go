package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// IsFixedPreset returns true if the preset disables gravity speed-up.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
// Easy starts a third slower, hard starts twice as fast and levels up every
// 8 rows, fixed keeps the initial gravity for the whole session.
func ApplyPreset(cfg *StcConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.FallDelayMs = cfg.Timing.FallDelayMs * 4 / 3
	case DifficultyHard:
		cfg.Timing.FallDelayMs /= 2
		cfg.Timing.RowsPerLevel = min(cfg.Timing.RowsPerLevel, 8)
	case DifficultyFixed:
		cfg.Timing.DelayFactor = 1
		cfg.Timing.DelayDivisor = 1
	}
	cfg.Timing.FallDelayMs = max(cfg.Timing.FallDelayMs, cfg.Timing.MinFallDelayMs)
}
