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

// ParsePreset converts a CLI value to a preset. Empty means "keep the config as is".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyFlappyPreset adjusts the scroll curve for a difficulty preset.
// Normal leaves the loaded values unchanged.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	s := &cfg.Scroll
	switch preset {
	case DifficultyEasy:
		s.BaseSpeed *= 0.75
		s.SpeedIncrement *= 0.5
		s.ScoreStep *= 2
	case DifficultyHard:
		s.BaseSpeed *= 1.5
		s.SpeedIncrement *= 1.5
	case DifficultyFixed:
		s.SpeedIncrement = 0
	}
	if s.MaxSpeed < s.BaseSpeed {
		s.MaxSpeed = s.BaseSpeed
	}
}
