package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// spawnMultiplier scales all spawn probabilities for a preset.
func spawnMultiplier(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.6
	case DifficultyHard:
		return 1.5
	default:
		return 1.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the config untouched.
func ApplyPreset(cfg *CupidConfig, preset DifficultyPreset) {
	if preset == DifficultyNormal || preset == "" {
		return
	}

	m := spawnMultiplier(preset)
	cfg.Spawns.Arrow = clampProbability(cfg.Spawns.Arrow * m)
	cfg.Spawns.ArrowFast = clampProbability(cfg.Spawns.ArrowFast * m)
	cfg.Spawns.Confusion = clampProbability(cfg.Spawns.Confusion * m)
	cfg.Spawns.Slow = clampProbability(cfg.Spawns.Slow * m)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Items.Shield.Charges = 2
		cfg.Items.Speed.Charges = 2
	case DifficultyHard:
		cfg.Timing.Invincibility = 1000
	}
}

func clampProbability(p float64) float64 {
	if p > 1 {
		return 1
	}
	return p
}
