package config

import (
	_ "embed"
)

//go:embed defaults/cupid.yaml
var defaultCupidYAML []byte

// DefaultCupidConfig returns the built-in configuration.
func DefaultCupidConfig() CupidConfig {
	return CupidConfig{
		Field: FieldConfig{
			Width:       320,
			Height:      480,
			Margin:      20,
			SpawnMargin: 10,
		},
		Player: PlayerConfig{
			Size:         50,
			BottomOffset: 60,
			BaseSpeed:    2,
			BoostedSpeed: 3,
			SlowFactor:   0.3,
			MinSpeed:     1,
			TrailChance:  0.3,
			TrailFade:    0.05,
		},
		Timing: TimingConfig{
			TickUnits:       16,
			Invincibility:   1500,
			HitGuard:        500,
			DefaultTickRate: 60,
		},
		Items: ItemsConfig{
			Shield: ItemConfig{Charges: 1, Duration: 3000},
			Speed:  ItemConfig{Charges: 1, Duration: 5000},
		},
		Effects: EffectsConfig{
			Confusion:      3000,
			Slow:           4000,
			ConfusedDamage: 2,
		},
		Objects: ObjectsConfig{
			ArrowSpeed:     6,
			PickupSpeed:    4,
			ArrowHitRadius: 35,
			PickupSize:     20,
		},
		Spawns: SpawnConfig{
			Arrow:          0.02,
			ArrowFast:      0.04,
			ArrowFastLevel: 2,
			Confusion:      0.01,
			ConfusionLevel: 3,
			Slow:           0.015,
			SlowLevel:      4,
		},
		Scoring: ScoringConfig{
			Lives:          3,
			PointsPerLevel: 500,
			MaxLevel:       4,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultCupidYAML
}
