// Package config provides YAML-based game configuration loading and
// difficulty presets for Cupid Arrow.
package config

// CupidConfig contains all tunables of the simulation. Durations are in
// simulation time units (milliseconds); one tick consumes Timing.TickUnits.
type CupidConfig struct {
	Field   FieldConfig   `yaml:"field"`
	Player  PlayerConfig  `yaml:"player"`
	Timing  TimingConfig  `yaml:"timing"`
	Items   ItemsConfig   `yaml:"items"`
	Effects EffectsConfig `yaml:"effects"`
	Objects ObjectsConfig `yaml:"objects"`
	Spawns  SpawnConfig   `yaml:"spawns"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// FieldConfig defines the play area.
type FieldConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Margin      float64 `yaml:"margin"`       // how far objects may leave the field before removal
	SpawnMargin float64 `yaml:"spawn_margin"` // horizontal inset for spawned objects
}

// PlayerConfig defines the player sprite and movement.
type PlayerConfig struct {
	Size         float64 `yaml:"size"`
	BottomOffset float64 `yaml:"bottom_offset"` // distance of the fixed y from the field bottom
	BaseSpeed    float64 `yaml:"base_speed"`
	BoostedSpeed float64 `yaml:"boosted_speed"`
	SlowFactor   float64 `yaml:"slow_factor"`
	MinSpeed     float64 `yaml:"min_speed"`
	TrailChance  float64 `yaml:"trail_chance"`
	TrailFade    float64 `yaml:"trail_fade"`
}

// TimingConfig defines the tick length and protection windows.
type TimingConfig struct {
	TickUnits       int `yaml:"tick_units"`
	Invincibility   int `yaml:"invincibility"`
	HitGuard        int `yaml:"hit_guard"`
	DefaultTickRate int `yaml:"default_tick_rate"`
}

// ItemConfig defines a consumable item.
type ItemConfig struct {
	Charges  int `yaml:"charges"`
	Duration int `yaml:"duration"`
}

// ItemsConfig groups the player's items.
type ItemsConfig struct {
	Shield ItemConfig `yaml:"shield"`
	Speed  ItemConfig `yaml:"speed"`
}

// EffectsConfig defines debuff durations.
type EffectsConfig struct {
	Confusion      int `yaml:"confusion"`
	Slow           int `yaml:"slow"`
	ConfusedDamage int `yaml:"confused_damage"`
}

// ObjectsConfig defines falling object physics.
type ObjectsConfig struct {
	ArrowSpeed     float64 `yaml:"arrow_speed"`
	PickupSpeed    float64 `yaml:"pickup_speed"`
	ArrowHitRadius float64 `yaml:"arrow_hit_radius"`
	PickupSize     float64 `yaml:"pickup_size"`
}

// SpawnConfig defines per-tick spawn probabilities and level gates.
type SpawnConfig struct {
	Arrow          float64 `yaml:"arrow"`
	ArrowFast      float64 `yaml:"arrow_fast"`
	ArrowFastLevel int     `yaml:"arrow_fast_level"`
	Confusion      float64 `yaml:"confusion"`
	ConfusionLevel int     `yaml:"confusion_level"`
	Slow           float64 `yaml:"slow"`
	SlowLevel      int     `yaml:"slow_level"`
}

// ScoringConfig defines lives, score and level progression.
type ScoringConfig struct {
	Lives          int `yaml:"lives"`
	PointsPerLevel int `yaml:"points_per_level"`
	MaxLevel       int `yaml:"max_level"`
}

// PlayerY returns the fixed vertical position of the player.
func (c CupidConfig) PlayerY() float64 {
	return c.Field.Height - c.Player.BottomOffset
}

// PickupHitRadius returns the contact distance between a pickup and the player.
func (c CupidConfig) PickupHitRadius() float64 {
	return (c.Objects.PickupSize + c.Player.Size) / 2
}
