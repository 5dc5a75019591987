package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned for configurations the simulation cannot run with.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the configuration for values that would break the simulation.
func (c CupidConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field must have a positive size", ErrInvalidConfig)
	case c.Player.Size <= 0 || c.Player.Size >= c.Field.Width:
		return fmt.Errorf("%w: player size %.0f does not fit field width %.0f", ErrInvalidConfig, c.Player.Size, c.Field.Width)
	case c.Field.SpawnMargin*2 >= c.Field.Width:
		return fmt.Errorf("%w: spawn margin leaves no room to spawn", ErrInvalidConfig)
	case c.Timing.TickUnits <= 0:
		return fmt.Errorf("%w: tick_units must be positive", ErrInvalidConfig)
	case c.Scoring.Lives <= 0:
		return fmt.Errorf("%w: lives must be positive", ErrInvalidConfig)
	case c.Scoring.PointsPerLevel <= 0:
		return fmt.Errorf("%w: points_per_level must be positive", ErrInvalidConfig)
	case c.Scoring.MaxLevel < 1:
		return fmt.Errorf("%w: max_level must be at least 1", ErrInvalidConfig)
	}

	for name, p := range map[string]float64{
		"spawns.arrow":        c.Spawns.Arrow,
		"spawns.arrow_fast":   c.Spawns.ArrowFast,
		"spawns.confusion":    c.Spawns.Confusion,
		"spawns.slow":         c.Spawns.Slow,
		"player.trail_chance": c.Player.TrailChance,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: %s must be a probability, got %g", ErrInvalidConfig, name, p)
		}
	}
	return nil
}
