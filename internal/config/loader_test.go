package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultCupidConfig() {
		t.Errorf("embedded YAML diverged from DefaultCupidConfig():\n%+v\n%+v", cfg, DefaultCupidConfig())
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("scoring:\n  lives: 5\nspawns:\n  arrow: 0.5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Scoring.Lives != 5 {
		t.Errorf("lives = %d, expected 5", cfg.Scoring.Lives)
	}
	if cfg.Spawns.Arrow != 0.5 {
		t.Errorf("arrow spawn = %f, expected 0.5", cfg.Spawns.Arrow)
	}
	// Untouched keys keep their defaults
	if cfg.Field.Width != 320 {
		t.Errorf("field width = %f, expected default 320", cfg.Field.Width)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() should fail for a missing custom path")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("spawns:\n  slow: 3\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CupidConfig)
		valid  bool
	}{
		{"defaults", func(*CupidConfig) {}, true},
		{"zero width", func(c *CupidConfig) { c.Field.Width = 0 }, false},
		{"player wider than field", func(c *CupidConfig) { c.Player.Size = 400 }, false},
		{"no lives", func(c *CupidConfig) { c.Scoring.Lives = 0 }, false},
		{"zero tick", func(c *CupidConfig) { c.Timing.TickUnits = 0 }, false},
		{"negative probability", func(c *CupidConfig) { c.Spawns.Arrow = -0.1 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultCupidConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.valid && err == nil {
				t.Error("Validate() = nil, expected error")
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	normal := DefaultCupidConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != DefaultCupidConfig() {
		t.Error("normal preset should not change the config")
	}

	easy := DefaultCupidConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Spawns.Arrow >= normal.Spawns.Arrow {
		t.Errorf("easy arrow spawn %f should be below normal %f", easy.Spawns.Arrow, normal.Spawns.Arrow)
	}
	if easy.Items.Shield.Charges != 2 {
		t.Errorf("easy shield charges = %d, expected 2", easy.Items.Shield.Charges)
	}

	hard := DefaultCupidConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Spawns.ArrowFast <= normal.Spawns.ArrowFast {
		t.Errorf("hard fast arrow spawn %f should exceed normal %f", hard.Spawns.ArrowFast, normal.Spawns.ArrowFast)
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset produced invalid config: %v", err)
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", s, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
}
