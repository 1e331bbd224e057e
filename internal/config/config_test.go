package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	var fromYAML GameConfig
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if fromYAML != DefaultGameConfig() {
		t.Errorf("embedded YAML and DefaultGameConfig() disagree:\n%+v\n%+v", fromYAML, DefaultGameConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultGameConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestOpeningRange(t *testing.T) {
	lo, hi := DefaultGameConfig().OpeningRange()
	if lo != -108 || hi != 46 {
		t.Errorf("OpeningRange() = [%g, %g], expected [-108, 46]", lo, hi)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"zero field", func(c *GameConfig) { c.Field.Width = 0 }},
		{"inverted opening bounds", func(c *GameConfig) {
			c.Obstacles.OpeningBottomMargin = 150
			c.Obstacles.OpeningTopMargin = 150
		}},
		{"opening smaller than player", func(c *GameConfig) { c.Obstacles.OpeningHeight = 15 }},
		{"jitter range inverted", func(c *GameConfig) {
			c.Obstacles.GapExtraMin = 200
			c.Obstacles.GapExtraMax = 100
		}},
		{"negative jitter", func(c *GameConfig) { c.Obstacles.GapExtraMin = -5 }},
		{"zero gap threshold", func(c *GameConfig) { c.Obstacles.MinGapThreshold = 0 }},
		{"decelerating", func(c *GameConfig) { c.Speed.AccelerationFactor = 0.9 }},
		{"zero period", func(c *GameConfig) { c.Speed.AccelerationPeriod = 0 }},
		{"zero base factor", func(c *GameConfig) { c.Speed.BaseFactor = 0 }},
		{"ground fills field", func(c *GameConfig) { c.World.GroundHeight = 324 }},
		{"negative max tick", func(c *GameConfig) { c.Session.MaxTick = -time.Second }},
		{"nan gap threshold", func(c *GameConfig) { c.Obstacles.MinGapThreshold = math.NaN() }},
		{"nan opening margin", func(c *GameConfig) { c.Obstacles.OpeningBottomMargin = math.NaN() }},
		{"infinite jitter", func(c *GameConfig) { c.Obstacles.GapExtraMax = math.Inf(1) }},
		{"nan gravity", func(c *GameConfig) { c.Physics.Gravity = math.NaN() }},
		{"infinite field", func(c *GameConfig) { c.Field.Width = math.Inf(1) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v should wrap ErrInvalid", err)
			}
		})
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("speed:\n  base_factor: 2.0\nsession:\n  launch_menu: true\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, expected %q", source, path)
	}
	if cfg.Speed.BaseFactor != 2.0 || !cfg.Session.LaunchMenu {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Obstacles.MinGapThreshold != 90 {
		t.Errorf("unset keys should keep defaults, min_gap_threshold = %g", cfg.Obstacles.MinGapThreshold)
	}
}

func TestLoadCustomPathInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := []byte("obstacles:\n  opening_bottom_margin: 200\n  opening_top_margin: 200\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, expected ErrInvalid", err)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with a missing custom path should fail")
	}
}

func TestLoadRejectsNonFiniteYAML(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"nan", "obstacles:\n  min_gap_threshold: .nan\n  opening_bottom_margin: .nan\n"},
		{"positive inf", "speed:\n  acceleration_period: .inf\n"},
		{"negative inf", "physics:\n  gravity: -.inf\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "flappy.yaml")
			if err := os.WriteFile(path, []byte(tc.data), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, _, err := Load(path); !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() error = %v, expected ErrInvalid", err)
			}
		})
	}
}
