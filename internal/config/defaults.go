package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in tuning.
// It mirrors defaults/flappy.yaml and is the fallback if the embed cannot be parsed.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Field: FieldConfig{
			Width:  576,
			Height: 324,
		},
		Physics: PhysicsConfig{
			Gravity:      -540,
			JumpImpulse:  142,
			PlayerRadius: 10,
		},
		Speed: SpeedConfig{
			BaseFactor:         1.1,
			BaseMoveSpeed:      94,
			AccelerationFactor: 1.028,
			AccelerationPeriod: 3.6,
		},
		Obstacles: ObstacleConfig{
			Width:               18,
			Height:              252,
			OpeningHeight:       80,
			OpeningBottomMargin: 54,
			OpeningTopMargin:    36,
			MinGapThreshold:     90,
			GapExtraMin:         90,
			GapExtraMax:         130,
			DespawnMargin:       18,
		},
		World: WorldConfig{
			BoundaryThickness: 200,
			GroundHeight:      36,
		},
		Session: SessionSettings{
			LaunchMenu:       false,
			LoadingWarnAfter: 5 * time.Second,
			MaxTick:          250 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default YAML, for `flappy check --print-defaults`.
func DefaultYAML() []byte {
	return defaultGameYAML
}
