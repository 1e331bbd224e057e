// Package config provides YAML-based game configuration loading and
// validation for the flappy session.
package config

import "time"

// GameConfig contains all tuning for a play session.
// Lengths are world pixels, times are simulated seconds unless typed as durations.
type GameConfig struct {
	Field     FieldConfig     `yaml:"field"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Speed     SpeedConfig     `yaml:"speed"`
	Obstacles ObstacleConfig  `yaml:"obstacles"`
	World     WorldConfig     `yaml:"world"`
	Session   SessionSettings `yaml:"session"`
}

// FieldConfig is the size of the visible play field. The origin is its center.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines player physics.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`       // Vertical acceleration, negative = down
	JumpImpulse  float64 `yaml:"jump_impulse"`  // Vertical velocity set on jump
	PlayerRadius float64 `yaml:"player_radius"` // Player collider radius
}

// SpeedConfig drives horizontal scroll and its acceleration.
type SpeedConfig struct {
	BaseFactor         float64 `yaml:"base_factor"`         // Speed factor on every ReadyToStart entry
	BaseMoveSpeed      float64 `yaml:"base_move_speed"`     // Pixels per second at factor 1.0
	AccelerationFactor float64 `yaml:"acceleration_factor"` // Multiplier applied each period
	AccelerationPeriod float64 `yaml:"acceleration_period"` // Seconds between accelerations
}

// ObstacleConfig defines obstacle geometry and spacing.
type ObstacleConfig struct {
	Width               float64 `yaml:"width"`
	Height              float64 `yaml:"height"`
	OpeningHeight       float64 `yaml:"opening_height"`
	OpeningBottomMargin float64 `yaml:"opening_bottom_margin"` // Min distance from field bottom to gap bottom
	OpeningTopMargin    float64 `yaml:"opening_top_margin"`    // Min distance from gap top to field top
	MinGapThreshold     float64 `yaml:"min_gap_threshold"`
	GapExtraMin         float64 `yaml:"gap_extra_min"`
	GapExtraMax         float64 `yaml:"gap_extra_max"`
	DespawnMargin       float64 `yaml:"despawn_margin"`
}

// WorldConfig defines the static world.
type WorldConfig struct {
	BoundaryThickness float64 `yaml:"boundary_thickness"` // Height of the lethal colliders outside the field
	GroundHeight      float64 `yaml:"ground_height"`      // Ground strip; raises the bottom boundary
}

// SessionSettings controls phase flow.
type SessionSettings struct {
	LaunchMenu       bool          `yaml:"launch_menu"`        // Wait for input in ReadyToLaunch before building the world
	LoadingWarnAfter time.Duration `yaml:"loading_warn_after"` // Report stalled assets after this long
	MaxTick          time.Duration `yaml:"max_tick"`           // Clamp for elapsed time per tick
}

// OpeningRange returns the lowest and highest allowed world y of the gap's bottom edge.
func (c GameConfig) OpeningRange() (lo, hi float64) {
	half := c.Field.Height / 2
	lo = -half + c.Obstacles.OpeningBottomMargin
	hi = half - c.Obstacles.OpeningTopMargin - c.Obstacles.OpeningHeight
	return lo, hi
}
