package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate rejects tuning that cannot produce a fair session.
// It is run once at startup; the simulation assumes it passed.
func (c GameConfig) Validate() error {
	if err := c.finite(); err != nil {
		return err
	}
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return invalid("field must have positive size, got %gx%g", c.Field.Width, c.Field.Height)
	}
	if c.Physics.PlayerRadius <= 0 {
		return invalid("physics.player_radius must be positive, got %g", c.Physics.PlayerRadius)
	}

	s := c.Speed
	if s.BaseFactor <= 0 {
		return invalid("speed.base_factor must be positive, got %g", s.BaseFactor)
	}
	if s.BaseMoveSpeed <= 0 {
		return invalid("speed.base_move_speed must be positive, got %g", s.BaseMoveSpeed)
	}
	if s.AccelerationFactor < 1 {
		return invalid("speed.acceleration_factor must be >= 1, got %g", s.AccelerationFactor)
	}
	if s.AccelerationPeriod <= 0 {
		return invalid("speed.acceleration_period must be positive, got %g", s.AccelerationPeriod)
	}

	o := c.Obstacles
	if o.Width <= 0 || o.Height <= 0 {
		return invalid("obstacles must have positive size, got %gx%g", o.Width, o.Height)
	}
	if o.OpeningHeight <= 2*c.Physics.PlayerRadius {
		return invalid("obstacles.opening_height %g leaves no room for a player of radius %g",
			o.OpeningHeight, c.Physics.PlayerRadius)
	}
	if o.OpeningBottomMargin < 0 || o.OpeningTopMargin < 0 {
		return invalid("opening margins must not be negative")
	}
	if lo, hi := c.OpeningRange(); lo > hi {
		return invalid("opening bounds inverted: bottom edge range [%g, %g] "+
			"(field height %g, margins %g/%g, opening %g)",
			lo, hi, c.Field.Height, o.OpeningBottomMargin, o.OpeningTopMargin, o.OpeningHeight)
	}
	if o.MinGapThreshold <= 0 {
		return invalid("obstacles.min_gap_threshold must be positive, got %g", o.MinGapThreshold)
	}
	if o.GapExtraMin < 0 {
		return invalid("obstacles.gap_extra_min must not be negative, got %g", o.GapExtraMin)
	}
	if o.GapExtraMin > o.GapExtraMax {
		return invalid("obstacles.gap_extra_min %g exceeds gap_extra_max %g", o.GapExtraMin, o.GapExtraMax)
	}
	if o.DespawnMargin < 0 {
		return invalid("obstacles.despawn_margin must not be negative, got %g", o.DespawnMargin)
	}

	w := c.World
	if w.BoundaryThickness <= 0 {
		return invalid("world.boundary_thickness must be positive, got %g", w.BoundaryThickness)
	}
	if w.GroundHeight < 0 || w.GroundHeight >= c.Field.Height {
		return invalid("world.ground_height %g must be within [0, %g)", w.GroundHeight, c.Field.Height)
	}

	if c.Session.LoadingWarnAfter < 0 || c.Session.MaxTick < 0 {
		return invalid("session durations must not be negative")
	}
	return nil
}

// finite rejects NaN and infinities, which slip past every ordered comparison.
func (c GameConfig) finite() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"field.width", c.Field.Width},
		{"field.height", c.Field.Height},
		{"physics.gravity", c.Physics.Gravity},
		{"physics.jump_impulse", c.Physics.JumpImpulse},
		{"physics.player_radius", c.Physics.PlayerRadius},
		{"speed.base_factor", c.Speed.BaseFactor},
		{"speed.base_move_speed", c.Speed.BaseMoveSpeed},
		{"speed.acceleration_factor", c.Speed.AccelerationFactor},
		{"speed.acceleration_period", c.Speed.AccelerationPeriod},
		{"obstacles.width", c.Obstacles.Width},
		{"obstacles.height", c.Obstacles.Height},
		{"obstacles.opening_height", c.Obstacles.OpeningHeight},
		{"obstacles.opening_bottom_margin", c.Obstacles.OpeningBottomMargin},
		{"obstacles.opening_top_margin", c.Obstacles.OpeningTopMargin},
		{"obstacles.min_gap_threshold", c.Obstacles.MinGapThreshold},
		{"obstacles.gap_extra_min", c.Obstacles.GapExtraMin},
		{"obstacles.gap_extra_max", c.Obstacles.GapExtraMax},
		{"obstacles.despawn_margin", c.Obstacles.DespawnMargin},
		{"world.boundary_thickness", c.World.BoundaryThickness},
		{"world.ground_height", c.World.GroundHeight},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalid("%s must be a finite number, got %g", f.name, f.v)
		}
	}
	return nil
}
