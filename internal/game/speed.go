package game

import "github.com/vovakirdan/tui-flappy/internal/config"

// SpeedController owns the speed factor and its acceleration timer.
type SpeedController struct {
	base      float64
	moveSpeed float64
	accel     float64
	period    float64

	factor float64
	timer  float64
}

// NewSpeedController creates a controller at the base factor.
func NewSpeedController(cfg config.SpeedConfig) *SpeedController {
	s := &SpeedController{
		base:      cfg.BaseFactor,
		moveSpeed: cfg.BaseMoveSpeed,
		accel:     cfg.AccelerationFactor,
		period:    cfg.AccelerationPeriod,
	}
	s.Reset()
	return s
}

// Factor returns the current speed factor.
func (s *SpeedController) Factor() float64 { return s.factor }

// Timer returns the time accumulated toward the next acceleration.
func (s *SpeedController) Timer() float64 { return s.timer }

// Advance runs the acceleration timer for dt seconds. Each completed period
// multiplies the factor once. It returns the number of periods completed.
func (s *SpeedController) Advance(dt float64) int {
	if dt <= 0 || s.period <= 0 {
		return 0
	}
	s.timer += dt
	n := 0
	for s.timer >= s.period {
		s.timer -= s.period
		s.factor *= s.accel
		n++
	}
	return n
}

// Delta is how far an entity with the given move factor scrolls in dt seconds.
func (s *SpeedController) Delta(dt, entityFactor float64) float64 {
	return s.moveSpeed * entityFactor * s.factor * dt
}

// Reset restores the base factor and restarts the timer.
func (s *SpeedController) Reset() {
	s.factor = s.base
	s.timer = 0
}
