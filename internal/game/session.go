package game

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
)

// AssetTracker reports the load status of the resources a session waits for.
// *assets.Bundle implements it.
type AssetTracker interface {
	Handles() []assets.Handle
	State(h assets.Handle) assets.LoadState
	Path(h assets.Handle) string
	Err(h assets.Handle) error
	Resolve() (assets.Resolved, bool)
}

// Deps are the collaborators of a session. Every field is optional.
type Deps struct {
	Logger  *log.Logger      // nil discards
	Assets  AssetTracker     // nil means nothing to load
	Seed    int64            // Attempt n is generated from Seed+n
	NewRand func(int64) Rand // nil uses math/rand
}

// Transition records one phase change.
type Transition struct {
	From, To Phase
	Trigger  Trigger
}

// AttemptSummary describes an attempt that ended in a lethal collision.
type AttemptSummary struct {
	Seed  int64  // Generator seed of the attempt
	Ticks uint64 // Ticks from ReadyToStart entry up to and including the lethal one
	Score uint64
}

// TickResult reports what one tick did.
type TickResult struct {
	Phase       Phase
	Transitions []Transition
	Events      []Event
	Spawned     []ObstaclePair
	Despawned   []ObstaclePair
	Ended       *AttemptSummary
}

// Session owns every piece of game state and advances it one tick at a time.
type Session struct {
	cfg    config.GameConfig
	log    *log.Logger
	assets AssetTracker
	seed   int64

	phase      Phase
	world      *World
	speed      *SpeedController
	gen        *Generator
	translator *Translator
	score      ScoreTracker
	queue      EventQueue
	camera     Camera
	art        *assets.Resolved

	ticks       uint64
	attempt     int64
	attemptSeed int64
	attemptTick uint64

	readyPrompt  bool
	scoreVisible bool
	setupErr     error // World setup failure; the session stays in Initializing

	loadingFor float64
	nextWarn   float64
	reported   map[assets.Handle]bool
	failed     []string
}

// NewSession validates cfg and creates a session in the Loading phase.
func NewSession(cfg config.GameConfig, deps Deps) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	world := NewWorld(cfg.Physics.Gravity)
	gen, err := NewGenerator(cfg, deps.Seed, deps.NewRand)
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:        cfg,
		log:        logger,
		assets:     deps.Assets,
		seed:       deps.Seed,
		phase:      PhaseLoading(),
		world:      world,
		speed:      NewSpeedController(cfg.Speed),
		gen:        gen,
		translator: NewTranslator(world),
		camera:     NewCamera(cfg.Field.Width, cfg.Field.Height),
		nextWarn:   cfg.Session.LoadingWarnAfter.Seconds(),
		reported:   make(map[assets.Handle]bool),
	}, nil
}

func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Score() uint64 { return s.score.Value() }
func (s *Session) SpeedFactor() float64 { return s.speed.Factor() }
func (s *Session) ReadyPromptVisible() bool { return s.readyPrompt }
func (s *Session) ScoreVisible() bool { return s.scoreVisible }
func (s *Session) World() *World { return s.world }
func (s *Session) Generator() *Generator { return s.gen }
func (s *Session) Speed() *SpeedController { return s.speed }
func (s *Session) Config() config.GameConfig { return s.cfg }
func (s *Session) Ticks() uint64 { return s.ticks }
func (s *Session) FailedAssets() []string { return s.failed }
func (s *Session) Art() (assets.Resolved, bool) { return deref(s.art) }

// Attempt returns the number of attempts started so far.
func (s *Session) Attempt() int64 { return s.attempt }

// AttemptSeed returns the generator seed of the current attempt.
func (s *Session) AttemptSeed() int64 { return s.attemptSeed }

// AttemptTick returns the ticks processed since the current attempt entered ReadyToStart.
func (s *Session) AttemptTick() uint64 { return s.attemptTick }

// Player returns the player entity once the world is built.
func (s *Session) Player() (ecs.Entity, bool) { return s.world.Player() }

func deref(r *assets.Resolved) (assets.Resolved, bool) {
	if r == nil {
		return assets.Resolved{}, false
	}
	return *r, true
}

func (s *Session) clampDT(dt float64) float64 {
	if dt < 0 {
		return 0
	}
	if limit := s.cfg.Session.MaxTick.Seconds(); limit > 0 && dt > limit {
		return limit
	}
	return dt
}

// Tick advances the session by dt seconds with the actions pressed this tick.
// At most one phase transition happens per tick; it is applied last, after
// the tick's events are consumed.
func (s *Session) Tick(in core.InputFrame, dt float64) TickResult {
	dt = s.clampDT(dt)
	s.ticks++

	var res TickResult
	var trigger Trigger
	fired := false
	fire := func(t Trigger) {
		if !fired {
			trigger, fired = t, true
		}
	}

	switch s.phase {
	case PhaseLoading():
		if s.pollAssets(dt) {
			fire(TriggerAssetsLoaded)
		}
	case PhaseReadyToLaunch():
		if in.Has(core.ActionJump) {
			fire(TriggerStartInput)
		}
	case PhaseInitializing():
		if s.setupErr == nil {
			fire(TriggerWorldSpawned)
		}
	case PhaseReadyToStart():
		s.attemptTick++
		if in.Has(core.ActionJump) {
			fire(TriggerStartInput)
		}
	case PhasePlaying():
		s.attemptTick++
		s.play(in, dt, &res)
		if s.queue.Len() > 0 {
			res.Events = append([]Event(nil), s.queue.Events()...)
		}
		if s.queue.Count(EventLethalCollision) > 0 {
			fire(TriggerLethalCollision)
		}
		s.queue.Clear()
	}

	if fired {
		s.apply(trigger, &res)
	}
	res.Phase = s.phase
	return res
}

// play runs the Playing systems in order: input, scroll and acceleration,
// ground wrap, obstacle generation, physics, contact translation, scoring.
func (s *Session) play(in core.InputFrame, dt float64, res *TickResult) {
	w := s.world
	if in.Has(core.ActionJump) {
		Jump(w, s.cfg.Physics.JumpImpulse)
	}

	distance := s.speed.Delta(dt, 1)
	w.Scroll(s.speed, dt)
	if n := s.speed.Advance(dt); n > 0 {
		s.log.Debug("speed increased", "factor", s.speed.Factor(), "steps", n, "timer", s.speed.Timer())
	}
	w.WrapGround(-s.cfg.Field.Width/2, s.cfg.Field.Width)

	s.gen.Advance(distance)
	pair, spawned, err := s.gen.Update(w)
	switch {
	case err != nil:
		s.log.Error("obstacle spawn failed", "err", err)
	case spawned:
		res.Spawned = append(res.Spawned, pair)
		s.log.Debug("obstacle spawned", "x", pair.SpawnX, "opening", pair.OpeningBottom, "jitter", pair.Jitter)
	}
	for _, p := range s.gen.DespawnPassed(w) {
		res.Despawned = append(res.Despawned, p)
		s.log.Debug("obstacle despawned", "spawned_at", p.SpawnedAt)
	}

	w.SyncBodies()
	contacts := w.Physics.Step(dt)
	w.SyncPlayer()

	s.translator.Translate(contacts, &s.queue)
	if n := s.score.Consume(&s.queue); n > 0 {
		s.log.Debug("opening passed", "score", s.score.Value())
	}
}

func (s *Session) apply(t Trigger, res *TickResult) {
	from := s.phase
	to, ok := Next(from, t, s.cfg.Session.LaunchMenu)
	if !ok {
		return
	}
	if from == PhasePlaying() && t == TriggerLethalCollision {
		res.Ended = &AttemptSummary{Seed: s.attemptSeed, Ticks: s.attemptTick, Score: s.score.Value()}
		s.log.Info("attempt over",
			"attempt", s.attempt,
			"score", s.score.Value(),
			"ticks", s.attemptTick,
			"obstacles", s.gen.SpawnCount(),
		)
	}

	s.exit(from)
	s.phase = to
	s.enter(to)

	res.Transitions = append(res.Transitions, Transition{From: from, To: to, Trigger: t})
	s.log.Debug("phase transition", "from", from.String(), "to", to.String(), "trigger", t.String())
}

func (s *Session) enter(p Phase) {
	switch p {
	case PhaseInitializing():
		s.setupErr = s.spawnWorld()
		if s.setupErr != nil {
			s.log.Error("world setup failed", "err", s.setupErr)
		}
	case PhaseReadyToStart():
		ResetPlayer(s.world)
		s.score.Reset()
		s.speed.Reset()
		s.attemptSeed = s.seed + s.attempt
		s.gen.Reset(s.world, s.attemptSeed)
		s.attempt++
		s.attemptTick = 0
		s.readyPrompt = true
	case PhasePlaying():
		SetPlayerGravity(s.world, 1)
		s.scoreVisible = true
	}
}

func (s *Session) exit(p Phase) {
	switch p {
	case PhaseReadyToStart():
		s.readyPrompt = false
	case PhasePlaying():
		s.scoreVisible = false
	}
}

func (s *Session) spawnWorld() error {
	SpawnGround(s.world, s.cfg)
	if _, err := SpawnPlayer(s.world, s.cfg.Physics.PlayerRadius); err != nil {
		return err
	}
	if _, err := SpawnBoundaries(s.world, s.cfg); err != nil {
		return err
	}
	s.camera = NewCamera(s.cfg.Field.Width, s.cfg.Field.Height)
	return nil
}

// pollAssets checks every tracked handle once and reports whether all are loaded.
// Failures are logged once per handle; a stall is logged every loading_warn_after.
func (s *Session) pollAssets(dt float64) bool {
	if s.assets == nil {
		return true
	}
	s.loadingFor += dt

	var pending []string
	ready := true
	for _, h := range s.assets.Handles() {
		switch s.assets.State(h) {
		case assets.Loaded:
		case assets.Failed:
			ready = false
			if !s.reported[h] {
				s.reported[h] = true
				s.failed = append(s.failed, s.assets.Path(h))
				s.log.Error("asset failed to load", "path", s.assets.Path(h), "err", s.assets.Err(h))
			}
		default:
			ready = false
			pending = append(pending, s.assets.Path(h))
		}
	}

	if ready {
		if art, ok := s.assets.Resolve(); ok {
			s.art = &art
		}
		return true
	}

	if warn := s.cfg.Session.LoadingWarnAfter.Seconds(); warn > 0 && s.loadingFor >= s.nextWarn {
		s.nextWarn += warn
		s.log.Warn("assets still loading",
			"elapsed", time.Duration(s.loadingFor*float64(time.Second)).Round(time.Millisecond),
			"pending", strings.Join(pending, ","),
			"failed", strings.Join(s.failed, ","))
	}
	return false
}
