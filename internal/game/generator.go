package game

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
	"github.com/vovakirdan/tui-flappy/internal/physics"
)

// Rand is the random source the generator samples from.
type Rand interface {
	Float64() float64
}

// NewMathRand returns a seeded math/rand source.
func NewMathRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// ObstaclePair is one spawned obstacle: two lethal pipes and the opening sensor between them.
type ObstaclePair struct {
	Bottom, Top, Opening ecs.Entity
	OpeningBottom        float64 // World y of the gap's lower edge
	SpawnX               float64
	Jitter               float64
	SpawnedAt            float64 // Traveled distance at spawn
}

// Generator spawns obstacle pairs as the world scrolls and removes them once
// they pass behind the left edge.
type Generator struct {
	cfg        config.ObstacleConfig
	fieldW     float64
	openLo     float64
	openHi     float64
	newRand    func(seed int64) Rand
	rng        Rand
	traveled   float64
	sinceLast  float64
	live       []ObstaclePair
	spawnCount int
}

// NewGenerator validates the obstacle geometry and creates a generator seeded with seed.
// newRand may be nil to use math/rand.
func NewGenerator(cfg config.GameConfig, seed int64, newRand func(int64) Rand) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: obstacle generator: %w", err)
	}
	if newRand == nil {
		newRand = NewMathRand
	}
	lo, hi := cfg.OpeningRange()
	return &Generator{
		cfg:     cfg.Obstacles,
		fieldW:  cfg.Field.Width,
		openLo:  lo,
		openHi:  hi,
		newRand: newRand,
		rng:     newRand(seed),
	}, nil
}

// Traveled returns the distance scrolled since the last reset.
func (g *Generator) Traveled() float64 { return g.traveled }

// SinceLastSpawn returns the distance accumulated toward the next spawn.
// It can be negative right after a spawn.
func (g *Generator) SinceLastSpawn() float64 { return g.sinceLast }

// Live returns the obstacle pairs currently in the world, oldest first.
func (g *Generator) Live() []ObstaclePair { return g.live }

// SpawnCount returns the number of pairs spawned since the last reset.
func (g *Generator) SpawnCount() int { return g.spawnCount }

// Advance adds one tick of scroll distance.
func (g *Generator) Advance(delta float64) {
	g.traveled += delta
	g.sinceLast += delta
}

// Update spawns at most one pair when enough distance has accumulated.
// The spawn threshold plus jitter is subtracted rather than zeroed so the
// overshoot of a long tick carries into the next gap.
func (g *Generator) Update(w *World) (ObstaclePair, bool, error) {
	if g.sinceLast <= g.cfg.MinGapThreshold {
		return ObstaclePair{}, false, nil
	}
	jitter := g.cfg.GapExtraMin + g.rng.Float64()*(g.cfg.GapExtraMax-g.cfg.GapExtraMin)
	bottom := g.openLo + g.rng.Float64()*(g.openHi-g.openLo)
	x := g.fieldW/2 + jitter

	pair, err := g.spawn(w, x, bottom)
	if err != nil {
		return ObstaclePair{}, false, err
	}
	pair.Jitter = jitter
	pair.SpawnedAt = g.traveled

	g.sinceLast -= g.cfg.MinGapThreshold + jitter
	g.live = append(g.live, pair)
	g.spawnCount++
	return pair, true, nil
}

func (g *Generator) spawn(w *World, x, bottom float64) (ObstaclePair, error) {
	halfW := g.cfg.Width / 2
	halfH := g.cfg.Height / 2
	opening := g.cfg.OpeningHeight

	pair := ObstaclePair{OpeningBottom: bottom, SpawnX: x}
	parts := []struct {
		dst  *ecs.Entity
		kind ObstacleKind
		y    float64
		half core.Vec2
	}{
		{&pair.Bottom, KindLethalMoving, bottom - halfH, core.V(halfW, halfH)},
		{&pair.Top, KindLethalMoving, bottom + opening + halfH, core.V(halfW, halfH)},
		{&pair.Opening, KindOpening, bottom + opening/2, core.V(halfW, opening/2)},
	}
	created := make([]ecs.Entity, 0, len(parts))
	for _, p := range parts {
		e, err := spawnObstacle(w, p.kind, core.V(x, p.y), p.half, true)
		if err != nil {
			for _, c := range created {
				w.Despawn(c)
			}
			return ObstaclePair{}, err
		}
		created = append(created, e)
		*p.dst = e
	}
	return pair, nil
}

// spawnObstacle creates a tagged obstacle entity with a non-dynamic body.
func spawnObstacle(w *World, kind ObstacleKind, pos, half core.Vec2, moving bool) (ecs.Entity, error) {
	e := w.ECS.Spawn()
	w.Transforms.Set(e, Transform{Pos: pos})
	w.Obstacles.Set(e, Obstacle{Kind: kind, Half: half})

	def := physics.BodyDef{
		Kind:     physics.Fixed,
		Shape:    physics.Cuboid(half.X, half.Y),
		Position: pos,
		Groups:   physics.Groups{Membership: physics.GroupLethal, Filter: physics.GroupPlayer},
	}
	if kind == KindOpening {
		def.Groups.Membership = physics.GroupOpening
	}
	if moving {
		def.Kind = physics.Kinematic
		w.Moves.Set(e, HorizontalMove{Factor: 1})
	}
	if err := w.Physics.Add(e, def); err != nil {
		w.ECS.Despawn(e)
		return ecs.None, fmt.Errorf("game: spawn %s obstacle: %w", kind, err)
	}
	return e, nil
}

// DespawnThreshold is the x a pair's center must fall below to be removed.
func (g *Generator) DespawnThreshold() float64 {
	return -g.cfg.DespawnMargin - g.fieldW/2
}

// DespawnPassed removes every pair that scrolled fully behind the left edge
// and returns them. A removed pair is never returned again.
func (g *Generator) DespawnPassed(w *World) []ObstaclePair {
	limit := g.DespawnThreshold()
	var gone []ObstaclePair
	kept := g.live[:0]
	for _, p := range g.live {
		t, ok := w.Transforms.Get(p.Bottom)
		if ok && t.Pos.X >= limit {
			kept = append(kept, p)
			continue
		}
		despawnPair(w, p)
		gone = append(gone, p)
	}
	g.live = kept
	return gone
}

// Reset despawns every live pair, zeroes both distances and reseeds.
func (g *Generator) Reset(w *World, seed int64) {
	for _, p := range g.live {
		despawnPair(w, p)
	}
	g.live = g.live[:0]
	g.traveled = 0
	g.sinceLast = 0
	g.spawnCount = 0
	g.rng = g.newRand(seed)
}

func despawnPair(w *World, p ObstaclePair) {
	w.Despawn(p.Bottom)
	w.Despawn(p.Top)
	w.Despawn(p.Opening)
}
