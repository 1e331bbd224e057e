package game

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
	"github.com/vovakirdan/tui-flappy/internal/physics"
)

// Transform is a world position. Obstacles and the player use their center,
// ground tiles use their right edge.
type Transform struct {
	Pos core.Vec2
}

// HorizontalMove marks an entity that scrolls left with the world.
type HorizontalMove struct {
	Factor float64
}

// Ground is one tile of the scrolling ground ring.
type Ground struct {
	Width  float64
	Height float64
}

// ObstacleKind classifies what touching an obstacle does.
type ObstacleKind int

const (
	KindLethalMoving ObstacleKind = iota
	KindLethalStatic
	KindOpening
)

func (k ObstacleKind) String() string {
	switch k {
	case KindLethalMoving:
		return "lethal_moving"
	case KindLethalStatic:
		return "lethal_static"
	case KindOpening:
		return "opening"
	default:
		return "unknown"
	}
}

// Lethal reports whether contact with this kind ends the attempt.
func (k ObstacleKind) Lethal() bool {
	return k == KindLethalMoving || k == KindLethalStatic
}

// Obstacle tags a collider the player can touch.
type Obstacle struct {
	Kind ObstacleKind
	Half core.Vec2
}

// Player tags the controllable entity.
type Player struct {
	Radius float64
}

// World groups the entity store with its component stores and physics bodies.
type World struct {
	ECS     *ecs.World
	Physics *physics.World

	Transforms *ecs.Store[Transform]
	Moves      *ecs.Store[HorizontalMove]
	Grounds    *ecs.Store[Ground]
	Obstacles  *ecs.Store[Obstacle]
	Players    *ecs.Store[Player]
}

// NewWorld creates an empty world with vertical gravity.
func NewWorld(gravity float64) *World {
	w := ecs.NewWorld()
	return &World{
		ECS:        w,
		Physics:    physics.NewWorld(core.V(0, gravity)),
		Transforms: ecs.NewStore[Transform](w),
		Moves:      ecs.NewStore[HorizontalMove](w),
		Grounds:    ecs.NewStore[Ground](w),
		Obstacles:  ecs.NewStore[Obstacle](w),
		Players:    ecs.NewStore[Player](w),
	}
}

// Despawn removes e and its body. It returns false if e was already gone.
func (w *World) Despawn(e ecs.Entity) bool {
	w.Physics.Remove(e)
	return w.ECS.Despawn(e)
}

// Player returns the single player entity, if any.
func (w *World) Player() (ecs.Entity, bool) {
	e, _, ok := w.Players.Single()
	return e, ok
}

// Scroll moves every horizontally moving entity left by its share of the
// scroll for dt seconds.
func (w *World) Scroll(speed *SpeedController, dt float64) {
	w.Moves.Each(func(e ecs.Entity, mv *HorizontalMove) {
		if t := w.Transforms.Ptr(e); t != nil {
			t.Pos.X -= speed.Delta(dt, mv.Factor)
		}
	})
}

// WrapGround moves any ground tile whose right edge fell behind leftEdge
// forward by twice the field width.
func (w *World) WrapGround(leftEdge, fieldWidth float64) int {
	n := 0
	w.Grounds.Each(func(e ecs.Entity, _ *Ground) {
		t := w.Transforms.Ptr(e)
		if t != nil && t.Pos.X < leftEdge {
			t.Pos.X += 2 * fieldWidth
			n++
		}
	})
	return n
}

// SyncBodies copies transforms into kinematic bodies before a physics step.
func (w *World) SyncBodies() {
	w.Obstacles.Each(func(e ecs.Entity, _ *Obstacle) {
		if t, ok := w.Transforms.Get(e); ok {
			w.Physics.SetPosition(e, t.Pos)
		}
	})
}

// SyncPlayer copies the simulated player position back into its transform.
func (w *World) SyncPlayer() {
	e, ok := w.Player()
	if !ok {
		return
	}
	if p, ok := w.Physics.Position(e); ok {
		w.Transforms.Set(e, Transform{Pos: p})
	}
}
