package game

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
	"github.com/vovakirdan/tui-flappy/internal/physics"
)

// SpawnPlayer creates the player at the origin with gravity disabled.
func SpawnPlayer(w *World, radius float64) (ecs.Entity, error) {
	e := w.ECS.Spawn()
	w.Transforms.Set(e, Transform{})
	w.Players.Set(e, Player{Radius: radius})
	err := w.Physics.Add(e, physics.BodyDef{
		Kind:   physics.Dynamic,
		Shape:  physics.Circle(radius),
		LockX:  true,
		Groups: physics.Groups{Membership: physics.GroupPlayer, Filter: physics.GroupLethal | physics.GroupOpening},
	})
	if err != nil {
		w.ECS.Despawn(e)
		return ecs.None, fmt.Errorf("game: spawn player: %w", err)
	}
	return e, nil
}

// ResetPlayer puts the player back at the origin, at rest, with gravity off.
func ResetPlayer(w *World) {
	e, ok := w.Player()
	if !ok {
		return
	}
	w.Transforms.Set(e, Transform{})
	w.Physics.SetPosition(e, core.Vec2{})
	w.Physics.SetVelocity(e, core.Vec2{})
	w.Physics.SetGravityScale(e, 0)
}

// SetPlayerGravity sets the player's gravity scale.
func SetPlayerGravity(w *World, scale float64) {
	if e, ok := w.Player(); ok {
		w.Physics.SetGravityScale(e, scale)
	}
}

// Jump replaces the player's velocity with a straight upward impulse.
func Jump(w *World, impulse float64) {
	if e, ok := w.Player(); ok {
		w.Physics.SetVelocity(e, core.V(0, impulse))
	}
}

// SpawnGround creates the two-tile ground ring. Each tile is one field wide
// and anchored at its right edge.
func SpawnGround(w *World, cfg config.GameConfig) []ecs.Entity {
	y := -cfg.Field.Height/2 + cfg.World.GroundHeight/2
	tiles := make([]ecs.Entity, 0, 2)
	for _, right := range []float64{cfg.Field.Width / 2, 3 * cfg.Field.Width / 2} {
		e := w.ECS.Spawn()
		w.Transforms.Set(e, Transform{Pos: core.V(right, y)})
		w.Moves.Set(e, HorizontalMove{Factor: 1})
		w.Grounds.Set(e, Ground{Width: cfg.Field.Width, Height: cfg.World.GroundHeight})
		tiles = append(tiles, e)
	}
	return tiles
}

// SpawnBoundaries creates the lethal colliders above the field and below the
// ground. They never move and survive every reset.
func SpawnBoundaries(w *World, cfg config.GameConfig) ([]ecs.Entity, error) {
	halfT := cfg.World.BoundaryThickness / 2
	half := core.V(cfg.Field.Width/2, halfT)
	topY := halfT + cfg.Field.Height/2
	bottomY := -(halfT + cfg.Field.Height/2) + cfg.World.GroundHeight

	var out []ecs.Entity
	for _, y := range []float64{topY, bottomY} {
		e, err := spawnObstacle(w, KindLethalStatic, core.V(0, y), half, false)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
