package game

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
	"github.com/vovakirdan/tui-flappy/internal/physics"
)

// seqRand replays a fixed list of samples, cycling when exhausted.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func fixedRand(vals ...float64) func(int64) Rand {
	return func(int64) Rand { return &seqRand{vals: vals} }
}

func newTestGenerator(t *testing.T, cfg config.GameConfig, newRand func(int64) Rand) (*Generator, *World) {
	t.Helper()
	g, err := NewGenerator(cfg, 1, newRand)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g, NewWorld(cfg.Physics.Gravity)
}

func TestSpawnCarriesOvershoot(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Obstacles.GapExtraMin = 0
	cfg.Obstacles.GapExtraMax = 40
	g, w := newTestGenerator(t, cfg, fixedRand(0.5))

	g.Advance(95)
	pair, ok, err := g.Update(w)
	if err != nil || !ok {
		t.Fatalf("Update() = %v, %v; expected a spawn", ok, err)
	}
	if !near(pair.Jitter, 20) {
		t.Fatalf("jitter = %v, expected 20", pair.Jitter)
	}
	if !near(g.SinceLastSpawn(), -15) {
		t.Errorf("SinceLastSpawn() = %v, expected -15", g.SinceLastSpawn())
	}
	if g.Traveled() != 95 {
		t.Errorf("Traveled() = %v, expected 95", g.Traveled())
	}
}

func TestNoSpawnAtThreshold(t *testing.T) {
	g, w := newTestGenerator(t, config.DefaultGameConfig(), nil)

	g.Advance(90)
	if _, ok, _ := g.Update(w); ok {
		t.Error("spawned at exactly the threshold")
	}
	g.Advance(0.5)
	if _, ok, _ := g.Update(w); !ok {
		t.Error("did not spawn past the threshold")
	}
}

func TestOneSpawnPerUpdate(t *testing.T) {
	g, w := newTestGenerator(t, config.DefaultGameConfig(), fixedRand(0))

	g.Advance(1000)
	g.Update(w)
	if got := len(g.Live()); got != 1 {
		t.Fatalf("live pairs = %d, expected 1", got)
	}
	if !near(g.SinceLastSpawn(), 1000-90-90) {
		t.Errorf("SinceLastSpawn() = %v, expected %v", g.SinceLastSpawn(), 1000-90-90)
	}
}

func TestSpawnGeometry(t *testing.T) {
	cfg := config.DefaultGameConfig()
	g, w := newTestGenerator(t, cfg, fixedRand(0.25, 0.5))

	g.Advance(100)
	pair, _, _ := g.Update(w)

	wantJitter := 90 + 0.25*40
	if !near(pair.SpawnX, cfg.Field.Width/2+wantJitter) {
		t.Errorf("spawn x = %v, expected %v", pair.SpawnX, cfg.Field.Width/2+wantJitter)
	}

	lo, hi := cfg.OpeningRange()
	wantBottom := lo + 0.5*(hi-lo)
	if !near(pair.OpeningBottom, wantBottom) {
		t.Errorf("opening bottom = %v, expected %v", pair.OpeningBottom, wantBottom)
	}

	edges := []struct {
		name string
		got  float64
		want float64
	}{
		{"bottom pipe top edge", topEdge(w, pair.Bottom), wantBottom},
		{"top pipe bottom edge", bottomEdge(w, pair.Top), wantBottom + cfg.Obstacles.OpeningHeight},
		{"opening bottom edge", bottomEdge(w, pair.Opening), wantBottom},
		{"opening top edge", topEdge(w, pair.Opening), wantBottom + cfg.Obstacles.OpeningHeight},
	}
	for _, e := range edges {
		if !near(e.got, e.want) {
			t.Errorf("%s = %v, expected %v", e.name, e.got, e.want)
		}
	}

	kinds := map[ObstacleKind]int{}
	w.Obstacles.Each(func(_ ecs.Entity, o *Obstacle) { kinds[o.Kind]++ })
	if kinds[KindLethalMoving] != 2 || kinds[KindOpening] != 1 {
		t.Errorf("obstacle kinds = %v", kinds)
	}
}

func TestOpeningStaysWithinMargins(t *testing.T) {
	cfg := config.DefaultGameConfig()
	samples := []float64{0, 0.999999, 0.37, 0.5, 0.01, 0.99}
	g, w := newTestGenerator(t, cfg, fixedRand(samples...))

	minBottom := -cfg.Field.Height/2 + cfg.Obstacles.OpeningBottomMargin
	maxTop := cfg.Field.Height/2 - cfg.Obstacles.OpeningTopMargin

	for i := 0; i < 50; i++ {
		g.Advance(300)
		pair, ok, err := g.Update(w)
		if err != nil || !ok {
			t.Fatalf("spawn %d: ok=%v err=%v", i, ok, err)
		}
		if pair.OpeningBottom < minBottom {
			t.Errorf("spawn %d: opening bottom %v below %v", i, pair.OpeningBottom, minBottom)
		}
		if gapTop := pair.OpeningBottom + cfg.Obstacles.OpeningHeight; gapTop > maxTop {
			t.Errorf("spawn %d: opening top %v above %v", i, gapTop, maxTop)
		}
	}
}

func TestSpawnSpacing(t *testing.T) {
	cfg := config.DefaultGameConfig()
	g, w := newTestGenerator(t, cfg, nil)
	speed := NewSpeedController(cfg.Speed)
	dt := 1.0 / 60

	var spawns []float64
	for i := 0; i < 60*120; i++ {
		g.Advance(speed.Delta(dt, 1))
		speed.Advance(dt)
		if pair, ok, _ := g.Update(w); ok {
			spawns = append(spawns, pair.SpawnedAt)
		}
	}

	if len(spawns) < 10 {
		t.Fatalf("only %d spawns in two minutes", len(spawns))
	}
	for i := 1; i < len(spawns); i++ {
		if gap := spawns[i] - spawns[i-1]; gap < cfg.Obstacles.MinGapThreshold {
			t.Errorf("spawns %d and %d only %v apart", i-1, i, gap)
		}
	}
}

func TestDespawnIsTerminal(t *testing.T) {
	cfg := config.DefaultGameConfig()
	g, w := newTestGenerator(t, cfg, nil)
	speed := NewSpeedController(cfg.Speed)

	g.Advance(100)
	pair, _, _ := g.Update(w)

	if gone := g.DespawnPassed(w); len(gone) != 0 {
		t.Fatalf("despawned %d pairs still on screen", len(gone))
	}

	for {
		w.Scroll(speed, 0.1)
		if x, _ := w.Transforms.Get(pair.Bottom); x.Pos.X < g.DespawnThreshold() {
			break
		}
	}

	gone := g.DespawnPassed(w)
	if len(gone) != 1 || gone[0].Bottom != pair.Bottom {
		t.Fatalf("DespawnPassed() = %v, expected the spawned pair", gone)
	}
	for _, e := range []ecs.Entity{pair.Bottom, pair.Top, pair.Opening} {
		if w.ECS.Alive(e) || w.Physics.Has(e) {
			t.Errorf("entity %v survived despawn", e)
		}
	}
	if again := g.DespawnPassed(w); len(again) != 0 {
		t.Errorf("second DespawnPassed() = %v, expected nothing", again)
	}
	if w.Despawn(pair.Bottom) {
		t.Error("despawning a removed entity reported success")
	}
}

func TestGeneratorReset(t *testing.T) {
	cfg := config.DefaultGameConfig()
	g, w := newTestGenerator(t, cfg, nil)
	walls, err := SpawnBoundaries(w, cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		g.Advance(250)
		g.Update(w)
	}
	if len(g.Live()) != 3 {
		t.Fatalf("live pairs = %d, expected 3", len(g.Live()))
	}

	g.Reset(w, 9)

	if len(g.Live()) != 0 || g.Traveled() != 0 || g.SinceLastSpawn() != 0 || g.SpawnCount() != 0 {
		t.Errorf("after Reset live=%d traveled=%v since=%v count=%d",
			len(g.Live()), g.Traveled(), g.SinceLastSpawn(), g.SpawnCount())
	}
	if got := w.Obstacles.Len(); got != len(walls) {
		t.Errorf("obstacles after reset = %d, expected only the %d boundaries", got, len(walls))
	}
	for _, e := range walls {
		if !w.ECS.Alive(e) {
			t.Errorf("boundary %v removed by reset", e)
		}
	}
}

func TestResetReseedsDeterministically(t *testing.T) {
	cfg := config.DefaultGameConfig()
	run := func() []float64 {
		g, w := newTestGenerator(t, cfg, nil)
		g.Advance(500)
		g.Update(w)
		g.Reset(w, 77)
		var out []float64
		for i := 0; i < 5; i++ {
			g.Advance(250)
			p, _, _ := g.Update(w)
			out = append(out, p.OpeningBottom, p.Jitter)
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestNewGeneratorRejectsInvertedOpening(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Obstacles.OpeningBottomMargin = 300

	_, err := NewGenerator(cfg, 1, nil)
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("NewGenerator() error = %v, expected ErrInvalid", err)
	}
}

func topEdge(w *World, e ecs.Entity) float64 {
	t, _ := w.Transforms.Get(e)
	o, _ := w.Obstacles.Get(e)
	return t.Pos.Y + o.Half.Y
}

func bottomEdge(w *World, e ecs.Entity) float64 {
	t, _ := w.Transforms.Get(e)
	o, _ := w.Obstacles.Get(e)
	return t.Pos.Y - o.Half.Y
}

// entityAt builds the id a fresh ecs.World hands out for slot index at generation gen.
func entityAt(index, gen uint32) ecs.Entity {
	return ecs.Entity(uint64(gen)<<32 | uint64(index))
}

func TestFailedSpawnLeavesNoParts(t *testing.T) {
	g, w := newTestGenerator(t, config.DefaultGameConfig(), fixedRand(0.5))

	// Occupy the top pipe's id so the second part of the pair fails to register
	if err := w.Physics.Add(entityAt(1, 1), physics.BodyDef{Kind: physics.Fixed}); err != nil {
		t.Fatal(err)
	}

	g.Advance(200)
	if _, ok, err := g.Update(w); err == nil || ok {
		t.Fatalf("Update() = %v, %v; expected a spawn error", ok, err)
	}
	if w.ECS.Len() != 0 || w.Obstacles.Len() != 0 {
		t.Errorf("partial pair left behind: %d entities, %d obstacles", w.ECS.Len(), w.Obstacles.Len())
	}
	if w.Physics.Len() != 1 {
		t.Errorf("physics bodies = %d, expected only the pre-registered one", w.Physics.Len())
	}
	if len(g.Live()) != 0 || g.SinceLastSpawn() != 200 {
		t.Errorf("failed spawn changed generator state: live=%d since=%v", len(g.Live()), g.SinceLastSpawn())
	}
}
