// Package replay records the inputs of an attempt and re-simulates them headlessly.
// An attempt is a pure function of its config, seed, tick rate and jump ticks.
package replay

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/game"
)

// Replay is one recorded attempt.
type Replay struct {
	ID        int64
	Seed      int64    // Generator seed of the attempt
	TickRate  int      // Fixed ticks per second
	Ticks     uint64   // Attempt length, ending on the lethal tick
	Jumps     []uint64 // Attempt ticks with a jump press, ascending
	Config    config.GameConfig
	CreatedAt time.Time
}

// Result is the outcome of a re-simulation.
type Result struct {
	Score uint64
	Ticks uint64
	Ended bool // A lethal collision ended the attempt
}

// ErrNoStart is returned when the session never reaches ReadyToStart.
var ErrNoStart = errors.New("replay: session did not reach ready_to_start")

// maxSetupTicks bounds the ticks spent before an attempt starts.
const maxSetupTicks = 16

// Recorder collects jump ticks for the current attempt.
type Recorder struct {
	tickRate int
	cfg      config.GameConfig
	jumps    []uint64
}

// NewRecorder creates a recorder for sessions ticking at tickRate.
func NewRecorder(cfg config.GameConfig, tickRate int) *Recorder {
	return &Recorder{cfg: cfg, tickRate: tickRate}
}

// Observe must be called before each Session.Tick with that tick's input.
func (r *Recorder) Observe(s *game.Session, in core.InputFrame) {
	p := s.Phase()
	if p == game.PhaseReadyToStart() && s.AttemptTick() == 0 {
		r.jumps = r.jumps[:0]
	}
	if (p == game.PhaseReadyToStart() || p == game.PhasePlaying()) && in.Has(core.ActionJump) {
		r.jumps = append(r.jumps, s.AttemptTick())
	}
}

// Finish turns the recorded jumps into a Replay of the ended attempt and
// starts a fresh recording.
func (r *Recorder) Finish(sum game.AttemptSummary) Replay {
	rep := Replay{
		Seed:     sum.Seed,
		TickRate: r.tickRate,
		Ticks:    sum.Ticks,
		Jumps:    append([]uint64(nil), r.jumps...),
		Config:   r.cfg,
	}
	r.jumps = r.jumps[:0]
	return rep
}

// Run re-simulates rep with fixed ticks and returns the result.
func Run(rep Replay, logger *log.Logger) (Result, error) {
	cfg := rep.Config
	cfg.Session.LaunchMenu = false

	s, err := game.NewSession(cfg, game.Deps{Logger: logger, Seed: rep.Seed})
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}
	dt := core.RuntimeConfig{TickRate: rep.TickRate}.TickSeconds()

	none := core.NewInputFrame()
	for i := 0; s.Phase() != game.PhaseReadyToStart(); i++ {
		if i >= maxSetupTicks {
			return Result{}, ErrNoStart
		}
		s.Tick(none, dt)
	}

	jumps := make(map[uint64]bool, len(rep.Jumps))
	for _, j := range rep.Jumps {
		jumps[j] = true
	}

	for tick := uint64(0); tick < rep.Ticks; tick++ {
		in := none
		if jumps[tick] {
			in = core.JumpFrame()
		}
		res := s.Tick(in, dt)
		if res.Ended != nil {
			return Result{Score: res.Ended.Score, Ticks: res.Ended.Ticks, Ended: true}, nil
		}
	}
	return Result{Score: s.Score(), Ticks: rep.Ticks}, nil
}

// EncodeJumps formats jump ticks as a comma-separated list.
func EncodeJumps(jumps []uint64) string {
	parts := make([]string, len(jumps))
	for i, j := range jumps {
		parts[i] = strconv.FormatUint(j, 10)
	}
	return strings.Join(parts, ",")
}

// DecodeJumps parses the output of EncodeJumps.
func DecodeJumps(s string) ([]uint64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]uint64, 0, len(parts))
	for _, p := range parts {
		j, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("replay: bad jump tick %q: %w", p, err)
		}
		out = append(out, j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out, nil
}
