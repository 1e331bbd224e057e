// Package game is the runtime core of the flappy session: the phase machine,
// the speed and scroll controller, the obstacle generator, the translation of
// physics contacts into game events, and the tick driver that runs them in order.
package game

import "fmt"

// Stage is the outer case of a Phase.
type Stage int

const (
	StageLaunching Stage = iota
	StageInGame
)

// SubPhase is the inner case of a Phase. Loading and ReadyToLaunch belong to
// StageLaunching; the rest belong to StageInGame.
type SubPhase int

const (
	SubLoading SubPhase = iota
	SubReadyToLaunch
	SubInitializing
	SubReadyToStart
	SubPlaying
)

// Phase is the current stage of a session. The zero value is Loading.
type Phase struct {
	Stage Stage
	Sub   SubPhase
}

func PhaseLoading() Phase { return Phase{StageLaunching, SubLoading} }
func PhaseReadyToLaunch() Phase { return Phase{StageLaunching, SubReadyToLaunch} }
func PhaseInitializing() Phase { return Phase{StageInGame, SubInitializing} }
func PhaseReadyToStart() Phase { return Phase{StageInGame, SubReadyToStart} }
func PhasePlaying() Phase { return Phase{StageInGame, SubPlaying} }

// InGame reports whether the world exists.
func (p Phase) InGame() bool {
	return p.Stage == StageInGame
}

func (p Phase) String() string {
	var stage string
	switch p.Stage {
	case StageLaunching:
		stage = "launching"
	case StageInGame:
		stage = "in_game"
	default:
		return fmt.Sprintf("phase(%d/%d)", p.Stage, p.Sub)
	}
	names := [...]string{"loading", "ready_to_launch", "initializing", "ready_to_start", "playing"}
	if p.Sub < 0 || int(p.Sub) >= len(names) {
		return fmt.Sprintf("%s/%d", stage, p.Sub)
	}
	return stage + "/" + names[p.Sub]
}

// Trigger is an external signal fed to the phase machine.
type Trigger int

const (
	TriggerAssetsLoaded Trigger = iota
	TriggerWorldSpawned
	TriggerStartInput
	TriggerLethalCollision
)

func (t Trigger) String() string {
	switch t {
	case TriggerAssetsLoaded:
		return "assets_loaded"
	case TriggerWorldSpawned:
		return "world_spawned"
	case TriggerStartInput:
		return "start_input"
	case TriggerLethalCollision:
		return "lethal_collision"
	default:
		return "unknown"
	}
}

// Next returns the phase that follows p on trigger t. The second result is
// false when t has no effect in p, in which case p is returned unchanged.
// With launchMenu set, Loading waits in ReadyToLaunch for a start input
// before the world is built.
func Next(p Phase, t Trigger, launchMenu bool) (Phase, bool) {
	switch {
	case p == PhaseLoading() && t == TriggerAssetsLoaded:
		if launchMenu {
			return PhaseReadyToLaunch(), true
		}
		return PhaseInitializing(), true
	case p == PhaseReadyToLaunch() && t == TriggerStartInput:
		return PhaseInitializing(), true
	case p == PhaseInitializing() && t == TriggerWorldSpawned:
		return PhaseReadyToStart(), true
	case p == PhaseReadyToStart() && t == TriggerStartInput:
		return PhasePlaying(), true
	case p == PhasePlaying() && t == TriggerLethalCollision:
		return PhaseReadyToStart(), true
	}
	return p, false
}
