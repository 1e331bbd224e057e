package game

import "testing"

func TestNextTransitions(t *testing.T) {
	tests := []struct {
		name       string
		from       Phase
		trigger    Trigger
		launchMenu bool
		to         Phase
		ok         bool
	}{
		{"assets loaded", PhaseLoading(), TriggerAssetsLoaded, false, PhaseInitializing(), true},
		{"assets loaded with menu", PhaseLoading(), TriggerAssetsLoaded, true, PhaseReadyToLaunch(), true},
		{"menu start", PhaseReadyToLaunch(), TriggerStartInput, true, PhaseInitializing(), true},
		{"world spawned", PhaseInitializing(), TriggerWorldSpawned, false, PhaseReadyToStart(), true},
		{"start input", PhaseReadyToStart(), TriggerStartInput, false, PhasePlaying(), true},
		{"lethal collision", PhasePlaying(), TriggerLethalCollision, false, PhaseReadyToStart(), true},

		{"input while loading", PhaseLoading(), TriggerStartInput, false, PhaseLoading(), false},
		{"lethal while ready", PhaseReadyToStart(), TriggerLethalCollision, false, PhaseReadyToStart(), false},
		{"input while playing", PhasePlaying(), TriggerStartInput, false, PhasePlaying(), false},
		{"assets loaded twice", PhaseInitializing(), TriggerAssetsLoaded, false, PhaseInitializing(), false},
		{"spawned while ready", PhaseReadyToStart(), TriggerWorldSpawned, false, PhaseReadyToStart(), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Next(tc.from, tc.trigger, tc.launchMenu)
			if got != tc.to || ok != tc.ok {
				t.Errorf("Next(%v, %v) = %v, %v; expected %v, %v", tc.from, tc.trigger, got, ok, tc.to, tc.ok)
			}
		})
	}
}

func TestPhaseZeroValueIsLoading(t *testing.T) {
	var p Phase
	if p != PhaseLoading() {
		t.Errorf("zero Phase = %v, expected loading", p)
	}
	if p.InGame() {
		t.Error("loading should not be in game")
	}
	if !PhasePlaying().InGame() {
		t.Error("playing should be in game")
	}
}

func TestPhaseString(t *testing.T) {
	if got := PhaseReadyToStart().String(); got != "in_game/ready_to_start" {
		t.Errorf("String() = %q", got)
	}
	if got := PhaseReadyToLaunch().String(); got != "launching/ready_to_launch" {
		t.Errorf("String() = %q", got)
	}
}
