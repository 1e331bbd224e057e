package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/game"
	"github.com/vovakirdan/tui-flappy/internal/replay"
)

type memSaver struct {
	saved []replay.Replay
}

func (s *memSaver) SaveReplay(r replay.Replay) (int64, error) {
	s.saved = append(s.saved, r)
	return int64(len(s.saved)), nil
}

func TestMapKeyToFrame(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		jump     bool
		quitting bool
	}{
		{"space flaps", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, true, false},
		{"up flaps", tea.KeyMsg{Type: tea.KeyUp}, true, false},
		{"w flaps", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, true, false},
		{"q quits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, false, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, false, true},
		{"other key ignored", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, false, false},
	}

	keys := DefaultKeyMap()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			quit := keys.MapKeyToFrame(tc.msg, &frame)
			if quit != tc.quitting {
				t.Errorf("quit = %v, expected %v", quit, tc.quitting)
			}
			if frame.Has(core.ActionJump) != tc.jump {
				t.Errorf("jump = %v, expected %v", frame.Has(core.ActionJump), tc.jump)
			}
		})
	}
}

func TestMapMouseToFrame(t *testing.T) {
	frame := core.NewInputFrame()
	MapMouseToFrame(tea.MouseMsg{Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}, &frame)
	if frame.Has(core.ActionJump) {
		t.Error("mouse motion should not flap")
	}
	MapMouseToFrame(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	if !frame.Has(core.ActionJump) {
		t.Error("left click should flap")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColor(0, 0, "hi", core.ColorRed)
	s.DrawText(0, 1, "there")

	out := RenderScreen(s)
	if !strings.Contains(out, "hi") || !strings.Contains(out, "there") {
		t.Errorf("RenderScreen() = %q, expected both rows", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected exactly one row separator, got %q", out)
	}
}

func newTestModel(t *testing.T, saver ReplaySaver) Model {
	t.Helper()
	m, err := NewModel(Options{
		Game:    config.DefaultGameConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7},
		Store:   saver,
	})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm
}

// waitReady ticks until the embedded assets are loaded and an attempt can start.
func waitReady(t *testing.T, m Model) Model {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for m.Session().Phase() != game.PhaseReadyToStart() {
		if time.Now().After(deadline) {
			t.Fatalf("session stuck in %s", m.Session().Phase())
		}
		m = step(t, m, TickMsg(time.Now()))
		time.Sleep(time.Millisecond)
	}
	return m
}

func TestModelRecordsReplayOfEndedAttempt(t *testing.T) {
	saver := &memSaver{}
	m := waitReady(t, newTestModel(t, saver))

	m = step(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	for i := 0; i < 2000 && len(saver.saved) == 0; i++ {
		m = step(t, m, TickMsg(time.Now()))
	}
	if len(saver.saved) != 1 {
		t.Fatalf("saved %d replays, expected 1", len(saver.saved))
	}

	rep := saver.saved[0]
	if rep.Seed != 7 || rep.TickRate != 60 {
		t.Errorf("replay seed/tick rate = %d/%d, expected 7/60", rep.Seed, rep.TickRate)
	}
	if len(rep.Jumps) != 1 || rep.Jumps[0] != 0 {
		t.Errorf("jumps = %v, expected the start press at tick 0", rep.Jumps)
	}

	res, err := replay.Run(rep, nil)
	if err != nil {
		t.Fatalf("replay.Run() failed: %v", err)
	}
	if !res.Ended || res.Ticks != rep.Ticks {
		t.Errorf("re-simulation = %+v, expected an end after %d ticks", res, rep.Ticks)
	}
	if m.Session().Phase() != game.PhaseReadyToStart() {
		t.Errorf("phase after the attempt = %s, expected ready_to_start", m.Session().Phase())
	}
}

func TestModelViewAndQuit(t *testing.T) {
	m := newTestModel(t, nil)

	if view := m.View(); !strings.Contains(view, "flap") {
		t.Errorf("View() should include the key help, got %q", view)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit key should return a command")
	}
	if next.(Model).View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelResizeKeepsHelpRow(t *testing.T) {
	m := step(t, newTestModel(t, nil), tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, expected 100x29", m.screen.Width(), m.screen.Height())
	}
}
