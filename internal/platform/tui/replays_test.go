package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/replay"
)

type memStore struct {
	replays []replay.Replay
}

func (s *memStore) ListReplays(limit int) ([]replay.Replay, error) {
	if limit < len(s.replays) {
		return s.replays[:limit], nil
	}
	return s.replays, nil
}

func (s *memStore) DeleteReplay(id int64) error {
	for i, r := range s.replays {
		if r.ID == id {
			s.replays = append(s.replays[:i], s.replays[i+1:]...)
			break
		}
	}
	return nil
}

func fallingReplay(id int64) replay.Replay {
	return replay.Replay{
		ID:       id,
		Seed:     id,
		TickRate: 60,
		Ticks:    10000,
		Jumps:    []uint64{0},
		Config:   config.DefaultGameConfig(),
	}
}

func updateReplays(t *testing.T, m ReplaysModel, msg tea.Msg) ReplaysModel {
	t.Helper()
	next, _ := m.Update(msg)
	rm, ok := next.(ReplaysModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return rm
}

func TestReplaysModelResimulatesSelection(t *testing.T) {
	store := &memStore{replays: []replay.Replay{fallingReplay(1), fallingReplay(2)}}
	m := NewReplaysModel(store, nil, 80, 24)

	m = updateReplays(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.HasPrefix(m.Status(), "replay 1: score 0 in ") {
		t.Errorf("status = %q, expected a zero score for a replay with only the start press", m.Status())
	}
}

func TestReplaysModelDelete(t *testing.T) {
	store := &memStore{replays: []replay.Replay{fallingReplay(1), fallingReplay(2)}}
	m := NewReplaysModel(store, nil, 80, 24)

	m = updateReplays(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if m.Status() != "replay 1 deleted" {
		t.Errorf("status = %q", m.Status())
	}
	if len(store.replays) != 1 || len(m.replays) != 1 || m.replays[0].ID != 2 {
		t.Errorf("expected only replay 2 to remain, store=%v model=%v", store.replays, m.replays)
	}
}

func TestReplaysModelEmpty(t *testing.T) {
	m := NewReplaysModel(&memStore{}, nil, 80, 24)
	if !strings.Contains(m.View(), "No replays yet") {
		t.Errorf("View() = %q", m.View())
	}
	m = updateReplays(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Status() != "" {
		t.Errorf("enter on an empty table should do nothing, status = %q", m.Status())
	}
}
