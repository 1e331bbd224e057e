package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionJump) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionJump)
	if !f.Has(ActionJump) {
		t.Error("Set(ActionJump) should be visible through Has")
	}
	if f.Has(ActionQuit) {
		t.Error("unrelated action should not be set")
	}

	f.Clear()
	if f.Has(ActionJump) {
		t.Error("Clear should drop all actions")
	}

	if !JumpFrame().Has(ActionJump) {
		t.Error("JumpFrame should carry the jump action")
	}
}

func TestTickSeconds(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.TickSeconds(); got != 1.0/60.0 {
		t.Errorf("TickSeconds() = %v, expected 1/60", got)
	}
	cfg.TickRate = 0
	if got := cfg.TickSeconds(); got != 1.0/60.0 {
		t.Errorf("TickSeconds() with zero rate = %v, expected 1/60 fallback", got)
	}
}
