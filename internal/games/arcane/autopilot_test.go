package arcane

import (
	"testing"

	"github.com/vovakirdan/arcane-flight/internal/config"
	"github.com/vovakirdan/arcane-flight/internal/core"
)

func TestAutopilotAimsForGateGap(t *testing.T) {
	snap := Snapshot{
		Playfield: config.DefaultArcaneConfig().Playfield,
		Character: config.Character{Hitbox: 12},
		Player:    Player{X: 210, Y: 300, VY: 1},
		Hazards: []HazardView{{
			Kind:   KindGate,
			Bounds: core.Box{Left: 400, Right: 456, Bottom: 464},
			Boxes: []core.Box{
				{Left: 400, Top: 0, Right: 456, Bottom: 100},
				{Left: 400, Top: 260, Right: 456, Bottom: 464},
			},
		}},
	}

	if !Autopilot(snap) {
		t.Error("falling below the gap should flap")
	}

	snap.Player.Y = 150
	if Autopilot(snap) {
		t.Error("above the gap center should not flap")
	}

	snap.Player.Y = 300
	snap.Player.VY = -3
	if Autopilot(snap) {
		t.Error("already rising should not flap")
	}
}

func TestAutopilotSkipsPassedHazards(t *testing.T) {
	snap := Snapshot{
		Playfield: config.DefaultArcaneConfig().Playfield,
		Character: config.Character{Hitbox: 12},
		Player:    Player{X: 210, Y: 300, VY: 1},
		Hazards: []HazardView{{
			Kind:   KindTopSpire,
			Bounds: core.Box{Left: 50, Right: 106, Bottom: 380},
		}},
	}
	// The spire is behind the player, so the pilot aims for mid-field (232).
	if !Autopilot(snap) {
		t.Error("below mid-field and falling should flap")
	}
}

func TestAutopilotSurvivesOpeningWaves(t *testing.T) {
	s := NewSim(config.DefaultArcaneConfig(), 1)
	s.Choose("gold")
	s.Flap()

	// Before the first wave arrives the pilot only has to hold altitude.
	for i := 0; i < 300; i++ {
		in := core.NewInputFrame()
		if Autopilot(s.Snapshot()) {
			in.Set(core.ActionJump)
		}
		s.Step(in)
	}
	if s.Phase() == PhaseDead && s.Cause() == CrashBoundary {
		t.Error("autopilot flew into the floor or ceiling")
	}
}
