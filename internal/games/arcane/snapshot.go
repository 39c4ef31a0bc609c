package arcane

import (
	"slices"

	"github.com/vovakirdan/arcane-flight/internal/config"
	"github.com/vovakirdan/arcane-flight/internal/core"
)

// Snapshot is a read-only copy of everything a renderer needs for one frame.
// Mutating it never affects the simulation.
type Snapshot struct {
	Phase      Phase
	CanSelect  bool // Character select screen is enabled
	Tick       int
	Score      int
	Best       int
	Cause      CrashCause
	Playfield  config.ArcanePlayfield
	Character  config.Character
	Chosen     bool
	Characters []config.Character

	Player    Player
	Hazards   []HazardView
	Particles []Particle
	Stars     []Star
}

// HazardView is the renderable state of one hazard at the snapshot tick.
type HazardView struct {
	Kind   Kind
	Bounds core.Box   // Full footprint
	Boxes  []core.Box // Collidable parts right now
	Active bool       // False while a pulse wall is off
	Passed bool
	Pivot  [2]float64 // Pendulum anchor, zero for other kinds
}

// GroundY returns the ground line of the snapshot's playfield.
func (s Snapshot) GroundY() float64 {
	return s.Playfield.GroundY()
}

// PlayerBox returns the player's hitbox.
func (s Snapshot) PlayerBox() core.Box {
	return core.BoxAround(s.Player.X, s.Player.Y, s.Character.Hitbox)
}

// Snapshot captures the current state.
func (s *Sim) Snapshot() Snapshot {
	groundY := s.cfg.Playfield.GroundY()
	views := make([]HazardView, 0, len(s.hazards))
	for _, h := range s.hazards {
		v := HazardView{
			Kind:   h.Kind(),
			Bounds: h.Bounds(groundY),
			Boxes:  h.AppendBoxes(nil, s.tick, groundY),
			Active: true,
			Passed: h.base().Passed,
		}
		switch h := h.(type) {
		case *PulseWall:
			v.Active = h.Active(s.tick)
		case *SwingingOrb:
			v.Pivot[0], v.Pivot[1] = h.Pivot()
		}
		views = append(views, v)
	}

	return Snapshot{
		Phase:      s.phase,
		CanSelect:  s.cfg.CharacterSelect,
		Tick:       s.tick,
		Score:      s.score,
		Best:       s.best,
		Cause:      s.cause,
		Playfield:  s.cfg.Playfield,
		Character:  s.character,
		Chosen:     s.chosen,
		Characters: slices.Clone(s.cfg.Characters),
		Player:     s.player,
		Hazards:    views,
		Particles:  slices.Clone(s.particles),
		Stars:      slices.Clone(s.stars),
	}
}
