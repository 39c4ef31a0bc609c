package arcane

import "github.com/vovakirdan/arcane-flight/internal/core"

// Autopilot returns whether a simple pilot would flap this tick.
// It steers toward the safest height in front of the next hazard.
// It is good enough for demos and snapshots, not for high scores.
func Autopilot(s Snapshot) bool {
	target := s.GroundY() * 0.5
	if h, ok := nextHazard(s); ok {
		target = safeHeight(h, s.GroundY(), target)
	}
	// A flap can lift the player ~75 px above the point where it fired.
	target = core.ClampF(target, 90, s.GroundY()-40)
	p := s.Player
	return p.Y > target && p.VY >= 0
}

func nextHazard(s Snapshot) (HazardView, bool) {
	reach := s.Player.X - s.Character.Hitbox
	for _, h := range s.Hazards {
		if h.Bounds.Right > reach {
			return h, true
		}
	}
	return HazardView{}, false
}

func safeHeight(h HazardView, groundY, fallback float64) float64 {
	switch h.Kind {
	case KindTopSpire:
		return (h.Bounds.Bottom + groundY) / 2
	case KindBottomSpire:
		return h.Bounds.Top / 2
	case KindGate:
		if len(h.Boxes) == 2 {
			return (h.Boxes[0].Bottom + h.Boxes[1].Top) / 2
		}
	case KindSwingingOrb:
		return (h.Bounds.Bottom + groundY) / 2
	case KindFloatingRune, KindPulseWall, KindRuneWheel:
		above := h.Bounds.Top / 2
		below := (h.Bounds.Bottom + groundY) / 2
		if h.Bounds.Top > groundY-h.Bounds.Bottom {
			return above
		}
		return below
	}
	return fallback
}
