package arcane

import (
	"math"

	"github.com/vovakirdan/arcane-flight/internal/core"
)

// Kind identifies a hazard shape.
type Kind uint8

const (
	KindTopSpire Kind = iota
	KindBottomSpire
	KindFloatingRune
	KindPulseWall
	KindSwingingOrb
	KindGate
	KindRuneWheel
)

// String returns the kind name used in logs and snapshots.
func (k Kind) String() string {
	switch k {
	case KindTopSpire:
		return "top-spire"
	case KindBottomSpire:
		return "bottom-spire"
	case KindFloatingRune:
		return "floating-rune"
	case KindPulseWall:
		return "pulse-wall"
	case KindSwingingOrb:
		return "swinging-orb"
	case KindGate:
		return "gate"
	case KindRuneWheel:
		return "rune-wheel"
	default:
		return "unknown"
	}
}

// Animation rates in radians per tick.
const (
	runeFreq  = 0.08
	pulseFreq = 0.11
	orbFreq   = 0.06
	wheelFreq = 0.05
)

// Hazard is one obstacle unit scrolling toward the player.
// The set of implementations is closed; every kind lives in this file.
type Hazard interface {
	Kind() Kind

	// AppendBoxes appends the collidable boxes at tick t to dst.
	// A hazard may contribute zero boxes (an inactive pulse wall).
	AppendBoxes(dst []core.Box, t int, groundY float64) []core.Box

	// Bounds returns the full area the hazard can ever occupy.
	Bounds(groundY float64) core.Box

	base() *hazardBase
}

// hazardBase holds the fields every hazard shares.
type hazardBase struct {
	X      float64 // Left edge, decreasing every tick
	Width  float64
	Passed bool    // Set once when the trailing edge clears the player
	Phase  float64 // Random animation offset in radians
}

func (h *hazardBase) base() *hazardBase { return h }

// TopSpire hangs from the ceiling.
type TopSpire struct {
	hazardBase
	Height float64
}

func (h *TopSpire) Kind() Kind { return KindTopSpire }

func (h *TopSpire) AppendBoxes(dst []core.Box, _ int, groundY float64) []core.Box {
	return append(dst, h.Bounds(groundY))
}

func (h *TopSpire) Bounds(float64) core.Box {
	return core.BoxAt(h.X, 0, h.Width, h.Height)
}

// BottomSpire rises from the ground.
type BottomSpire struct {
	hazardBase
	Height float64
}

func (h *BottomSpire) Kind() Kind { return KindBottomSpire }

func (h *BottomSpire) AppendBoxes(dst []core.Box, _ int, groundY float64) []core.Box {
	return append(dst, h.Bounds(groundY))
}

func (h *BottomSpire) Bounds(groundY float64) core.Box {
	return core.BoxAt(h.X, groundY-h.Height, h.Width, h.Height)
}

// FloatingRune bobs vertically around YBase.
type FloatingRune struct {
	hazardBase
	YBase float64
	Amp   float64
	Size  float64
}

func (h *FloatingRune) Kind() Kind { return KindFloatingRune }

// Top returns the rune's top edge at tick t.
func (h *FloatingRune) Top(t int) float64 {
	return h.YBase + math.Sin(float64(t)*runeFreq+h.Phase)*h.Amp
}

func (h *FloatingRune) AppendBoxes(dst []core.Box, t int, _ float64) []core.Box {
	return append(dst, core.BoxAt(h.X, h.Top(t), h.Width, h.Size))
}

func (h *FloatingRune) Bounds(float64) core.Box {
	return core.Box{Left: h.X, Top: h.YBase - h.Amp, Right: h.X + h.Width, Bottom: h.YBase + h.Amp + h.Size}
}

// PulseWall is a thin horizontal barrier that blinks on and off.
type PulseWall struct {
	hazardBase
	YBase     float64
	Thickness float64
	Threshold float64
}

func (h *PulseWall) Kind() Kind { return KindPulseWall }

// Active reports whether the wall is solid at tick t.
func (h *PulseWall) Active(t int) bool {
	return math.Sin(float64(t)*pulseFreq+h.Phase) > h.Threshold
}

func (h *PulseWall) AppendBoxes(dst []core.Box, t int, groundY float64) []core.Box {
	if !h.Active(t) {
		return dst
	}
	return append(dst, h.Bounds(groundY))
}

func (h *PulseWall) Bounds(float64) core.Box {
	return core.BoxAt(h.X, h.YBase-h.Thickness/2, h.Width, h.Thickness)
}

// SwingingOrb is a pendulum hanging from the ceiling at the center of its width.
// Only the orb collides; the chain is decoration.
type SwingingOrb struct {
	hazardBase
	Length   float64
	MaxAngle float64
	Radius   float64
}

func (h *SwingingOrb) Kind() Kind { return KindSwingingOrb }

// Pivot returns the ceiling anchor point.
func (h *SwingingOrb) Pivot() (float64, float64) {
	return h.X + h.Width/2, 0
}

// Center returns the orb center at tick t.
func (h *SwingingOrb) Center(t int) (float64, float64) {
	px, py := h.Pivot()
	theta := h.MaxAngle * math.Sin(float64(t)*orbFreq+h.Phase)
	return px + h.Length*math.Sin(theta), py + h.Length*math.Cos(theta)
}

func (h *SwingingOrb) AppendBoxes(dst []core.Box, t int, _ float64) []core.Box {
	cx, cy := h.Center(t)
	return append(dst, core.BoxAround(cx, cy, h.Radius))
}

func (h *SwingingOrb) Bounds(float64) core.Box {
	return core.BoxAt(h.X, 0, h.Width, h.Length+h.Radius)
}

// swingWidth is the horizontal extent of a pendulum's sweep.
func swingWidth(length, maxAngle, radius float64) float64 {
	return 2 * (length*math.Sin(maxAngle) + radius)
}

// Gate is a full-height wall with one opening.
type Gate struct {
	hazardBase
	GapTop  float64
	GapSize float64
}

func (h *Gate) Kind() Kind { return KindGate }

func (h *Gate) AppendBoxes(dst []core.Box, _ int, groundY float64) []core.Box {
	return append(dst,
		core.BoxAt(h.X, 0, h.Width, h.GapTop),
		core.Box{Left: h.X, Top: h.GapTop + h.GapSize, Right: h.X + h.Width, Bottom: groundY},
	)
}

func (h *Gate) Bounds(groundY float64) core.Box {
	return core.BoxAt(h.X, 0, h.Width, groundY)
}

// RuneWheel is a ring of runes orbiting a center point.
type RuneWheel struct {
	hazardBase
	CenterY float64
	Radius  float64
	Count   int
	Size    float64
}

func (h *RuneWheel) Kind() Kind { return KindRuneWheel }

// RunePosition returns the center of rune i at tick t.
func (h *RuneWheel) RunePosition(i, t int) (float64, float64) {
	angle := float64(t)*wheelFreq + h.Phase + float64(i)*2*math.Pi/float64(h.Count)
	cx := h.X + h.Width/2
	return cx + h.Radius*math.Cos(angle), h.CenterY + h.Radius*math.Sin(angle)
}

func (h *RuneWheel) AppendBoxes(dst []core.Box, t int, _ float64) []core.Box {
	for i := 0; i < h.Count; i++ {
		x, y := h.RunePosition(i, t)
		dst = append(dst, core.BoxAround(x, y, h.Size/2))
	}
	return dst
}

func (h *RuneWheel) Bounds(float64) core.Box {
	reach := h.Radius + h.Size/2
	return core.Box{Left: h.X, Top: h.CenterY - reach, Right: h.X + h.Width, Bottom: h.CenterY + reach}
}
