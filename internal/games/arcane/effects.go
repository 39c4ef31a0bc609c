package arcane

import (
	"math"

	"github.com/vovakirdan/arcane-flight/internal/config"
)

// ParticleKind selects a particle's color.
type ParticleKind uint8

const (
	ParticleFlap  ParticleKind = iota // Cyan sparks behind the broom
	ParticleScore                     // Gold sparks on scoring
	ParticleCrash                     // Pink burst on crash
)

// Particle is a short-lived decorative spark.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // Ticks left
	Kind   ParticleKind
	Size   int
}

// Star is a drifting background star.
type Star struct {
	X, Y    float64
	Speed   float64
	Twinkle float64 // Phase in radians; brightness follows its sine
	Size    int
}

// starCeiling keeps stars above the ground strip.
const starCeiling = 20

func makeStars(rng Random, n int, pf config.ArcanePlayfield) []Star {
	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{
			X:       rng.Float64() * pf.Width,
			Y:       rng.Float64() * (pf.GroundY() - starCeiling),
			Speed:   0.2 + rng.Float64()*0.5,
			Twinkle: rng.Float64() * 2 * math.Pi,
			Size:    1,
		}
		if rng.Float64() > 0.82 {
			stars[i].Size = 2
		}
	}
	return stars
}

func (s *Sim) updateStars() {
	pf := s.cfg.Playfield
	for i := range s.stars {
		st := &s.stars[i]
		st.X -= st.Speed
		st.Twinkle += 0.035
		if st.X < -3 {
			st.X = pf.Width + s.fx.Float64()*18
			st.Y = s.fx.Float64() * (pf.GroundY() - starCeiling)
		}
	}
}

// burst emits count particles at (x, y).
func (s *Sim) burst(x, y float64, count int, kind ParticleKind) {
	for i := 0; i < count; i++ {
		p := Particle{
			X:    x,
			Y:    y,
			VX:   (s.fx.Float64() - 0.5) * 1.8,
			VY:   (s.fx.Float64() - 0.5) * 1.8,
			Life: 16 + s.fx.Float64()*18,
			Kind: kind,
			Size: 1,
		}
		if s.fx.Float64() > 0.45 {
			p.Size = 2
		}
		s.particles = append(s.particles, p)
	}
}

func (s *Sim) updateParticles() {
	g := s.cfg.Effects.ParticleGravity
	kept := s.particles[:0]
	for _, p := range s.particles {
		p.X += p.VX
		p.Y += p.VY
		p.VY += g
		p.Life--
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	s.particles = kept
}
