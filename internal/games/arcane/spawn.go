package arcane

import "math"

// pattern places one wave of hazards just beyond the right edge.
type pattern func(s *Sim)

// patterns is the wave catalog. A wave is picked uniformly at random.
var patterns = [...]pattern{
	spirePair,
	spireAndRune,
	runeGauntlet,
	pulseAndSpire,
	gateAndOrb,
	wheelAndGate,
}

// spawnWave adds one randomly chosen wave.
func (s *Sim) spawnWave() {
	patterns[s.rng.Intn(len(patterns))](s)
}

// between returns a uniform value in [lo, hi).
func (s *Sim) between(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// place positions h at offset px right of the playfield and adds it.
// Hazards without an explicit width get the configured default.
func (s *Sim) place(h Hazard, offset float64) {
	b := h.base()
	b.X = s.cfg.Playfield.Width + offset
	if b.Width == 0 {
		b.Width = s.cfg.Hazards.Width
	}
	b.Phase = s.rng.Float64() * 2 * math.Pi
	s.hazards = append(s.hazards, h)
}

func spirePair(s *Sim) {
	s.place(&TopSpire{Height: s.between(150, 240)}, 40)
	s.place(&BottomSpire{Height: s.between(130, 220)}, 220)
}

func spireAndRune(s *Sim) {
	s.place(&BottomSpire{Height: s.between(160, 230)}, 40)
	s.place(newRune(s.between(145, 325), 40), 230)
}

func runeGauntlet(s *Sim) {
	s.place(&TopSpire{Height: s.between(130, 210)}, 40)
	s.place(newRune(s.between(185, 335), 52), 180)
	s.place(&BottomSpire{Height: s.between(120, 200)}, 340)
}

func pulseAndSpire(s *Sim) {
	s.place(&PulseWall{
		hazardBase: hazardBase{Width: 110},
		YBase:      s.between(170, 310),
		Thickness:  14,
		Threshold:  0.4,
	}, 60)
	s.place(&TopSpire{Height: s.between(140, 220)}, 280)
}

func gateAndOrb(s *Sim) {
	s.place(s.newGate(), 40)

	length := s.between(120, 170)
	const maxAngle, radius = 0.5, 18
	s.place(&SwingingOrb{
		hazardBase: hazardBase{Width: swingWidth(length, maxAngle, radius)},
		Length:     length,
		MaxAngle:   maxAngle,
		Radius:     radius,
	}, 200)
}

func wheelAndGate(s *Sim) {
	const radius, size = 70, 26
	s.place(&RuneWheel{
		hazardBase: hazardBase{Width: 2*radius + size},
		CenterY:    s.between(190, 290),
		Radius:     radius,
		Count:      3,
		Size:       size,
	}, 60)
	s.place(s.newGate(), 320)
}

// newRune builds a rune bobbing around yBase.
func newRune(yBase, amp float64) *FloatingRune {
	const size = 34
	return &FloatingRune{
		hazardBase: hazardBase{Width: size},
		YBase:      yBase,
		Amp:        amp,
		Size:       size,
	}
}

// newGate builds a gate whose opening keeps the configured margin from the
// ceiling and the ground. The widest possible opening narrows with difficulty.
func (s *Sim) newGate() *Gate {
	hz := s.cfg.Hazards
	widest := s.difficulty.GapSize(hz.GateGapMax, hz.GateGapMin, s.score, s.tick)
	gap := s.between(hz.GateGapMin, widest)
	top := s.between(hz.GapMargin, s.cfg.Playfield.GroundY()-hz.GapMargin-gap)
	return &Gate{GapTop: top, GapSize: gap}
}
