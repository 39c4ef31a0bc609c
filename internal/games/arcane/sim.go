// Package arcane implements Arcane Flight, a side-scrolling flap-to-fly game.
// A witch flies through spires, runes, pulse walls and gates; every hazard
// that scrolls past the player scores a point.
//
// The simulation runs in playfield pixels (960x540 by default) and is
// independent of the terminal size. Renderers read a Snapshot.
package arcane

import (
	"math/rand"

	"github.com/vovakirdan/arcane-flight/internal/config"
	"github.com/vovakirdan/arcane-flight/internal/core"
)

// Phase is the top-level game phase.
type Phase uint8

const (
	PhaseSelect  Phase = iota // Choosing a character
	PhaseReady                // Waiting for the first flap
	PhaseRunning              // Physics and hazards active
	PhaseDead                 // Run over, waiting for retry
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSelect:
		return "select"
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhaseDead:
		return "dead"
	default:
		return "unknown"
	}
}

// CrashCause records what ended a run.
type CrashCause uint8

const (
	CrashNone CrashCause = iota
	CrashHazard
	CrashBoundary
)

// String returns the cause name.
func (c CrashCause) String() string {
	switch c {
	case CrashHazard:
		return "hazard"
	case CrashBoundary:
		return "boundary"
	default:
		return "none"
	}
}

// Random is the randomness the simulation consumes. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// Player is the flyer's kinematic state. X never changes during a run.
type Player struct {
	X, Y float64
	VY   float64
	Tilt float64
}

// Sim is the complete simulation state of one game.
// It is not safe for concurrent use.
type Sim struct {
	cfg        config.ArcaneConfig
	difficulty *config.DifficultyManager
	rng        Random // Gameplay randomness (spawns, hazard phases)
	fx         Random // Cosmetic randomness (stars, particles)

	phase     Phase
	character config.Character
	chosen    bool

	player    Player
	hazards   []Hazard
	particles []Particle
	stars     []Star

	score      int
	best       int
	tick       int
	spawnTimer int
	cause      CrashCause

	events core.Event // Accumulated during the current Step
	boxes  []core.Box // Scratch buffer for collision checks
}

// NewSim creates a simulation seeded for reproducible play.
func NewSim(cfg config.ArcaneConfig, seed int64) *Sim {
	return NewSimWithRandom(cfg,
		rand.New(rand.NewSource(seed)),
		rand.New(rand.NewSource(seed^0x5eed)))
}

// NewSimWithRandom creates a simulation with explicit random sources.
// gameplay drives hazard generation; fx drives stars and particles.
func NewSimWithRandom(cfg config.ArcaneConfig, gameplay, fx Random) *Sim {
	s := &Sim{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        gameplay,
		fx:         fx,
	}
	s.stars = makeStars(s.fx, cfg.Effects.Stars, cfg.Playfield)

	if cfg.CharacterSelect {
		s.reset(PhaseSelect)
		return s
	}
	if ch, ok := cfg.Character(cfg.DefaultCharacter); ok {
		s.character = ch
	} else if len(cfg.Characters) > 0 {
		s.character = cfg.Characters[0]
	}
	s.chosen = true
	s.reset(PhaseReady)
	return s
}

// Phase returns the current phase.
func (s *Sim) Phase() Phase { return s.phase }

// Score returns the score of the current run.
func (s *Sim) Score() int { return s.score }

// Best returns the best score seen this session.
func (s *Sim) Best() int { return s.best }

// SetBest seeds the best score, typically from persistent storage.
func (s *Sim) SetBest(best int) {
	if best > s.best {
		s.best = best
	}
}

// Tick returns the number of ticks since the last reset.
func (s *Sim) Tick() int { return s.tick }

// Player returns the player state.
func (s *Sim) Player() Player { return s.player }

// Character returns the selected character and whether one has been chosen.
func (s *Sim) Character() (config.Character, bool) { return s.character, s.chosen }

// Cause returns why the last run ended. CrashNone unless dead.
func (s *Sim) Cause() CrashCause { return s.cause }

// Config returns the configuration the simulation was built with.
func (s *Sim) Config() config.ArcaneConfig { return s.cfg }

// PlayerBox returns the player's hitbox.
func (s *Sim) PlayerBox() core.Box {
	return core.BoxAround(s.player.X, s.player.Y, s.character.Hitbox)
}

// Step applies one frame of input and advances the simulation by one tick.
// Inputs are handled before physics in a fixed order: back, choose, restart, flap.
// It returns the events that occurred.
func (s *Sim) Step(in core.InputFrame) core.Event {
	s.events = 0

	if in.Has(core.ActionBack) {
		s.ReturnToSelect()
	}
	if in.Has(core.ActionChooseA) {
		s.chooseIndex(0)
	}
	if in.Has(core.ActionChooseB) {
		s.chooseIndex(1)
	}
	if in.Has(core.ActionRestart) {
		s.Restart()
	}
	if in.Has(core.ActionJump) {
		s.Flap()
	}

	s.Update()
	return s.events
}

// Choose selects a character by ID and moves to ready.
// Ignored while a run is in progress. Returns false if the ID is unknown
// or the choice was ignored.
func (s *Sim) Choose(id string) bool {
	if s.phase == PhaseRunning {
		return false
	}
	ch, ok := s.cfg.Character(id)
	if !ok {
		return false
	}
	s.character = ch
	s.chosen = true
	s.reset(PhaseReady)
	return true
}

func (s *Sim) chooseIndex(i int) {
	if i < len(s.cfg.Characters) {
		s.Choose(s.cfg.Characters[i].ID)
	}
}

// ReturnToSelect goes back to the character select screen from ready or dead.
// It does nothing when character selection is disabled.
func (s *Sim) ReturnToSelect() {
	if !s.cfg.CharacterSelect {
		return
	}
	if s.phase == PhaseReady || s.phase == PhaseDead {
		s.chosen = false
		s.reset(PhaseSelect)
	}
}

// Restart moves a finished run back to ready.
func (s *Sim) Restart() {
	if s.phase == PhaseDead {
		s.reset(PhaseReady)
	}
}

// Flap is the primary action. It starts a run from ready, retries from dead,
// and applies the flap impulse while running. Ignored on the select screen.
func (s *Sim) Flap() {
	switch s.phase {
	case PhaseReady:
		s.start()
	case PhaseDead:
		s.reset(PhaseReady)
		s.start()
	case PhaseRunning:
		s.impulse()
	}
}

func (s *Sim) start() {
	s.phase = PhaseRunning
	s.events |= core.EventRunStart
	s.impulse()
}

func (s *Sim) impulse() {
	p := &s.player
	p.VY = s.character.Flap
	p.Tilt = s.cfg.Physics.FlapTilt
	s.burst(p.X-10, p.Y+1, s.cfg.Effects.FlapBurst, ParticleFlap)
	s.events |= core.EventFlap
}

// crash ends the run. Only the first call per run has any effect.
func (s *Sim) crash(cause CrashCause) {
	if s.phase != PhaseRunning {
		return
	}
	s.phase = PhaseDead
	s.cause = cause
	s.events |= core.EventCrash
	if s.score > s.best {
		s.best = s.score
		s.events |= core.EventNewBest
	}
	s.burst(s.player.X, s.player.Y, s.cfg.Effects.CrashBurst, ParticleCrash)
}

// reset clears per-run state and enters phase. Best and character survive.
func (s *Sim) reset(phase Phase) {
	s.phase = phase
	s.player = Player{
		X: s.cfg.Player.X,
		Y: s.cfg.Playfield.Height * s.cfg.Player.StartYRatio,
	}
	clear(s.hazards)
	s.hazards = s.hazards[:0]
	s.particles = s.particles[:0]
	s.score = 0
	s.tick = 0
	s.spawnTimer = 0
	s.cause = CrashNone
}

// Update advances the world by one tick without reading input.
// Stars and particles always move; everything else only while running.
func (s *Sim) Update() {
	s.tick++
	s.updateStars()
	s.updateParticles()

	if s.phase != PhaseRunning {
		return
	}

	s.integrate()

	s.spawnTimer++
	if s.spawnTimer >= s.spawnInterval() {
		s.spawnTimer = 0
		s.spawnWave()
	}

	s.advanceHazards()

	if cause := s.collide(); cause != CrashNone {
		s.crash(cause)
	}
}

// integrate applies gravity and updates the tilt.
func (s *Sim) integrate() {
	p := &s.player
	ph := s.cfg.Physics
	p.VY += s.character.Gravity
	p.Y += p.VY
	p.Tilt = core.ClampF(p.VY*ph.TiltFactor, ph.TiltMin, ph.TiltMax)
}

// advanceHazards scrolls every hazard, scores the ones that cleared the
// player and drops the ones far off screen. Scoring happens for all hazards
// before any collision is checked.
func (s *Sim) advanceHazards() {
	speed := s.difficulty.Speed(s.cfg.Hazards.Speed, s.score, s.tick)
	limit := -s.cfg.Hazards.RemovalBuffer

	kept := s.hazards[:0]
	for _, h := range s.hazards {
		b := h.base()
		b.X -= speed
		if !b.Passed && b.X+b.Width < s.player.X {
			b.Passed = true
			s.score++
			s.events |= core.EventScore
			s.burst(s.player.X+8, s.player.Y-2, s.cfg.Effects.ScoreBurst, ParticleScore)
		}
		if b.X+b.Width < limit {
			continue
		}
		kept = append(kept, h)
	}
	clear(s.hazards[len(kept):])
	s.hazards = kept
}

// collide reports the first thing the player touches this tick.
func (s *Sim) collide() CrashCause {
	groundY := s.cfg.Playfield.GroundY()
	pb := s.PlayerBox()

	for _, h := range s.hazards {
		s.boxes = h.AppendBoxes(s.boxes[:0], s.tick, groundY)
		for _, b := range s.boxes {
			if pb.Overlaps(b) {
				return CrashHazard
			}
		}
	}

	r := s.character.Hitbox
	if s.player.Y+r > groundY || s.player.Y-r < 0 {
		return CrashBoundary
	}
	return CrashNone
}

func (s *Sim) spawnInterval() int {
	return s.difficulty.SpawnInterval(s.cfg.Hazards.SpawnInterval, s.score, s.tick)
}
