// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
)

// ArcaneConfig contains all configuration for the Arcane Flight game.
type ArcaneConfig struct {
	Playfield        ArcanePlayfield  `yaml:"playfield"`
	Player           ArcanePlayer     `yaml:"player"`
	Physics          ArcanePhysics    `yaml:"physics"`
	Hazards          ArcaneHazards    `yaml:"hazards"`
	Characters       []Character      `yaml:"characters"`
	CharacterSelect  bool             `yaml:"character_select"`
	DefaultCharacter string           `yaml:"default_character"`
	Effects          ArcaneEffects    `yaml:"effects"`
	Difficulty       DifficultyConfig `yaml:"difficulty"`
}

// ArcanePlayfield is the simulated area in pixels. Ground is the height of the
// ground strip at the bottom; the flyable area ends at Height-Ground.
type ArcanePlayfield struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Ground float64 `yaml:"ground"`
}

// GroundY returns the y coordinate of the ground line.
func (p ArcanePlayfield) GroundY() float64 {
	return p.Height - p.Ground
}

// ArcanePlayer defines where the player starts.
type ArcanePlayer struct {
	X           float64 `yaml:"x"`
	StartYRatio float64 `yaml:"start_y_ratio"`
}

// ArcanePhysics defines the tilt response shared by all characters.
// Gravity and flap strength are per character.
type ArcanePhysics struct {
	TiltFactor float64 `yaml:"tilt_factor"`
	TiltMin    float64 `yaml:"tilt_min"`
	TiltMax    float64 `yaml:"tilt_max"`
	FlapTilt   float64 `yaml:"flap_tilt"`
}

// ArcaneHazards defines obstacle flow.
type ArcaneHazards struct {
	Speed         float64 `yaml:"speed"`          // Pixels per tick, leftward
	SpawnInterval int     `yaml:"spawn_interval"` // Ticks between waves
	Width         float64 `yaml:"width"`          // Default hazard width
	RemovalBuffer float64 `yaml:"removal_buffer"` // Distance past x=0 before removal
	GapMargin     float64 `yaml:"gap_margin"`     // Minimum distance from a gate gap to top/ground
	GateGapMin    float64 `yaml:"gate_gap_min"`
	GateGapMax    float64 `yaml:"gate_gap_max"`
}

// Character is a selectable flyer with its own handling.
type Character struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	Flap    float64 `yaml:"flap"`    // Velocity set on flap (negative = up)
	Gravity float64 `yaml:"gravity"` // Added to velocity every tick
	Hitbox  float64 `yaml:"hitbox"`  // Half-extent of the square hitbox
	Blurb   string  `yaml:"blurb"`   // One-line description for the select screen
}

// ArcaneEffects defines decorative star and particle settings.
type ArcaneEffects struct {
	Stars           int     `yaml:"stars"`
	ParticleGravity float64 `yaml:"particle_gravity"`
	FlapBurst       int     `yaml:"flap_burst"`
	ScoreBurst      int     `yaml:"score_burst"`
	CrashBurst      int     `yaml:"crash_burst"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to speed at max difficulty
	GapReduction      float64 `yaml:"gap_reduction"`      // Gate gap reduction at max difficulty
	IntervalReduction int     `yaml:"interval_reduction"` // Spawn interval reduction at max difficulty
}

// Character returns the character with the given ID.
func (c ArcaneConfig) Character(id string) (Character, bool) {
	for _, ch := range c.Characters {
		if ch.ID == id {
			return ch, true
		}
	}
	return Character{}, false
}

// Validate checks that the config describes a playable game.
func (c ArcaneConfig) Validate() error {
	var errs []error

	pf := c.Playfield
	if pf.Width <= 0 || pf.Height <= 0 {
		errs = append(errs, fmt.Errorf("playfield must have positive size, got %vx%v", pf.Width, pf.Height))
	}
	if pf.Ground < 0 || pf.Ground >= pf.Height {
		errs = append(errs, fmt.Errorf("ground %v must be within playfield height %v", pf.Ground, pf.Height))
	}
	if c.Hazards.SpawnInterval <= 0 {
		errs = append(errs, fmt.Errorf("spawn_interval must be positive, got %d", c.Hazards.SpawnInterval))
	}
	if c.Hazards.Speed <= 0 {
		errs = append(errs, fmt.Errorf("hazard speed must be positive, got %v", c.Hazards.Speed))
	}
	if c.Hazards.Width <= 0 {
		errs = append(errs, fmt.Errorf("hazard width must be positive, got %v", c.Hazards.Width))
	}
	if c.Hazards.GateGapMin <= 0 || c.Hazards.GateGapMax < c.Hazards.GateGapMin {
		errs = append(errs, fmt.Errorf("gate gap range [%v, %v] is invalid", c.Hazards.GateGapMin, c.Hazards.GateGapMax))
	} else if c.Hazards.GateGapMax+2*c.Hazards.GapMargin > pf.GroundY() {
		errs = append(errs, fmt.Errorf("gate gap %v with margin %v does not fit above ground %v",
			c.Hazards.GateGapMax, c.Hazards.GapMargin, pf.GroundY()))
	}
	if c.Physics.TiltMin > c.Physics.TiltMax {
		errs = append(errs, fmt.Errorf("tilt_min %v exceeds tilt_max %v", c.Physics.TiltMin, c.Physics.TiltMax))
	}

	if len(c.Characters) == 0 {
		errs = append(errs, errors.New("at least one character is required"))
	}
	seen := make(map[string]bool, len(c.Characters))
	for _, ch := range c.Characters {
		if ch.ID == "" {
			errs = append(errs, errors.New("character id must not be empty"))
			continue
		}
		if seen[ch.ID] {
			errs = append(errs, fmt.Errorf("duplicate character %q", ch.ID))
		}
		seen[ch.ID] = true
		if ch.Flap >= 0 {
			errs = append(errs, fmt.Errorf("character %q: flap must be negative (upward), got %v", ch.ID, ch.Flap))
		}
		if ch.Gravity <= 0 {
			errs = append(errs, fmt.Errorf("character %q: gravity must be positive, got %v", ch.ID, ch.Gravity))
		}
		if ch.Hitbox <= 0 {
			errs = append(errs, fmt.Errorf("character %q: hitbox must be positive, got %v", ch.ID, ch.Hitbox))
		}
	}
	if _, ok := c.Character(c.DefaultCharacter); !ok && len(c.Characters) > 0 {
		errs = append(errs, fmt.Errorf("default_character %q is not defined", c.DefaultCharacter))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid arcane config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
