package config

import (
	_ "embed"
)

//go:embed defaults/arcane.yaml
var defaultArcaneYAML []byte

// DefaultArcaneConfig returns the default Arcane Flight configuration.
// It mirrors defaults/arcane.yaml and is used when the embedded file cannot be parsed.
func DefaultArcaneConfig() ArcaneConfig {
	return ArcaneConfig{
		Playfield: ArcanePlayfield{
			Width:  960,
			Height: 540,
			Ground: 76,
		},
		Player: ArcanePlayer{
			X:           210,
			StartYRatio: 0.48,
		},
		Physics: ArcanePhysics{
			TiltFactor: 0.12,
			TiltMin:    -0.75,
			TiltMax:    0.9,
			FlapTilt:   -0.45,
		},
		Hazards: ArcaneHazards{
			Speed:         2.2,
			SpawnInterval: 170,
			Width:         56,
			RemovalBuffer: 40,
			GapMargin:     48,
			GateGapMin:    150,
			GateGapMax:    190,
		},
		CharacterSelect:  true,
		DefaultCharacter: "gold",
		Characters: []Character{
			{ID: "violet", Name: "Violet Witch", Flap: -5.5, Gravity: 0.34, Hitbox: 15, Blurb: "Heavy gravity, hard mode"},
			{ID: "gold", Name: "Gold Witch", Flap: -6.4, Gravity: 0.27, Hitbox: 12, Blurb: "Light gravity, easy lift"},
		},
		Effects: ArcaneEffects{
			Stars:           72,
			ParticleGravity: 0.03,
			FlapBurst:       8,
			ScoreBurst:      8,
			CrashBurst:      48,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0.5,
				GapReduction:      30,
				IntervalReduction: 50,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "arcane":
		return defaultArcaneYAML
	default:
		return nil
	}
}
