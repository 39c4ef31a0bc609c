package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	// Clamp progress to [0, 1]
	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the current speed multiplier based on difficulty level.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	// Speed increases from base to base * (1 + speedMultiplier)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// GapSize returns the current gate gap based on difficulty level.
// The result never drops below minGap.
func (d *DifficultyManager) GapSize(baseGap, minGap float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	// Gap decreases as difficulty increases
	result := baseGap - level*d.cfg.Scaling.GapReduction
	return math.Max(result, minGap)
}

// SpawnInterval returns the number of ticks between obstacle waves.
func (d *DifficultyManager) SpawnInterval(baseInterval int, score int, ticks int) int {
	level := d.Level(score, ticks)
	// Waves arrive sooner as difficulty increases
	reduction := int(level * float64(d.cfg.Scaling.IntervalReduction))
	result := baseInterval - reduction
	if result < minSpawnInterval {
		result = minSpawnInterval
	}
	return result
}

// minSpawnInterval keeps consecutive waves from overlapping on screen.
const minSpawnInterval = 60

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
