package config

import "math"

// DifficultyManager calculates dynamic hazard parameters from score or turns.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/turns.
func (d *DifficultyManager) Level(score int, turns int) float64 {
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
	case "turns":
		progress = float64(turns) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// GrowthRate returns the creeper growth rate at the current difficulty.
// Grows from base to base * (1 + growthMultiplier), capped at 1.
func (d *DifficultyManager) GrowthRate(base float64, score int, turns int) float64 {
	level := d.Level(score, turns)
	return clampF(base*(1.0+level*d.cfg.Scaling.GrowthMultiplier), 0.0, 1.0)
}

// Ceiling returns the coverage ceiling at the current difficulty.
func (d *DifficultyManager) Ceiling(base int, score int, turns int) int {
	level := d.Level(score, turns)
	reduction := int(level * float64(d.cfg.Scaling.CeilingReduction))
	result := base - reduction
	if result < 2 { // Minimum playable ceiling
		result = 2
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
