// Package config provides YAML-based game configuration loading and
// difficulty management for Bloom Burst.
package config

import (
	"fmt"

	"github.com/vovakirdan/bloom-burst/internal/games/bloomburst/core"
)

// BloomConfig contains all configuration for Bloom Burst.
// A few fields can be overridden from the environment, see ApplyEnv.
type BloomConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Hazard     HazardConfig     `yaml:"hazard"`
	Tools      ToolsConfig      `yaml:"tools"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	PowerUps   PowerUpsConfig   `yaml:"power_ups"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig defines the board size for random-order modes.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// HazardConfig defines creeper behaviour for random-order modes.
type HazardConfig struct {
	// Seeds is the number of random root locations.
	Seeds int `yaml:"seeds"`

	// GrowthRate is the per-source spawn probability each turn.
	GrowthRate float64 `yaml:"growth_rate"`

	// Ceiling is the coverage above which the game ends.
	Ceiling int `yaml:"ceiling"`
}

// ToolsConfig defines the starting tool inventory.
type ToolsConfig struct {
	Shears int `yaml:"shears"`
}

// ScoringConfig defines points awarded for orders.
type ScoringConfig struct {
	FulfillPoints int `yaml:"fulfill_points"`
}

// PowerUpsConfig tunes the timed power-ups.
type PowerUpsConfig struct {
	ScoreBoost int     `yaml:"score_boost"` // Points granted by Score Boost
	SlowFactor float64 `yaml:"slow_factor"` // Growth multiplier while Slow Creepers runs
	SlowTurns  int     `yaml:"slow_turns"`  // Duration of Slow Creepers in turns
}

// CatalogConfig declares the attribute names and the available pieces.
type CatalogConfig struct {
	Attributes []string      `yaml:"attributes"`
	Pieces     []PieceConfig `yaml:"pieces"`
}

// PieceConfig describes one piece type and how it is drawn.
type PieceConfig struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	Category   string            `yaml:"category,omitempty"` // "flower" (default) or "specialty"
	Glyph      string            `yaml:"glyph"`
	Color      string            `yaml:"color"`
	Attributes map[string]string `yaml:"attributes"`
}

// BuildCatalog validates the catalog section and builds a core catalog.
// An empty section yields the built-in flower set.
func (c CatalogConfig) BuildCatalog() (*core.Catalog, error) {
	if len(c.Pieces) == 0 {
		return core.DefaultCatalog(), nil
	}

	pieces := make([]core.PieceType, 0, len(c.Pieces))
	for _, p := range c.Pieces {
		cat, ok := core.ParseCategory(p.Category)
		if !ok {
			return nil, fmt.Errorf("piece %q: unknown category %q", p.ID, p.Category)
		}
		name := p.Name
		if name == "" {
			name = p.ID
		}
		pieces = append(pieces, core.NewPieceType(p.ID, name, cat, p.Attributes))
	}
	return core.NewCatalog(c.Attributes, pieces)
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over play.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "turns", or "none"
	MaxAt int    `yaml:"max_at"` // Score/turns at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	GrowthMultiplier float64 `yaml:"growth_multiplier"` // Multiplier added to growth rate at max difficulty
	CeilingReduction int     `yaml:"ceiling_reduction"` // Ceiling reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", s)
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

// Validate checks the values the engine cannot recover from.
func (c BloomConfig) Validate() error {
	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		return fmt.Errorf("grid: invalid size %dx%d", c.Grid.Rows, c.Grid.Cols)
	}
	if c.Hazard.GrowthRate < 0 || c.Hazard.GrowthRate > 1 {
		return fmt.Errorf("hazard: growth_rate %.2f out of [0,1]", c.Hazard.GrowthRate)
	}
	if c.Hazard.Seeds < 0 || c.Hazard.Seeds > c.Grid.Rows*c.Grid.Cols {
		return fmt.Errorf("hazard: %d seeds do not fit a %dx%d grid", c.Hazard.Seeds, c.Grid.Rows, c.Grid.Cols)
	}
	if c.Hazard.Ceiling < c.Hazard.Seeds {
		return fmt.Errorf("hazard: ceiling %d is below the %d seeds", c.Hazard.Ceiling, c.Hazard.Seeds)
	}
	if c.Tools.Shears < 0 {
		return fmt.Errorf("tools: negative shears %d", c.Tools.Shears)
	}
	if c.PowerUps.SlowFactor <= 0 || c.PowerUps.SlowFactor > 1 {
		return fmt.Errorf("power_ups: slow_factor %.2f out of (0,1]", c.PowerUps.SlowFactor)
	}
	if _, err := c.Catalog.BuildCatalog(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return nil
}
