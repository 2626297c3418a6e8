package config

import (
	_ "embed"
)

//go:embed defaults/bloomburst.yaml
var defaultBloomYAML []byte

// DefaultBloomConfig returns the hard-coded Bloom Burst configuration.
func DefaultBloomConfig() BloomConfig {
	flower := func(id, name, glyph, color, shade, size string) PieceConfig {
		return PieceConfig{
			ID:         id,
			Name:       name,
			Glyph:      glyph,
			Color:      color,
			Attributes: map[string]string{"color": shade, "size": size},
		}
	}

	lily := flower("white_lily", "White Lily", "L", "bright_white", "white", "large")
	lily.Category = "specialty"

	return BloomConfig{
		Grid: GridConfig{
			Rows: 6,
			Cols: 6,
		},
		Hazard: HazardConfig{
			Seeds:      2,
			GrowthRate: 0.2,
			Ceiling:    12,
		},
		Tools: ToolsConfig{
			Shears: 3,
		},
		Scoring: ScoringConfig{
			FulfillPoints: 100,
		},
		PowerUps: PowerUpsConfig{
			ScoreBoost: 100,
			SlowFactor: 0.5,
			SlowTurns:  3,
		},
		Catalog: CatalogConfig{
			Attributes: []string{"color", "size"},
			Pieces: []PieceConfig{
				flower("rose", "Rose", "R", "red", "red", "small"),
				flower("tulip", "Tulip", "T", "yellow", "yellow", "medium"),
				flower("daisy", "Daisy", "D", "white", "white", "small"),
				flower("sunflower", "Sunflower", "S", "bright_yellow", "yellow", "large"),
				flower("lavender", "Lavender", "V", "purple", "purple", "small"),
				flower("crimson_rose", "Crimson Rose", "C", "bright_red", "red", "medium"),
				lily,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				GrowthMultiplier: 1.5,
				CeilingReduction: 4,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBloomYAML
}
