// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/bloom-burst/internal/games/bloomburst/core"
	"gopkg.in/yaml.v3"
)

// Defaults applied when a level file leaves a field unset.
const (
	DefaultGrowthRate = 0.25
	DefaultToolUses   = 3
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Order       int               `yaml:"order"`
	Size        YAMLSize          `yaml:"size"`
	Hazard      YAMLHazard        `yaml:"hazard"`
	Tools       map[string]int    `yaml:"tools,omitempty"`
	Pieces      []YAMLPiece       `yaml:"pieces,omitempty"`
	Objective   *YAMLObjective    `yaml:"objective,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// YAMLCoord is a zero-based grid position.
type YAMLCoord struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// YAMLHazard configures the creepers.
type YAMLHazard struct {
	Seeds      []YAMLCoord `yaml:"seeds,omitempty"`
	GrowthRate *float64    `yaml:"growth_rate,omitempty"`
	Ceiling    int         `yaml:"ceiling,omitempty"`
}

// YAMLPiece is a pre-placed piece.
type YAMLPiece struct {
	Row   int    `yaml:"row"`
	Col   int    `yaml:"col"`
	Piece string `yaml:"piece"`
}

// YAMLObjective is the fixed order of a level.
type YAMLObjective struct {
	Attributes    map[string]string `yaml:"attributes,omitempty"`
	MinCounts     map[string]int    `yaml:"min_counts,omitempty"`
	MinDensity    float64           `yaml:"min_density,omitempty"`
	MinSymmetry   float64           `yaml:"min_symmetry,omitempty"`
	CoverageLimit int               `yaml:"coverage_limit,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID          string
	Name        string
	Description string
	Order       int
	Rows        int
	Cols        int
	Seeds       []core.Coord
	GrowthRate  float64
	Ceiling     int
	Tools       map[string]int
	Preplaced   map[core.Coord]string
	Objective   *core.RequirementSpec
	Metadata    map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}
	if yl.Size.Rows <= 0 || yl.Size.Cols <= 0 {
		return Level{}, fmt.Errorf("level %s: invalid size %dx%d", yl.ID, yl.Size.Rows, yl.Size.Cols)
	}

	rate := DefaultGrowthRate
	if yl.Hazard.GrowthRate != nil {
		rate = *yl.Hazard.GrowthRate
	}
	if rate < 0 || rate > 1 {
		return Level{}, fmt.Errorf("level %s: growth rate %.2f out of range", yl.ID, rate)
	}

	ceiling := yl.Hazard.Ceiling
	if ceiling <= 0 {
		ceiling = yl.Size.Rows * yl.Size.Cols / 2 // Half the board
	}

	tools := yl.Tools
	if tools == nil {
		tools = map[string]int{"shears": DefaultToolUses}
	}

	level := Level{
		ID:          yl.ID,
		Name:        yl.Name,
		Description: yl.Description,
		Order:       yl.Order,
		Rows:        yl.Size.Rows,
		Cols:        yl.Size.Cols,
		Seeds:       make([]core.Coord, 0, len(yl.Hazard.Seeds)),
		GrowthRate:  rate,
		Ceiling:     ceiling,
		Tools:       tools,
		Preplaced:   make(map[core.Coord]string, len(yl.Pieces)),
		Metadata:    yl.Metadata,
	}

	inBounds := func(row, col int) bool {
		return row >= 0 && row < yl.Size.Rows && col >= 0 && col < yl.Size.Cols
	}
	for _, s := range yl.Hazard.Seeds {
		if !inBounds(s.Row, s.Col) {
			return Level{}, fmt.Errorf("level %s: seed (%d,%d) out of bounds", yl.ID, s.Row, s.Col)
		}
		level.Seeds = append(level.Seeds, core.C(s.Row, s.Col))
	}
	for _, p := range yl.Pieces {
		if !inBounds(p.Row, p.Col) {
			return Level{}, fmt.Errorf("level %s: piece (%d,%d) out of bounds", yl.ID, p.Row, p.Col)
		}
		level.Preplaced[core.C(p.Row, p.Col)] = p.Piece
	}

	if o := yl.Objective; o != nil {
		level.Objective = &core.RequirementSpec{
			Attributes:    o.Attributes,
			MinCounts:     o.MinCounts,
			MinDensity:    o.MinDensity,
			MinSymmetry:   o.MinSymmetry,
			CoverageLimit: o.CoverageLimit,
		}
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
