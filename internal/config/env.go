package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides lists the settings that can come from the environment.
// Unset variables keep the value loaded from YAML.
type envOverrides struct {
	Rows          int     `env:"BLOOMBURST_ROWS"`
	Cols          int     `env:"BLOOMBURST_COLS"`
	GrowthRate    float64 `env:"BLOOMBURST_GROWTH_RATE"`
	Ceiling       int     `env:"BLOOMBURST_CEILING"`
	Shears        int     `env:"BLOOMBURST_SHEARS"`
	FulfillPoints int     `env:"BLOOMBURST_FULFILL_POINTS"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with BLOOMBURST_* environment variables.
func ApplyEnv(cfg *BloomConfig) error {
	o := envOverrides{
		Rows:          cfg.Grid.Rows,
		Cols:          cfg.Grid.Cols,
		GrowthRate:    cfg.Hazard.GrowthRate,
		Ceiling:       cfg.Hazard.Ceiling,
		Shears:        cfg.Tools.Shears,
		FulfillPoints: cfg.Scoring.FulfillPoints,
	}
	if err := ParseEnv(&o); err != nil {
		return err
	}

	cfg.Grid.Rows = o.Rows
	cfg.Grid.Cols = o.Cols
	cfg.Hazard.GrowthRate = o.GrowthRate
	cfg.Hazard.Ceiling = o.Ceiling
	cfg.Tools.Shears = o.Shears
	cfg.Scoring.FulfillPoints = o.FulfillPoints
	return nil
}
