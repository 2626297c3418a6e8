package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name searched for in the config directories.
const ConfigFile = "bloomburst.yaml"

// Load loads Bloom Burst configuration.
// Search order: customPath -> ~/.bloomburst/configs/bloomburst.yaml ->
// ./configs/bloomburst.yaml -> embedded default -> hard-coded default.
// Files are merged over the defaults, so they only need the keys they change.
// Environment overrides are applied last.
func Load(customPath string) (BloomConfig, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(customPath string) (BloomConfig, error) {
	cfg := DefaultBloomConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := DefaultBloomConfig()
			if err := yaml.Unmarshal(data, &candidate); err == nil {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		candidate := DefaultBloomConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	candidate := DefaultBloomConfig()
	if err := yaml.Unmarshal(defaultBloomYAML, &candidate); err != nil {
		return cfg, nil // Fallback to hardcoded if embed fails
	}
	return candidate, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bloomburst", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *BloomConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the garden based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Tools.Shears += 2
		cfg.Hazard.GrowthRate *= 0.75
	case DifficultyHard:
		cfg.Tools.Shears = max(cfg.Tools.Shears-1, 1)
		cfg.Hazard.Ceiling = max(cfg.Hazard.Ceiling-2, cfg.Hazard.Seeds, 1) // Seeds alone must not overrun
	}
}
