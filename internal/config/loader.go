package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadArcane loads Arcane Flight configuration.
// Search order: customPath -> ~/.arcade/configs/arcane.yaml -> ./configs/arcane.yaml -> embedded default.
// A custom path that cannot be read, parsed or validated is an error; the
// implicit locations are skipped silently when unusable.
func LoadArcane(customPath string) (ArcaneConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ArcaneConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseArcane(data)
		if err != nil {
			return ArcaneConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("arcane.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseArcane(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "arcane.yaml")); err == nil {
		if cfg, err := parseArcane(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseArcane(defaultArcaneYAML)
	if err != nil {
		return DefaultArcaneConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseArcane decodes YAML over the built-in defaults, so partial files only
// override the keys they mention, then validates the result. A characters list,
// when present, replaces the default roster.
func parseArcane(data []byte) (ArcaneConfig, error) {
	cfg := DefaultArcaneConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ArcaneConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return ArcaneConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyArcanePreset modifies the config based on a difficulty preset.
func ApplyArcanePreset(cfg *ArcaneConfig, preset DifficultyPreset) {
	switch {
	case preset == "":
		return
	case IsFixedPreset(preset):
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
