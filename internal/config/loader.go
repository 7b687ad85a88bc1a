package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadWezzle loads the game configuration.
// Search order: customPath -> ~/.wezzle/configs/wezzle.yaml -> ./configs/wezzle.yaml -> embedded default
func LoadWezzle(customPath string) (WezzleConfig, error) {
	var cfg WezzleConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg = DefaultWezzleConfig()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("wezzle.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "wezzle.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultWezzleYAML, &cfg); err != nil {
		return DefaultWezzleConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are
// skipped so the next location in the search order is used.
func tryLoad(path string) (WezzleConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WezzleConfig{}, false
	}
	cfg := DefaultWezzleConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return WezzleConfig{}, false
	}
	if cfg.Validate() != nil {
		return WezzleConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wezzle", "configs", filename)
}
