package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the simulator configuration.
// Search order: customPath -> ~/.turmite/config.yaml -> ./configs/turmite.yaml -> embedded default.
// Files only need the keys they change; the rest keeps the default.
func Load(customPath string) (Config, error) {
	cfg := embeddedConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if loaded, ok := overlay(cfg, data); ok {
				return loaded, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "turmite.yaml")); err == nil {
		if loaded, ok := overlay(cfg, data); ok {
			return loaded, nil
		}
	}

	return cfg, nil
}

// embeddedConfig decodes the embedded default YAML.
func embeddedConfig() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// overlay decodes data on top of base. Files that do not parse or validate are skipped.
func overlay(base Config, data []byte) (Config, bool) {
	cfg := base
	cfg.Display.Palette = append([]string(nil), base.Display.Palette...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, false
	}
	if err := cfg.Validate(); err != nil {
		return base, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".turmite", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
