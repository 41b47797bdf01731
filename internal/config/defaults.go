package config

import (
	_ "embed"

	"github.com/vovakirdan/turmite/internal/turmite"
)

//go:embed defaults/turmite.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded configuration used when no file is available.
func DefaultConfig() Config {
	limits := turmite.DefaultLimits()
	return Config{
		Simulation: SimulationConfig{
			IntervalMS: 100,
			FPS:        30,
		},
		Limits: LimitsConfig{
			MaxStates: limits.MaxStates,
			MaxColors: limits.MaxColors,
		},
		Paths: PathsConfig{
			Rulesets: "~/.turmite/rulesets",
			DB:       "~/.turmite/runs.db",
		},
		Display: DisplayConfig{
			Palette:  []string{"", "#E4E4E4", "#FFD700"},
			Glyph:    "█",
			AntGlyph: "▲",
			AntColor: "#FF3030",
		},
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    23235,
			HostKey: ".ssh/turmite_ed25519",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
