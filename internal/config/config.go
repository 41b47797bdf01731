// Package config provides YAML-based configuration loading for the turmite
// simulator: timing, rule table limits, file locations and display.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/turmite/internal/turmite"
)

// Config contains all configuration for the simulator.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Limits     LimitsConfig     `yaml:"limits"`
	Paths      PathsConfig      `yaml:"paths"`
	Display    DisplayConfig    `yaml:"display"`
	Server     ServerConfig     `yaml:"server"`
}

// SimulationConfig defines driver timing.
type SimulationConfig struct {
	IntervalMS int `yaml:"interval_ms"` // Delay between automaton steps
	FPS        int `yaml:"fps"`         // Screen redraws per second
}

// LimitsConfig bounds the rule table.
type LimitsConfig struct {
	MaxStates int `yaml:"max_states"`
	MaxColors int `yaml:"max_colors"`
}

// PathsConfig locates on-disk data. A leading ~ is expanded by the consumers.
type PathsConfig struct {
	Rulesets string `yaml:"rulesets"`
	DB       string `yaml:"db"`
}

// DisplayConfig defines how cells are drawn.
type DisplayConfig struct {
	Palette  []string `yaml:"palette"`   // One color per cell color, "" = terminal default
	Glyph    string   `yaml:"glyph"`     // Drawn for painted cells
	AntGlyph string   `yaml:"ant_glyph"` // Drawn for the automaton
	AntColor string   `yaml:"ant_color"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	HostKey string `yaml:"host_key"`
}

// ValidationError describes an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate rejects values the simulator cannot run with.
func (c Config) Validate() error {
	positive := []struct {
		field string
		value int
	}{
		{"simulation.interval_ms", c.Simulation.IntervalMS},
		{"simulation.fps", c.Simulation.FPS},
		{"limits.max_states", c.Limits.MaxStates},
		{"limits.max_colors", c.Limits.MaxColors},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return ValidationError{Field: p.field, Message: fmt.Sprintf("must be positive, got %d", p.value)}
		}
	}

	if len(c.Display.Palette) < c.Limits.MaxColors {
		return ValidationError{
			Field:   "display.palette",
			Message: fmt.Sprintf("needs %d colors for max_colors, got %d", c.Limits.MaxColors, len(c.Display.Palette)),
		}
	}
	if c.Display.Glyph == "" || c.Display.AntGlyph == "" {
		return ValidationError{Field: "display", Message: "glyph and ant_glyph cannot be empty"}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return ValidationError{Field: "server.port", Message: fmt.Sprintf("out of range: %d", c.Server.Port)}
	}

	return nil
}

// Interval returns the driver interval.
func (c Config) Interval() time.Duration {
	return time.Duration(c.Simulation.IntervalMS) * time.Millisecond
}

// TurmiteLimits returns the rule table bounds.
func (c Config) TurmiteLimits() turmite.Limits {
	return turmite.Limits{MaxStates: c.Limits.MaxStates, MaxColors: c.Limits.MaxColors}
}
