package config

import (
	"fmt"
	"time"
)

// SpeedPreset represents a named driver interval.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedMax    SpeedPreset = "max"
)

// SpeedPresets lists the presets from slowest to fastest.
var SpeedPresets = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedMax}

// IntervalForPreset returns the step interval for a speed preset.
func IntervalForPreset(preset SpeedPreset) (time.Duration, error) {
	switch preset {
	case SpeedSlow:
		return 500 * time.Millisecond, nil
	case SpeedNormal:
		return 100 * time.Millisecond, nil
	case SpeedFast:
		return 20 * time.Millisecond, nil
	case SpeedMax:
		return 3 * time.Millisecond, nil
	default:
		return 0, fmt.Errorf("config: unknown speed %q (want slow, normal, fast or max)", preset)
	}
}

// ApplySpeedPreset sets the simulation interval from a speed preset.
func ApplySpeedPreset(cfg *Config, preset SpeedPreset) error {
	interval, err := IntervalForPreset(preset)
	if err != nil {
		return err
	}
	cfg.Simulation.IntervalMS = int(interval / time.Millisecond)
	return nil
}
