package core

import "time"

// RuntimeConfig contains the terminal and timing settings for a simulation view.
type RuntimeConfig struct {
	ScreenW  int           // Screen width in characters
	ScreenH  int           // Screen height in characters
	FPS      int           // Redraws per second
	Interval time.Duration // Delay between automaton steps
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		FPS:      30,
		Interval: 100 * time.Millisecond,
	}
}

// StatusLines is the number of rows below the lattice reserved for status text.
const StatusLines = 2

// ViewSize returns the lattice area that fits the screen above the status lines.
func (c RuntimeConfig) ViewSize() (w, h int) {
	return Max(c.ScreenW, 1), Max(c.ScreenH-StatusLines, 1)
}
