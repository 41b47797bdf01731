// Package driver steps a turmite session on a timer.
package driver

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/turmite/internal/turmite"
)

// Interval bounds. SetInterval clamps to [MinInterval, MaxInterval].
const (
	DefaultInterval = 100 * time.Millisecond
	MinInterval     = 3 * time.Millisecond
	MaxInterval     = time.Second
)

// Stepper is the part of a session the driver needs.
type Stepper interface {
	Step() turmite.StepResult
	Reset()
}

// Driver calls Step on a Stepper every interval while not paused.
// Pause state and interval are atomics and may be changed from any goroutine;
// the running loop observes them on its next tick.
type Driver struct {
	stepper  Stepper
	paused   atomic.Bool
	interval atomic.Int64
	steps    atomic.Uint64
	onStep   func(turmite.StepResult)

	// changed wakes the loop so a new interval takes effect before the old one expires.
	changed chan struct{}
}

// Option configures a Driver.
type Option func(*Driver)

// WithInterval sets the starting interval.
func WithInterval(d time.Duration) Option {
	return func(dr *Driver) {
		dr.interval.Store(int64(clamp(d)))
	}
}

// WithOnStep registers a callback run after every step, on the driver goroutine.
func WithOnStep(fn func(turmite.StepResult)) Option {
	return func(dr *Driver) {
		dr.onStep = fn
	}
}

// Running starts the driver unpaused.
func Running() Option {
	return func(dr *Driver) {
		dr.paused.Store(false)
	}
}

// New creates a paused driver with DefaultInterval.
func New(s Stepper, opts ...Option) *Driver {
	d := &Driver{
		stepper: s,
		changed: make(chan struct{}, 1),
	}
	d.paused.Store(true)
	d.interval.Store(int64(DefaultInterval))

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run steps the session until ctx is cancelled, then returns ctx.Err().
func (d *Driver) Run(ctx context.Context) error {
	current := d.Interval()
	ticker := time.NewTicker(current)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !d.paused.Load() {
				d.step()
			}

		case <-d.changed:
			if next := d.Interval(); next != current {
				current = next
				ticker.Reset(current)
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// StepOnce performs a single step regardless of the pause state.
func (d *Driver) StepOnce() turmite.StepResult {
	return d.step()
}

func (d *Driver) step() turmite.StepResult {
	res := d.stepper.Step()
	d.steps.Add(1)
	if d.onStep != nil {
		d.onStep(res)
	}
	return res
}

// Pause stops stepping. The loop keeps running.
func (d *Driver) Pause() {
	d.paused.Store(true)
}

// Resume restarts stepping.
func (d *Driver) Resume() {
	d.paused.Store(false)
}

// Toggle flips the pause state and reports whether the driver is now paused.
func (d *Driver) Toggle() bool {
	for {
		old := d.paused.Load()
		if d.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Paused reports whether stepping is paused.
func (d *Driver) Paused() bool {
	return d.paused.Load()
}

// SetInterval changes the step interval and returns the clamped value.
func (d *Driver) SetInterval(interval time.Duration) time.Duration {
	interval = clamp(interval)
	d.interval.Store(int64(interval))

	select {
	case d.changed <- struct{}{}:
	default:
	}
	return interval
}

// Interval returns the current step interval.
func (d *Driver) Interval() time.Duration {
	return time.Duration(d.interval.Load())
}

// Faster halves the interval.
func (d *Driver) Faster() time.Duration {
	return d.SetInterval(d.Interval() / 2)
}

// Slower doubles the interval.
func (d *Driver) Slower() time.Duration {
	return d.SetInterval(d.Interval() * 2)
}

// Reset clears the world and returns the automaton to its start pose.
// The pause state and interval are kept.
func (d *Driver) Reset() {
	d.stepper.Reset()
	d.steps.Store(0)
}

// Steps returns the number of steps this driver performed since the last Reset.
func (d *Driver) Steps() uint64 {
	return d.steps.Load()
}

func clamp(d time.Duration) time.Duration {
	return min(max(d, MinInterval), MaxInterval)
}
