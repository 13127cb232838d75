// Package sim provides deterministic stand-ins for sensor hardware so the
// host binary runs, and tests pass, with nothing attached.
package sim

import (
	"context"
	"time"

	"thermotone/core"
)

// Ramp sweeps the 12-bit sample space up and down in fixed steps. With a
// pace configured it waits between conversions like a real ADC would, which
// makes the demo tone sweep audibly instead of instantly.
type Ramp struct {
	value int
	step  int
	dir   int
	pace  time.Duration
}

// NewRamp creates a ramp that moves by step per conversion. A zero or
// negative step defaults to 64 (a full sweep in 64 conversions).
func NewRamp(step int, pace time.Duration) *Ramp {
	if step <= 0 {
		step = 64
	}
	return &Ramp{step: step, dir: 1, pace: pace}
}

// Sample returns the next reading on the ramp.
func (r *Ramp) Sample(ctx context.Context) (core.Sample, error) {
	if r.pace > 0 {
		t := time.NewTimer(r.pace)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return 0, err
	}

	v := r.value
	r.value += r.step * r.dir
	if r.value >= core.SampleMax {
		r.value = core.SampleMax
		r.dir = -1
	}
	if r.value <= 0 {
		r.value = 0
		r.dir = 1
	}
	return core.Sample(v), nil
}
