// Control loop: sample, map, gate, reprogram
package core

import (
	"context"
	"fmt"
	"time"
)

// DefaultInterval is the nominal delay between control cycles. It bounds the
// update rate; it is a rate limiter, not a timing-critical constant.
const DefaultInterval = 100 * time.Millisecond

// LoopConfig holds the tunable constants of the control loop.
type LoopConfig struct {
	StartFrequency Frequency     // initial tone, programmed before the first cycle
	Threshold      uint32        // hysteresis threshold in Hz
	Interval       time.Duration // inter-cycle delay
	Shape          WaveShape     // waveform shape, configured once at startup
}

// DefaultLoopConfig returns the reference tuning: 440 Hz start, 5 Hz
// threshold, 100 ms cadence, triangle wave.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		StartFrequency: DefaultFrequency,
		Threshold:      DefaultThreshold,
		Interval:       DefaultInterval,
		Shape:          ShapeTriangle,
	}
}

// Loop ties a Sampler to a ToneDriver: each cycle reads one sample, maps it
// to a frequency, gates it against the current frequency and reprograms the
// generator only when the change is worth committing. The current frequency
// is instance state with a single writer; independent loops can coexist.
type Loop struct {
	sampler Sampler
	tone    ToneDriver
	calc    Calculator
	cfg     LoopConfig

	current Frequency

	// sleep is replaceable so tests run without wall-clock delay.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewLoop creates a control loop. Zero fields of cfg fall back to the
// reference tuning, except Threshold: zero is a valid (if twitchy)
// configuration meaning any change of more than 0 Hz is committed.
func NewLoop(sampler Sampler, tone ToneDriver, calc Calculator, cfg LoopConfig) *Loop {
	if cfg.StartFrequency == 0 {
		cfg.StartFrequency = DefaultFrequency
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Loop{
		sampler: sampler,
		tone:    tone,
		calc:    calc,
		cfg:     cfg,
		current: cfg.StartFrequency,
		sleep:   sleepCtx,
	}
}

// CurrentFrequency returns the last committed frequency.
func (l *Loop) CurrentFrequency() Frequency {
	return l.current
}

// Run drives the control cycle until ctx is cancelled and returns ctx's
// error on a clean stop. Startup contract: the waveform shape and the start
// frequency are programmed before the first sample is read.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.tone.ConfigureShape(l.cfg.Shape); err != nil {
		return fmt.Errorf("configure waveform shape: %w", err)
	}
	prog, err := l.calc.Compute(l.current)
	if err != nil {
		return fmt.Errorf("compute startup program: %w", err)
	}
	if err := l.tone.ApplyProgram(prog); err != nil {
		return fmt.Errorf("program startup frequency: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		sample, err := l.sampler.Sample(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read sample: %w", err)
		}

		candidate := MapSample(sample)
		if ShouldUpdate(l.current, candidate, l.cfg.Threshold) {
			if err := l.reprogram(candidate); err != nil {
				return err
			}
		}

		if err := l.sleep(ctx, l.cfg.Interval); err != nil {
			return err
		}
	}
}

// reprogram pushes a new timer program and commits the frequency only after
// the hardware accepted it. Fail-stale: any error leaves both the current
// frequency and the running program untouched.
func (l *Loop) reprogram(f Frequency) error {
	prog, err := l.calc.Compute(f)
	if err != nil {
		// Calculator rejection aborts this cycle's reprogramming; the next
		// cycle brings a fresh sample. There is no pending-update state.
		return nil
	}
	if err := l.tone.ApplyProgram(prog); err != nil {
		// A rejected register write is a hardware fault. Halting beats
		// free-running on an undefined program.
		return fmt.Errorf("apply timer program: %w", err)
	}
	l.current = f
	return nil
}

// sleepCtx waits for d or until ctx is cancelled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
