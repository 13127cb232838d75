package core

import "errors"

// ErrInvalidFrequency is returned when a frequency cannot be expressed as a
// timer program: zero, above the timer clock, or needing a wider prescaler
// than the hardware has. The mapper's clamp makes this unreachable through
// the normal sample path; the guard exists so a misuse never divides by zero.
var ErrInvalidFrequency = errors.New("invalid frequency for timer program")

// DefaultClockHz is the reference timer clock (84 MHz, STM32F4 class).
const DefaultClockHz = 84000000

const maxPrescaler = 0xFFFF

// TimerProgram is the register pair that programs a periodic waveform
// trigger. Period holds the auto-reload value (count minus one); Prescaler
// divides the timer clock by Prescaler+1.
type TimerProgram struct {
	Prescaler uint32
	Period    uint32
}

// TriggerHz returns the trigger rate this program produces on a timer
// running at clockHz. Hosts that synthesize the waveform instead of
// counting ticks use this to recover the pitch.
func (p TimerProgram) TriggerHz(clockHz uint64) float64 {
	return float64(clockHz) / float64(uint64(p.Prescaler+1)*uint64(p.Period+1))
}

// Calculator derives timer programs for a fixed reference clock.
// The zero value uses DefaultClockHz and a full 32-bit period register.
type Calculator struct {
	ClockHz   uint64
	MaxPeriod uint32 // highest value the period register can hold; 0 means full 32 bits
}

// Compute returns the timer program for the given frequency.
//
// period = clock/frequency - 1 with the prescaler at 1:1. For the supported
// 200-2000 Hz range at 84 MHz the period always fits a 32-bit counter, but
// the range check is explicit: a narrower counter (smaller MaxPeriod) gets
// the smallest prescaler that brings the period back into range.
func (c Calculator) Compute(f Frequency) (TimerProgram, error) {
	if f == 0 {
		return TimerProgram{}, ErrInvalidFrequency
	}

	clock := c.ClockHz
	if clock == 0 {
		clock = DefaultClockHz
	}
	maxPeriod := uint64(c.MaxPeriod)
	if maxPeriod == 0 {
		maxPeriod = 0xFFFFFFFF
	}

	count := clock / uint64(f)
	if count == 0 {
		// Frequency above the timer clock: the divide produced a zero
		// period count.
		return TimerProgram{}, ErrInvalidFrequency
	}

	presc := uint64(0)
	period := count
	for period-1 > maxPeriod {
		presc++
		if presc > maxPrescaler {
			return TimerProgram{}, ErrInvalidFrequency
		}
		period = count / (presc + 1)
		if period == 0 {
			return TimerProgram{}, ErrInvalidFrequency
		}
	}

	return TimerProgram{Prescaler: uint32(presc), Period: uint32(period - 1)}, nil
}
