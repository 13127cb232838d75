// Package audio renders the tone on the host's sound device: a
// phase-accumulator oscillator stands in for the DAC wave generator that
// real hardware drives from a timer trigger.
package audio

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"thermotone/core"
)

// Synth is a phase-accumulator oscillator producing little-endian float32
// mono samples. Like the hardware generator it models, it free-runs between
// updates: pitch and shape changes are atomic and take effect on the next
// output sample without a discontinuity in phase, which is what keeps
// retuning free of clicks.
type Synth struct {
	sampleRate int
	gain       float32
	shape      atomic.Uint32
	step       atomic.Uint32 // phase increment per output sample, 0.32 fixed point
	phase      uint32        // only touched by the reading goroutine
}

// NewSynth creates a silent oscillator. Call SetFrequency to start it.
func NewSynth(sampleRate int) *Synth {
	return &Synth{sampleRate: sampleRate, gain: 0.25}
}

// SetShape selects the waveform. Safe to call while audio is running.
func (s *Synth) SetShape(shape core.WaveShape) {
	s.shape.Store(uint32(shape))
}

// SetFrequency retunes the oscillator. Frequencies at or above the Nyquist
// rate are ignored; the tone range tops out well below it anyway.
func (s *Synth) SetFrequency(hz float64) {
	if hz < 0 || hz >= float64(s.sampleRate)/2 {
		return
	}
	s.step.Store(uint32(hz / float64(s.sampleRate) * (1 << 32)))
}

// Frequency returns the currently programmed pitch in Hz.
func (s *Synth) Frequency() float64 {
	return float64(s.step.Load()) / (1 << 32) * float64(s.sampleRate)
}

// Read fills p with samples. It implements io.Reader so the synth can be
// handed directly to an audio player.
func (s *Synth) Read(p []byte) (int, error) {
	n := len(p) / 4
	step := s.step.Load()
	if step == 0 {
		// Not programmed yet: silence, not a DC offset at the trough.
		for i := 0; i < n*4; i++ {
			p[i] = 0
		}
		return n * 4, nil
	}
	shape := core.WaveShape(s.shape.Load())
	for i := 0; i < n; i++ {
		v := sampleAt(s.phase, shape) * s.gain
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
		s.phase += step
	}
	return n * 4, nil
}

// sampleAt evaluates one waveform sample for a 0.32 fixed-point phase.
func sampleAt(phase uint32, shape core.WaveShape) float32 {
	pos := float32(phase) / float32(1<<32) // cycle position in [0, 1)
	switch shape {
	case core.ShapeSquare:
		if pos < 0.5 {
			return 1
		}
		return -1
	case core.ShapeSawtooth:
		return 2*pos - 1
	default: // triangle
		if pos < 0.5 {
			return 4*pos - 1
		}
		return 3 - 4*pos
	}
}
