package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermotone/core"
)

func readSamples(t *testing.T, s *Synth, n int) []float32 {
	t.Helper()
	buf := make([]byte, n*4)
	got, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), got)

	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out
}

func TestSynthFrequencyRoundTrip(t *testing.T) {
	s := NewSynth(48000)
	s.SetFrequency(440)
	assert.InDelta(t, 440.0, s.Frequency(), 0.01)
}

func TestSynthRejectsNyquistAndAbove(t *testing.T) {
	s := NewSynth(48000)
	s.SetFrequency(440)
	s.SetFrequency(24000)
	assert.InDelta(t, 440.0, s.Frequency(), 0.01, "out-of-range retune must be ignored")
}

func TestSynthSilentUntilProgrammed(t *testing.T) {
	s := NewSynth(48000)
	for _, v := range readSamples(t, s, 256) {
		assert.Zerof(t, v, "unprogrammed synth must not advance phase")
	}
}

func TestSquareWavePeriodMatchesProgram(t *testing.T) {
	// Program 1 kHz through the same arithmetic the control loop uses, then
	// count rising edges over one second of audio.
	calc := core.Calculator{ClockHz: 84000000}
	prog, err := calc.Compute(1000)
	require.NoError(t, err)

	s := NewSynth(48000)
	s.SetShape(core.ShapeSquare)
	s.SetFrequency(prog.TriggerHz(84000000))

	samples := readSamples(t, s, 48000)
	edges := 0
	for i := 1; i < len(samples); i++ {
		if samples[i] > 0 && samples[i-1] < 0 {
			edges++
		}
	}
	assert.InDelta(t, 1000, edges, 1)
}

func TestTriangleWaveShape(t *testing.T) {
	s := NewSynth(48000)
	s.SetShape(core.ShapeTriangle)
	s.SetFrequency(480) // exactly 100 samples per cycle

	samples := readSamples(t, s, 100)

	// Starts at the trough, peaks mid-cycle, stays inside the gain envelope.
	assert.InDelta(t, -0.25, samples[0], 0.01)
	assert.InDelta(t, 0.25, samples[50], 0.02)
	for i, v := range samples {
		require.LessOrEqualf(t, float64(math.Abs(float64(v))), 0.2501, "sample %d out of envelope", i)
	}

	// Monotone rise over the first half cycle.
	for i := 1; i <= 50; i++ {
		require.GreaterOrEqual(t, samples[i], samples[i-1])
	}
}

func TestSawtoothWaveShape(t *testing.T) {
	s := NewSynth(48000)
	s.SetShape(core.ShapeSawtooth)
	s.SetFrequency(480)

	samples := readSamples(t, s, 120)

	// Ramps from trough toward peak, then wraps near the 100-sample cycle
	// boundary (fixed-point truncation can defer the wrap by a sample).
	assert.InDelta(t, -0.25, samples[0], 0.01)
	wrapAt := -1
	for i := 1; i < len(samples); i++ {
		if samples[i] < samples[i-1] {
			wrapAt = i
			break
		}
	}
	require.NotEqual(t, -1, wrapAt, "sawtooth never wrapped")
	assert.InDelta(t, 100, wrapAt, 2)
}
