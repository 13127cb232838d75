// Frequency mapping from quantized sensor readings to tone pitch
package core

// Sample is one quantized sensor reading as delivered by a Sampler.
// Convention here: 12-bit value (0-4095), even if the underlying hardware
// reports a wider width.
type Sample uint16

// SampleMax is the maximum value of a 12-bit sample.
const SampleMax = 4095

// Frequency is a tone pitch in Hz.
type Frequency uint32

const (
	MinFrequency     Frequency = 200  // lowest tone the mapper produces
	MaxFrequency     Frequency = 2000 // highest tone the mapper produces
	DefaultFrequency Frequency = 440  // startup tone (A4)
)

// MapSample converts a quantized sensor reading to a tone frequency.
// Linear mapping: sample 0-4095 -> frequency 200-2000 Hz, with truncating
// integer division. The result is clamped afterwards so a change to the
// sample width cannot push the frequency out of range.
func MapSample(s Sample) Frequency {
	f := MinFrequency + Frequency(uint32(s)*1800/SampleMax)
	if f < MinFrequency {
		f = MinFrequency
	}
	if f > MaxFrequency {
		f = MaxFrequency
	}
	return f
}
