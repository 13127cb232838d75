package core

// DefaultThreshold is the default hysteresis threshold in Hz.
// Sensor noise jitters the mapped frequency by a few Hz each cycle;
// reprogramming the waveform trigger for every wiggle causes audible clicks
// and wasted reconfiguration work.
const DefaultThreshold = 5

// ShouldUpdate reports whether candidate differs enough from current to be
// worth committing. The comparison is strict: a difference exactly equal to
// the threshold is rejected.
func ShouldUpdate(current, candidate Frequency, threshold uint32) bool {
	var diff Frequency
	if candidate > current {
		diff = candidate - current
	} else {
		diff = current - candidate
	}
	return uint32(diff) > threshold
}
