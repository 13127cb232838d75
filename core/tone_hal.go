package core

// WaveShape selects the waveform the tone generator emits.
type WaveShape uint8

const (
	ShapeTriangle WaveShape = iota // default, matches the reference DAC triangle mode
	ShapeSquare
	ShapeSawtooth
)

func (s WaveShape) String() string {
	switch s {
	case ShapeTriangle:
		return "triangle"
	case ShapeSquare:
		return "square"
	case ShapeSawtooth:
		return "sawtooth"
	}
	return "unknown"
}

// ToneDriver is the abstract waveform trigger/generator interface.
// Once programmed the generator runs autonomously; the control loop only
// calls ApplyProgram again when the gated frequency changes.
type ToneDriver interface {
	// ConfigureShape is one-time setup, invoked before the loop starts.
	ConfigureShape(shape WaveShape) error

	// ApplyProgram applies a new trigger period atomically. The driver is
	// responsible for the stop/write/force-update/restart ordering so the
	// generator never free-runs on a stale period.
	ApplyProgram(prog TimerProgram) error
}
