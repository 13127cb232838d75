package core

import "context"

// Sampler is the abstract sensor interface the control loop reads from.
// Implementations: on-board ADC (targets/), serial-attached sensor board
// (host/serial), deterministic ramp for demos and tests (host/sim).
type Sampler interface {
	// Sample blocks until one quantized reading is available.
	// Implementations must honor ctx so the loop can shut down while
	// waiting for a conversion.
	Sample(ctx context.Context) (Sample, error)
}
