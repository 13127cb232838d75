package serial

import (
	"context"
	"fmt"
	"io"
	"time"

	"thermotone/core"
	"thermotone/protocol"
)

// quietRetryDelay paces the read loop when the port reports EOF without
// data, so a dead line does not spin the CPU.
const quietRetryDelay = 5 * time.Millisecond

// Sampler adapts a sensor board streaming report frames over a serial Port
// to the control loop's Sampler interface.
type Sampler struct {
	port    Port
	dec     *protocol.Decoder
	pending []protocol.Report
	buf     [64]byte
}

// NewSampler wraps an open port. The port's read timeout bounds how long a
// blocked Sample call takes to notice a cancelled context.
func NewSampler(port Port) *Sampler {
	return &Sampler{port: port, dec: protocol.NewDecoder()}
}

// Sample blocks until the board delivers one valid report. Reports decoded
// beyond the first are buffered and returned by subsequent calls, oldest
// first.
func (s *Sampler) Sample(ctx context.Context) (core.Sample, error) {
	for {
		if len(s.pending) > 0 {
			r := s.pending[0]
			s.pending = s.pending[1:]
			v := r.Value
			if v > core.SampleMax {
				// The board promised 12-bit readings; clamp rather than
				// feed the mapper something out of domain.
				v = core.SampleMax
			}
			return core.Sample(v), nil
		}

		if err := ctx.Err(); err != nil {
			return 0, err
		}

		n, err := s.port.Read(s.buf[:])
		if n > 0 {
			s.pending = append(s.pending, s.dec.Feed(s.buf[:n])...)
			continue
		}
		switch err {
		case nil:
			// Read timeout on a quiet line; go around and re-check ctx.
		case io.EOF:
			time.Sleep(quietRetryDelay)
		default:
			return 0, fmt.Errorf("serial read: %w", err)
		}
	}
}

// Dropped returns the number of reports lost to sequence gaps since the
// sampler was created.
func (s *Sampler) Dropped() uint64 {
	return s.dec.Dropped
}
