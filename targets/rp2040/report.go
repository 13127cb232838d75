//go:build rp2040 || rp2350

package main

import (
	"context"
	"io"

	"thermotone/core"
	"thermotone/protocol"
)

// ReportingSampler wraps a sampler and streams every conversion out as a
// framed report, so a host listening on the USB serial link can mirror the
// tone. Write failures are ignored; telemetry must not stall the loop when
// nothing is listening.
type ReportingSampler struct {
	inner core.Sampler
	out   io.Writer
	seq   uint8
	buf   []byte
}

// NewReportingSampler wraps inner so each sample is also reported on out.
func NewReportingSampler(inner core.Sampler, out io.Writer) *ReportingSampler {
	return &ReportingSampler{inner: inner, out: out, buf: make([]byte, 0, protocol.FrameLengthMax)}
}

// Sample reads from the wrapped sampler and emits one report frame.
func (r *ReportingSampler) Sample(ctx context.Context) (core.Sample, error) {
	s, err := r.inner.Sample(ctx)
	if err != nil {
		return 0, err
	}

	r.buf = protocol.AppendReport(r.buf[:0], r.seq, uint32(s))
	r.seq++
	r.out.Write(r.buf)
	return s, nil
}
