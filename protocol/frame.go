package protocol

import (
	"bytes"
	"errors"
)

// ErrFrameTooLarge is returned when a payload would not fit in one frame.
var ErrFrameTooLarge = errors.New("frame payload too large")

// AppendFrame appends one frame carrying payload to dst.
func AppendFrame(dst []byte, seq uint8, payload []byte) ([]byte, error) {
	total := FrameHeaderSize + len(payload) + FrameTrailerSize
	if total > FrameLengthMax {
		return dst, ErrFrameTooLarge
	}
	start := len(dst)
	dst = append(dst, byte(total), seq)
	dst = append(dst, payload...)
	crc := CRC16(dst[start:])
	return append(dst, byte(crc>>8), byte(crc), FrameSync), nil
}

// AppendReport appends a frame carrying a single VLQ-encoded sensor value.
// This is the format sensor boards stream, one report per conversion.
func AppendReport(dst []byte, seq uint8, value uint32) []byte {
	var scratch [5]byte
	payload := AppendUint(scratch[:0], value)
	out, _ := AppendFrame(dst, seq, payload) // a single VLQ never exceeds FrameLengthMax
	return out
}

// Report is one decoded sensor report.
type Report struct {
	Seq   uint8
	Value uint32
}

// Decoder scans a byte stream for valid report frames. Corrupt input drops
// the decoder out of sync; it recovers by discarding bytes up to the next
// sync byte, the same way the trailing sync of a healthy frame re-anchors
// a reader that attached mid-stream.
type Decoder struct {
	buf     []byte
	synced  bool
	haveSeq bool
	lastSeq uint8

	// Dropped counts reports lost to sequence gaps between accepted frames.
	// Diagnostic only: a lost report is superseded by the next one.
	Dropped uint64
}

// NewDecoder returns a decoder that assumes the stream starts on a frame
// boundary; it resynchronizes on its own if that turns out to be wrong.
func NewDecoder() *Decoder {
	return &Decoder{synced: true}
}

// Feed appends raw bytes from the wire and returns any complete reports.
func (d *Decoder) Feed(data []byte) []Report {
	d.buf = append(d.buf, data...)
	var reports []Report
	for {
		r, ok := d.next()
		if !ok {
			return reports
		}
		reports = append(reports, r)
	}
}

func (d *Decoder) next() (Report, bool) {
	for {
		if !d.synced {
			i := bytes.IndexByte(d.buf, FrameSync)
			if i < 0 {
				d.buf = d.buf[:0]
				return Report{}, false
			}
			d.buf = d.buf[i+1:]
			d.synced = true
		}

		// Skip idle-line sync bytes between frames.
		for len(d.buf) > 0 && d.buf[0] == FrameSync {
			d.buf = d.buf[1:]
		}
		if len(d.buf) < FrameLengthMin {
			return Report{}, false
		}

		n := int(d.buf[0])
		if n < FrameLengthMin || n > FrameLengthMax {
			d.synced = false
			continue
		}
		if len(d.buf) < n {
			return Report{}, false
		}
		if d.buf[n-1] != FrameSync {
			d.synced = false
			continue
		}
		wireCRC := uint16(d.buf[n-3])<<8 | uint16(d.buf[n-2])
		if wireCRC != CRC16(d.buf[:n-FrameTrailerSize]) {
			d.synced = false
			continue
		}

		seq := d.buf[1]
		payload := d.buf[FrameHeaderSize : n-FrameTrailerSize]
		value, _, err := DecodeUint(payload)
		d.buf = d.buf[n:]
		if err != nil {
			// CRC-clean frame with a malformed payload: skip it but stay
			// in sync, the framing itself was intact.
			continue
		}

		if d.haveSeq {
			d.Dropped += uint64(seq - (d.lastSeq + 1)) // uint8 arithmetic wraps
		}
		d.haveSeq = true
		d.lastSeq = seq
		return Report{Seq: seq, Value: value}, true
	}
}
