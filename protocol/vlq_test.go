package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestVLQRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		value uint32
		size  int
	}{
		{"zero", 0, 1},
		{"one byte max", 0x7F, 1},
		{"two byte min", 0x80, 2},
		{"typical sample", 2048, 2},
		{"sample max", 4095, 2},
		{"two byte max", 0x3FFF, 2},
		{"three byte min", 0x4000, 3},
		{"large", 84000000, 4},
		{"uint32 max", 0xFFFFFFFF, 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := AppendUint(nil, tc.value)
			if len(encoded) != tc.size {
				t.Errorf("AppendUint(%d) produced %d bytes, want %d", tc.value, len(encoded), tc.size)
			}

			decoded, n, err := DecodeUint(encoded)
			if err != nil {
				t.Fatalf("DecodeUint failed: %v", err)
			}
			if decoded != tc.value {
				t.Errorf("round trip: got %d, want %d", decoded, tc.value)
			}
			if n != len(encoded) {
				t.Errorf("consumed %d bytes, want %d", n, len(encoded))
			}
		})
	}
}

func TestVLQAppendsToExisting(t *testing.T) {
	dst := []byte{0xAA}
	dst = AppendUint(dst, 4095)
	if dst[0] != 0xAA {
		t.Errorf("AppendUint clobbered existing data: %v", dst)
	}
	v, _, err := DecodeUint(dst[1:])
	if err != nil || v != 4095 {
		t.Errorf("DecodeUint after prefix = (%d, %v), want (4095, nil)", v, err)
	}
}

func TestVLQTruncated(t *testing.T) {
	encoded := AppendUint(nil, 84000000)
	_, _, err := DecodeUint(encoded[:len(encoded)-1])
	if !errors.Is(err, ErrTruncatedVLQ) {
		t.Errorf("DecodeUint on truncated input = %v, want ErrTruncatedVLQ", err)
	}
	_, _, err = DecodeUint(nil)
	if !errors.Is(err, ErrTruncatedVLQ) {
		t.Errorf("DecodeUint on empty input = %v, want ErrTruncatedVLQ", err)
	}
}

func TestCRC16Properties(t *testing.T) {
	if got := CRC16(nil); got != 0xFFFF {
		t.Errorf("CRC16(empty) = %04X, want FFFF (initial value)", got)
	}

	data := []byte{0x05, 0x01, 0x1F, 0x4C}
	if CRC16(data) != CRC16(data) {
		t.Error("CRC16 not deterministic")
	}

	flipped := bytes.Clone(data)
	flipped[2] ^= 0x01
	if CRC16(data) == CRC16(flipped) {
		t.Error("CRC16 did not detect a single bit flip")
	}
}
