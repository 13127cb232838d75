package protocol

import "errors"

// ErrTruncatedVLQ is returned when a payload ends in the middle of a value.
var ErrTruncatedVLQ = errors.New("truncated VLQ value")

// AppendUint appends v in VLQ form: base-128 groups, most significant group
// first, continuation bit set on every byte except the last. Small values
// (the common case for 12-bit samples) take one or two bytes.
func AppendUint(dst []byte, v uint32) []byte {
	if v >= 1<<28 {
		dst = append(dst, byte(v>>28)|0x80)
	}
	if v >= 1<<21 {
		dst = append(dst, byte(v>>21&0x7F)|0x80)
	}
	if v >= 1<<14 {
		dst = append(dst, byte(v>>14&0x7F)|0x80)
	}
	if v >= 1<<7 {
		dst = append(dst, byte(v>>7&0x7F)|0x80)
	}
	return append(dst, byte(v&0x7F))
}

// DecodeUint decodes one VLQ value from data, returning the value and the
// number of bytes consumed.
func DecodeUint(data []byte) (uint32, int, error) {
	var v uint32
	for i, c := range data {
		v = v<<7 | uint32(c&0x7F)
		if c&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, ErrTruncatedVLQ
}
