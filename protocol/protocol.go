// Package protocol implements the wire format spoken by serial-attached
// sensor boards: one-way report frames carrying VLQ-encoded values,
// CRC-16 protected, terminated by a sync byte.
//
// Frame layout:
//
//	[length][sequence][payload ...][crc hi][crc lo][sync]
//
// length covers the whole frame including the trailer; the CRC covers the
// length, sequence and payload bytes. The board streams frames unsolicited,
// one per conversion, with a free-running 8-bit sequence number.
package protocol

const (
	FrameHeaderSize  = 2 // length + sequence
	FrameTrailerSize = 3 // crc16 (big endian) + sync
	FrameLengthMin   = FrameHeaderSize + FrameTrailerSize
	FrameLengthMax   = 64
	FrameSync        = 0x7E
)
