package protocol

// CRC16 computes the checksum protecting report frames. Bitwise CCITT-style
// implementation, no lookup table, matching the framing checksum common in
// MCU serial firmware so existing board code can be reused unchanged.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		b = b ^ uint8(crc&0xFF)
		b = b ^ (b << 4)
		b16 := uint16(b)
		crc = (b16<<8 | crc>>8) ^ (b16 >> 4) ^ (b16 << 3)
	}
	return crc
}
