// Package serial connects the control loop to a sensor board attached over
// a serial port.
package serial

import (
	"io"
)

// Port represents a serial connection to a sensor board.
// This abstraction allows for different implementations:
// - Native serial (github.com/tarm/serial)
// - Scripted ports for testing
//
// Read should return with no data (n == 0) after the configured timeout so
// callers can notice cancellation on a quiet line.
type Port interface {
	io.ReadWriteCloser

	// Flush discards any buffered data
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g. "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (ignored for USB CDC boards)
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the settings for the reference sensor board
// firmware.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100, // short enough that shutdown is prompt
	}
}
