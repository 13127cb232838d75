//go:build rp2040 || rp2350

package main

import (
	"errors"
	"machine"

	"thermotone/core"
)

// pwmPeripheral is an interface for PWM hardware peripherals.
// This abstracts over TinyGo's unexported *pwmGroup type.
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// PWMTone implements core.ToneDriver on one hardware PWM slice. The output
// is a 50% duty square wave on the configured pin; shape selection is a
// no-op since a single PWM channel only does square.
type PWMTone struct {
	pwm     pwmPeripheral
	pin     machine.Pin
	channel uint8
	clockHz uint64
}

// NewPWMTone claims the PWM slice that owns pin. clockHz must match the
// calculator producing the programs this driver receives.
func NewPWMTone(pin machine.Pin, clockHz uint64) (*PWMTone, error) {
	pwm := slicePeripheral(pin)
	if pwm == nil {
		return nil, errors.New("pin has no PWM slice")
	}
	return &PWMTone{pwm: pwm, pin: pin, clockHz: clockHz}, nil
}

// ConfigureShape accepts any shape; the hardware always outputs square.
func (t *PWMTone) ConfigureShape(core.WaveShape) error {
	return nil
}

// ApplyProgram reprograms the slice period to the program's trigger rate and
// keeps the duty at 50%.
func (t *PWMTone) ApplyProgram(prog core.TimerProgram) error {
	hz := prog.TriggerHz(t.clockHz)
	if hz <= 0 {
		return errors.New("program has no trigger rate")
	}

	// TinyGo wants the period in nanoseconds.
	period := uint64(1e9 / hz)
	if err := t.pwm.Configure(machine.PWMConfig{Period: period}); err != nil {
		return err
	}

	channel, err := t.pwm.Channel(t.pin)
	if err != nil {
		return err
	}
	t.channel = channel
	t.pwm.Set(channel, t.pwm.Top()/2)
	return nil
}

// slicePeripheral returns the PWM slice owning a GPIO pin.
// RP2040: GPIO pin N belongs to slice (N >> 1) & 0x7.
func slicePeripheral(pin machine.Pin) pwmPeripheral {
	switch (uint8(pin) >> 1) & 0x7 {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}
