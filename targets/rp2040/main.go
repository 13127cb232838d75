//go:build rp2040 || rp2350

// Firmware for RP2040 boards: reads a sensor on ADC0, drives a tone on a
// GPIO pin, and streams every sample over the USB serial link so a host can
// mirror the pitch.
package main

import (
	"context"
	"machine"
	"time"

	"thermotone/core"
	"thermotone/targets/pio"
)

const (
	sensorPin = machine.ADC0
	tonePin   = machine.GPIO15

	// usePIO selects the PIO square-wave backend instead of the PWM slice.
	// PWM is the default because it leaves all PIO state machines free.
	usePIO = false
)

func main() {
	// Give the USB CDC link time to enumerate so early prints are visible.
	time.Sleep(2 * time.Second)
	println("thermotone: starting")

	sampler, err := NewOnboardSampler(sensorPin)
	if err != nil {
		fatal("adc init", err)
	}

	var tone core.ToneDriver
	if usePIO {
		tone, err = pio.NewToneBackend(tonePin, uint64(machine.CPUFrequency()))
	} else {
		tone, err = NewPWMTone(tonePin, uint64(machine.CPUFrequency()))
	}
	if err != nil {
		fatal("tone init", err)
	}

	calc := core.Calculator{ClockHz: uint64(machine.CPUFrequency())}
	loop := core.NewLoop(
		NewReportingSampler(sampler, machine.Serial),
		tone,
		calc,
		core.DefaultLoopConfig(),
	)

	if err := loop.Run(context.Background()); err != nil {
		fatal("control loop", err)
	}
}

// fatal prints the failure and parks the core; there is nowhere to exit to.
func fatal(what string, err error) {
	for {
		println("thermotone: fatal:", what, err.Error())
		time.Sleep(5 * time.Second)
	}
}
