//go:build rp2040 || rp2350

// Package pio provides a tone backend running on an RP2040 PIO state
// machine. The state machine free-runs a two-instruction square wave; pitch
// changes only touch the clock divider, so the CPU never services the output.
package pio

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"thermotone/core"
)

// buildToneProgram creates the square-wave PIO program using AssemblerV0.
// Each instruction carries one delay cycle, so a full output period is four
// state machine cycles; the clock divider sets the audible pitch.
func buildToneProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Set(rp2pio.SetDestPins, 1).Delay(1).Encode(), // 0: set pins, 1 [1]
		asm.Set(rp2pio.SetDestPins, 0).Delay(1).Encode(), // 1: set pins, 0 [1]
		// .wrap
	}
}

// cyclesPerPeriod is the state machine cycle count of one output period.
const cyclesPerPeriod = 4

const toneProgramOrigin = -1 // relocatable, load anywhere

// ToneBackend implements core.ToneDriver on a PIO state machine.
type ToneBackend struct {
	sm      rp2pio.StateMachine
	pin     machine.Pin
	clockHz uint64
	running bool
}

// NewToneBackend claims a state machine on PIO0 and loads the square-wave
// program. clockHz must match the calculator producing the programs this
// backend receives.
func NewToneBackend(pin machine.Pin, clockHz uint64) (*ToneBackend, error) {
	sm := rp2pio.PIO0.StateMachine(0)
	sm.TryClaim()
	Pio := sm.PIO()

	program := buildToneProgram()
	offset, err := Pio.AddProgram(program, toneProgramOrigin)
	if err != nil {
		return nil, err
	}

	pin.Configure(machine.PinConfig{Mode: Pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(pin, 1)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	sm.Init(offset, cfg)
	sm.SetPindirsConsecutive(pin, 1, true)

	return &ToneBackend{sm: sm, pin: pin, clockHz: clockHz}, nil
}

// ConfigureShape accepts any shape; a single PIO pin only does square.
func (b *ToneBackend) ConfigureShape(core.WaveShape) error {
	return nil
}

// ApplyProgram retunes the square wave by reprogramming the state machine's
// clock divider to the program's trigger rate.
func (b *ToneBackend) ApplyProgram(prog core.TimerProgram) error {
	hz := prog.TriggerHz(b.clockHz)

	// Nanoseconds per state machine cycle.
	periodNS := uint32(1e9 / (hz * cyclesPerPeriod))
	whole, frac, err := rp2pio.ClkDivFromPeriod(periodNS, uint32(machine.CPUFrequency()))
	if err != nil {
		return err
	}

	b.sm.SetEnabled(false)
	b.sm.SetClkDiv(whole, frac)
	b.sm.ClkDivRestart()
	b.sm.SetEnabled(true)
	b.running = true
	return nil
}

// Stop parks the state machine with the pin low.
func (b *ToneBackend) Stop() {
	b.sm.SetEnabled(false)
	b.sm.SetPinsConsecutive(b.pin, 1, false)
	b.running = false
}
