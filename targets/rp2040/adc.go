//go:build rp2040 || rp2350

package main

import (
	"context"
	"machine"

	"thermotone/core"
)

// OnboardSampler implements core.Sampler using TinyGo's machine.ADC.
type OnboardSampler struct {
	adc machine.ADC
}

// NewOnboardSampler configures one ADC input pin for sampling.
func NewOnboardSampler(pin machine.Pin) (*OnboardSampler, error) {
	machine.InitADC()

	adc := machine.ADC{Pin: pin}
	if err := adc.Configure(machine.ADCConfig{}); err != nil {
		return nil, err
	}
	return &OnboardSampler{adc: adc}, nil
}

// Sample runs one conversion. TinyGo widens the result to 16 bits, so shift
// back down to the converter's native 12-bit range.
func (s *OnboardSampler) Sample(ctx context.Context) (core.Sample, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return core.Sample(s.adc.Get() >> 4), nil
}
