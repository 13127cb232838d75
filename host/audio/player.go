package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"

	"thermotone/core"
)

// DefaultSampleRate is the output rate the player opens the audio device
// with when the caller does not care.
const DefaultSampleRate = 48000

// Player implements core.ToneDriver on the system audio device via oto.
// ApplyProgram converts a timer program back to its trigger rate and retunes
// the oscillator; the stream itself is never stopped, so the "restart" of
// the hardware discipline is the oscillator picking up the new step on its
// next sample.
type Player struct {
	mu      sync.Mutex
	ctx     *oto.Context
	player  *oto.Player
	synth   *Synth
	clockHz uint64
	started bool
}

// NewPlayer opens the audio device. clockHz must match the calculator that
// produces the programs this player receives.
func NewPlayer(sampleRate int, clockHz uint64) (*Player, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if clockHz == 0 {
		clockHz = core.DefaultClockHz
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	return &Player{
		ctx:     ctx,
		synth:   NewSynth(sampleRate),
		clockHz: clockHz,
	}, nil
}

// ConfigureShape selects the waveform. One-time setup before the loop runs,
// though the synth tolerates changes at any point.
func (p *Player) ConfigureShape(shape core.WaveShape) error {
	p.synth.SetShape(shape)
	return nil
}

// ApplyProgram retunes the oscillator to the program's trigger rate and
// starts playback on the first call.
func (p *Player) ApplyProgram(prog core.TimerProgram) error {
	p.synth.SetFrequency(prog.TriggerHz(p.clockHz))

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		p.player = p.ctx.NewPlayer(p.synth)
		p.player.Play()
		p.started = true
	}
	return nil
}

// Close stops playback. The oto context itself cannot be torn down; it lives
// for the rest of the process.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player != nil {
		err := p.player.Close()
		p.player = nil
		p.started = false
		return err
	}
	return nil
}
