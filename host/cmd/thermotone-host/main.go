// Command thermotone-host runs the temperature-to-tone control loop on a PC:
// samples come in over a serial link (or from a built-in sweep generator) and
// the tone plays on the system audio device.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"thermotone/core"
	"thermotone/host/audio"
	"thermotone/host/config"
	"thermotone/host/serial"
	"thermotone/host/sim"
)

func main() {
	log.SetFlags(log.LstdFlags)
	log.SetPrefix("thermotone: ")

	app := cli.NewApp()
	app.Name = "thermotone-host"
	app.Usage = "play a tone that tracks a remote temperature sensor"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to a JSON or YAML config file",
		},
		cli.StringFlag{
			Name:  "device",
			Usage: "Serial device to read samples from (overrides config)",
		},
		cli.BoolFlag{
			Name:  "demo",
			Usage: "Ignore the sensor and sweep the sample range instead",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sampler, cleanup, err := buildSampler(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	tone, err := audio.NewPlayer(cfg.Tone.SampleRate, cfg.Tone.TimerClockHz)
	if err != nil {
		return err
	}
	defer tone.Close()

	loopCfg, err := cfg.LoopConfig()
	if err != nil {
		return err
	}

	calc := core.Calculator{ClockHz: cfg.Tone.TimerClockHz}
	loop := core.NewLoop(sampler, tone, calc, loopCfg)

	log.Printf("starting: source=%s shape=%s interval=%s", cfg.Source.Kind, cfg.Tone.Shape, loopCfg.Interval)
	err = loop.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Printf("stopped at %d Hz", loop.CurrentFrequency())
	return nil
}

// loadConfig resolves the file and flag layers: the config file is the base,
// command-line flags win.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if dev := c.String("device"); dev != "" {
		cfg.Source.Kind = "serial"
		cfg.Source.Device = dev
	}
	if c.Bool("demo") {
		cfg.Source.Kind = "ramp"
	}
	return cfg, nil
}

func buildSampler(cfg *config.Config) (core.Sampler, func(), error) {
	switch cfg.Source.Kind {
	case "serial":
		if cfg.Source.Device == "" {
			return nil, nil, errors.New("serial source needs a device (set --device or source.device)")
		}
		portCfg := serial.DefaultConfig(cfg.Source.Device)
		portCfg.Baud = cfg.Source.Baud
		port, err := serial.Open(portCfg)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("reading samples from %s at %d baud", cfg.Source.Device, cfg.Source.Baud)
		return serial.NewSampler(port), func() { port.Close() }, nil

	case "ramp":
		// Pace the sweep so the demo tone glides instead of jumping.
		return sim.NewRamp(cfg.Source.RampStep, 50*time.Millisecond), func() {}, nil

	default:
		return nil, nil, errors.New("unknown sample source " + cfg.Source.Kind)
	}
}
