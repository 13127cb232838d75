// Package config loads the host configuration from JSON or YAML files and
// fills in defaults so an empty file is a valid, runnable setup.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"thermotone/core"
)

// SourceConfig selects where samples come from.
type SourceConfig struct {
	// Kind is "serial" for a live sensor board, or "ramp" for the built-in
	// sweep generator.
	Kind   string `json:"kind" yaml:"kind"`
	Device string `json:"device,omitempty" yaml:"device,omitempty"`
	Baud   int    `json:"baud,omitempty" yaml:"baud,omitempty"`

	// RampStep is the per-conversion increment of the sweep generator.
	RampStep int `json:"ramp_step,omitempty" yaml:"ramp_step,omitempty"`
}

// ToneConfig tunes the control loop and the audio output.
type ToneConfig struct {
	StartHz      uint32 `json:"start_hz,omitempty" yaml:"start_hz,omitempty"`
	ThresholdHz  uint32 `json:"threshold_hz,omitempty" yaml:"threshold_hz,omitempty"`
	IntervalMS   int    `json:"interval_ms,omitempty" yaml:"interval_ms,omitempty"`
	Shape        string `json:"shape,omitempty" yaml:"shape,omitempty"`
	TimerClockHz uint64 `json:"timer_clock_hz,omitempty" yaml:"timer_clock_hz,omitempty"`
	SampleRate   int    `json:"sample_rate,omitempty" yaml:"sample_rate,omitempty"`
}

// Config is the full host configuration.
type Config struct {
	Source SourceConfig `json:"source" yaml:"source"`
	Tone   ToneConfig   `json:"tone" yaml:"tone"`
}

// Default returns the configuration used when no file is given: the ramp
// source, so the binary makes sound out of the box.
func Default() *Config {
	cfg := &Config{Source: SourceConfig{Kind: "ramp"}}
	applyDefaults(cfg)
	return cfg
}

// Load reads a configuration file. Files ending in .yaml or .yml are parsed
// as YAML, everything else as JSON.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills in missing configuration values with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Source.Kind == "" {
		cfg.Source.Kind = "ramp"
	}
	if cfg.Source.Baud == 0 {
		cfg.Source.Baud = 115200
	}

	if cfg.Tone.StartHz == 0 {
		cfg.Tone.StartHz = uint32(core.DefaultFrequency)
	}
	if cfg.Tone.ThresholdHz == 0 {
		cfg.Tone.ThresholdHz = core.DefaultThreshold
	}
	if cfg.Tone.IntervalMS == 0 {
		cfg.Tone.IntervalMS = 100
	}
	if cfg.Tone.Shape == "" {
		cfg.Tone.Shape = "triangle"
	}
	if cfg.Tone.TimerClockHz == 0 {
		cfg.Tone.TimerClockHz = core.DefaultClockHz
	}
	if cfg.Tone.SampleRate == 0 {
		cfg.Tone.SampleRate = 48000
	}
}

// ParseShape converts a shape name from the config file to a waveform.
func ParseShape(name string) (core.WaveShape, error) {
	switch strings.ToLower(name) {
	case "triangle", "":
		return core.ShapeTriangle, nil
	case "square":
		return core.ShapeSquare, nil
	case "sawtooth", "saw":
		return core.ShapeSawtooth, nil
	default:
		return 0, fmt.Errorf("unknown wave shape %q", name)
	}
}

// LoopConfig converts the tone section into the control loop's own settings.
func (c *Config) LoopConfig() (core.LoopConfig, error) {
	shape, err := ParseShape(c.Tone.Shape)
	if err != nil {
		return core.LoopConfig{}, err
	}
	return core.LoopConfig{
		StartFrequency: core.Frequency(c.Tone.StartHz),
		Threshold:      c.Tone.ThresholdHz,
		Interval:       time.Duration(c.Tone.IntervalMS) * time.Millisecond,
		Shape:          shape,
	}, nil
}
