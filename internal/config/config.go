// Package config holds lou-chords settings loaded from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/chase3718/lou-chords/internal/fretboard"
	"github.com/chase3718/lou-chords/internal/render"
	"github.com/chase3718/lou-chords/internal/tuning"
)

// Config is the top-level configuration.
type Config struct {
	Tuning    string          `yaml:"tuning"`
	Fretboard FretboardConfig `yaml:"fretboard"`
	Output    OutputConfig    `yaml:"output"`
	Session   SessionConfig   `yaml:"session"`
	Batch     BatchConfig     `yaml:"batch"`
	MIDI      MIDIConfig      `yaml:"midi"`
	Serial    SerialConfig    `yaml:"serial"`
}

// FretboardConfig sizes the neck and the window shown in diagrams.
type FretboardConfig struct {
	Frets       int `yaml:"frets"`
	WindowStart int `yaml:"window_start"`
	WindowEnd   int `yaml:"window_end"`
	Capo        int `yaml:"capo"`
}

// OutputConfig controls rendered images.
type OutputConfig struct {
	Format string `yaml:"format"` // png or jpeg
	Dir    string `yaml:"dir"`
}

// SessionConfig locates the per-user preference store.
type SessionConfig struct {
	Path string `yaml:"path"`
}

type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// MIDIConfig controls Standard MIDI File export.
type MIDIConfig struct {
	Tempo    float64 `yaml:"tempo"`
	Velocity int     `yaml:"velocity"`
	Length   int     `yaml:"length"` // ticks per chord
}

// SerialConfig addresses the strumming controller.
type SerialConfig struct {
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Tuning: tuning.DefaultName,
		Fretboard: FretboardConfig{
			Frets:       fretboard.DefaultFrets,
			WindowStart: fretboard.DefaultWindow.Start,
			WindowEnd:   fretboard.DefaultWindow.End,
		},
		Output: OutputConfig{
			Format: string(render.PNG),
			Dir:    ".",
		},
		Session: SessionConfig{
			Path: filepath.Join(".lou-chords", "sessions.yaml"),
		},
		Batch: BatchConfig{Workers: 4},
		MIDI: MIDIConfig{
			Tempo:    120,
			Velocity: 100,
			Length:   1920,
		},
		Serial: SerialConfig{
			Device: "/dev/ttyACM0",
			Baud:   115200,
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LOU_CHORDS_TUNING"); v != "" {
		c.Tuning = v
	}
	if v := os.Getenv("LOU_CHORDS_STORE"); v != "" {
		c.Session.Path = v
	}
	if v := os.Getenv("LOU_CHORDS_SERIAL"); v != "" {
		c.Serial.Device = v
	}
	if v := os.Getenv("LOU_CHORDS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Batch.Workers = n
		}
	}
}

// Validate checks the configuration for values nothing downstream can use.
func (c *Config) Validate() error {
	var errs []error
	if _, err := tuning.New(c.Tuning); err != nil {
		errs = append(errs, err)
	}
	if c.Fretboard.Frets <= 0 {
		errs = append(errs, fmt.Errorf("fretboard.frets must be positive, got %d", c.Fretboard.Frets))
	}
	if err := c.Window().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Fretboard.Capo < 0 || c.Fretboard.Capo > c.Fretboard.Frets {
		errs = append(errs, fmt.Errorf("fretboard.capo %d outside 0..%d", c.Fretboard.Capo, c.Fretboard.Frets))
	}
	if _, err := render.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Batch.Workers <= 0 {
		errs = append(errs, fmt.Errorf("batch.workers must be positive, got %d", c.Batch.Workers))
	}
	if c.MIDI.Velocity < 1 || c.MIDI.Velocity > 127 {
		errs = append(errs, fmt.Errorf("midi.velocity %d outside 1..127", c.MIDI.Velocity))
	}
	if c.MIDI.Tempo <= 0 {
		errs = append(errs, fmt.Errorf("midi.tempo must be positive, got %v", c.MIDI.Tempo))
	}
	if c.MIDI.Length <= 0 {
		errs = append(errs, fmt.Errorf("midi.length must be positive, got %d", c.MIDI.Length))
	}
	return errors.Join(errs...)
}

// Window is the configured diagram window.
func (c *Config) Window() fretboard.Window {
	return fretboard.Window{Start: c.Fretboard.WindowStart, End: c.Fretboard.WindowEnd}
}

// TuningValue parses the configured tuning.
func (c *Config) TuningValue() (*tuning.Tuning, error) {
	return tuning.New(c.Tuning)
}
