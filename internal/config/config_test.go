package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chase3718/lou-chords/internal/fretboard"
	"github.com/chase3718/lou-chords/internal/render"
	"github.com/chase3718/lou-chords/internal/tuning"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "EBGDAE", cfg.Tuning)
	assert.Equal(t, 22, cfg.Fretboard.Frets)
	assert.Equal(t, fretboard.DefaultWindow, cfg.Window())

	tun, err := cfg.TuningValue()
	require.NoError(t, err)
	assert.True(t, tun.IsDefault())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("tuning: EADG\nfretboard:\n  window_end: 5\noutput:\n  format: jpeg\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "EADG", cfg.Tuning)
	assert.Equal(t, fretboard.Window{Start: 0, End: 5}, cfg.Window())
	assert.Equal(t, 22, cfg.Fretboard.Frets)
	assert.Equal(t, string(render.JPEG), cfg.Output.Format)
	assert.Equal(t, 120.0, cfg.MIDI.Tempo)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tuning: [\n"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Tuning = "DADGAD"
	cfg.Serial.Device = "/dev/ttyUSB1"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LOU_CHORDS_TUNING", "EADGBE")
	t.Setenv("LOU_CHORDS_STORE", "/tmp/s.yaml")
	t.Setenv("LOU_CHORDS_SERIAL", "/dev/ttyUSB0")
	t.Setenv("LOU_CHORDS_WORKERS", "8")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "EADGBE", cfg.Tuning)
	assert.Equal(t, "/tmp/s.yaml", cfg.Session.Path)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Device)
	assert.Equal(t, 8, cfg.Batch.Workers)
}

func TestEnvOverrideIgnoresBadWorkers(t *testing.T) {
	t.Setenv("LOU_CHORDS_WORKERS", "many")
	cfg := DefaultConfig()
	cfg.applyEnvOverrides()
	assert.Equal(t, 4, cfg.Batch.Workers)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"bad tuning", func(c *Config) { c.Tuning = "XYZ" }, tuning.ErrInvalidName},
		{"inverted window", func(c *Config) { c.Fretboard.WindowStart = 9; c.Fretboard.WindowEnd = 2 }, fretboard.ErrInvalidWindow},
		{"bad format", func(c *Config) { c.Output.Format = "gif" }, render.ErrUnknownFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target))
		})
	}

	cfg := DefaultConfig()
	cfg.Fretboard.Frets = 0
	assert.Error(t, cfg.Validate())
	cfg = DefaultConfig()
	cfg.Batch.Workers = 0
	assert.Error(t, cfg.Validate())
	cfg = DefaultConfig()
	cfg.MIDI.Velocity = 200
	assert.Error(t, cfg.Validate())
}

func TestValidateMIDITiming(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("midi:\n  length: -1\n  tempo: -5\n"), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "midi.length")
	assert.Contains(t, err.Error(), "midi.tempo")

	cfg = DefaultConfig()
	cfg.MIDI.Length = 0
	assert.Error(t, cfg.Validate())
	cfg = DefaultConfig()
	cfg.MIDI.Tempo = 0
	assert.Error(t, cfg.Validate())
}
