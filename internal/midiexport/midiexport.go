// Package midiexport writes compiled chords as a Standard MIDI File, one
// block chord after another.
package midiexport

import (
	"errors"
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"go.uber.org/zap"

	"github.com/chase3718/lou-chords/internal/chord"
)

const (
	// Resolution is the number of ticks per quarter note.
	Resolution = 480

	DefaultTempo    = 120.0
	DefaultVelocity = 100
	DefaultLength   = 4 * Resolution

	trackName = "lou-chords"
)

// ErrEmpty is returned when there is nothing to write.
var ErrEmpty = errors.New("no chords to export")

// Item is one chord of a progression with the symbol it came from.
type Item struct {
	Symbol string
	Chord  chord.Chord
}

// Exporter turns chords into MIDI tracks.
type Exporter struct {
	tempo    float64
	velocity uint8
	length   uint32
	channel  uint8
	log      *zap.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

func WithTempo(bpm float64) Option {
	return func(e *Exporter) {
		if bpm > 0 {
			e.tempo = bpm
		}
	}
}

func WithVelocity(v uint8) Option {
	return func(e *Exporter) {
		if v > 0 && v < 128 {
			e.velocity = v
		}
	}
}

// WithLength sets how many ticks every chord sounds.
func WithLength(ticks uint32) Option {
	return func(e *Exporter) {
		if ticks > 0 {
			e.length = ticks
		}
	}
}

func WithChannel(ch uint8) Option {
	return func(e *Exporter) {
		if ch < 16 {
			e.channel = ch
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.log = l
		}
	}
}

// New returns an Exporter at 120 bpm playing each chord for one 4/4 bar.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		tempo:    DefaultTempo,
		velocity: DefaultVelocity,
		length:   DefaultLength,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Keys returns the MIDI key of every tone of c, bass first, clamped to 0..127.
func Keys(c chord.Chord) []uint8 {
	keys := make([]uint8, 0, c.Len())
	for _, d := range c.Degrees() {
		p, _ := c.Tone(d)
		k := p.MIDIKey()
		switch {
		case k < 0:
			k = 0
		case k > 127:
			k = 127
		}
		keys = append(keys, uint8(k))
	}
	return keys
}

// Build lays items out one after another in a single track.
func (e *Exporter) Build(items []Item) (*smf.SMF, error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(Resolution)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(trackName))
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(e.tempo))
	for _, it := range items {
		keys := Keys(it.Chord)
		if it.Symbol != "" {
			tr.Add(0, smf.MetaMarker(it.Symbol))
		}
		for _, k := range keys {
			tr.Add(0, midi.NoteOn(e.channel, k, e.velocity))
		}
		for i, k := range keys {
			var delta uint32
			if i == 0 {
				delta = e.length
			}
			tr.Add(delta, midi.NoteOff(e.channel, k))
		}
		e.log.Debug("chord exported", zap.String("symbol", it.Symbol), zap.Int("keys", len(keys)))
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return nil, fmt.Errorf("add track: %w", err)
	}
	return s, nil
}

// WriteProgression writes items as a complete SMF to w.
func (e *Exporter) WriteProgression(w io.Writer, items []Item) error {
	s, err := e.Build(items)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("write smf: %w", err)
	}
	return nil
}

// WriteChord writes a single chord as a complete SMF to w.
func (e *Exporter) WriteChord(w io.Writer, symbol string, c chord.Chord) error {
	return e.WriteProgression(w, []Item{{Symbol: symbol, Chord: c}})
}
