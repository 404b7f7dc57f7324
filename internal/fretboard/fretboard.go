// Package fretboard maps chord tones onto the strings and frets of a tuned
// instrument.
package fretboard

import (
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/chase3718/lou-chords/internal/chord"
	"github.com/chase3718/lou-chords/internal/pitch"
	"github.com/chase3718/lou-chords/internal/tuning"
)

// DefaultFrets is the fret count of a typical electric guitar neck.
const DefaultFrets = 22

// ErrInvalidWindow is returned for a fret window that is empty or negative.
var ErrInvalidWindow = errors.New("invalid fret window")

// Position is a 1-based string number and a fret number.
type Position struct {
	String int
	Fret   int
}

// Applicature maps each scale degree to every position sounding it.
type Applicature map[int][]Position

// Search bounds a note lookup. A zero Frets means the fretboard's own count.
type Search struct {
	Exact bool
	Capo  int
	Frets int
}

// Fretboard is a tuning with a finite number of frets.
type Fretboard struct {
	tuning *tuning.Tuning
	frets  int
	log    *zap.Logger
}

// Option configures a Fretboard.
type Option func(*Fretboard)

// WithFrets sets the number of frets.
func WithFrets(n int) Option {
	return func(f *Fretboard) {
		if n > 0 {
			f.frets = n
		}
	}
}

// WithLogger routes lookup diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(f *Fretboard) {
		if l != nil {
			f.log = l
		}
	}
}

// New returns a fretboard for t; a nil tuning means standard guitar.
func New(t *tuning.Tuning, opts ...Option) *Fretboard {
	if t == nil {
		t = tuning.Default()
	}
	f := &Fretboard{tuning: t, frets: DefaultFrets, log: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Tuning returns the fretboard's tuning.
func (f *Fretboard) Tuning() *tuning.Tuning { return f.tuning }

// Frets returns the number of frets.
func (f *Fretboard) Frets() int { return f.frets }

// Note returns the pitch sounding on string n (1-based) at fret.
func (f *Fretboard) Note(n, fret int) (pitch.Pitch, error) {
	open, err := f.tuning.StringAt(n)
	if err != nil {
		return pitch.Pitch{}, err
	}
	return open.Add(fret), nil
}

// FindNote returns, per string, where p can be played.
//
// In exact mode the fret is the signed distance from the open string and is
// kept only inside [Capo, Frets]. Otherwise the lowest fret sounding the same
// pitch class is taken, searching up from fret 0.
func (f *Fretboard) FindNote(p pitch.Pitch, s Search) []Position {
	frets := s.Frets
	if frets <= 0 {
		frets = f.frets
	}
	var out []Position
	for i, open := range f.tuning.Strings() {
		if s.Exact {
			fret := p.Sub(open)
			if fret >= s.Capo && fret <= frets {
				out = append(out, Position{String: i + 1, Fret: fret})
			}
			continue
		}
		for fret := 0; fret <= frets && fret < 12; fret++ {
			if open.Add(fret).SameClass(p) {
				out = append(out, Position{String: i + 1, Fret: fret})
				break
			}
		}
	}
	return out
}

// FindChord collects FindNote hits for every degree of c. A degree with no
// reachable position maps to an empty slice.
func (f *Fretboard) FindChord(c chord.Chord, s Search) Applicature {
	out := make(Applicature, c.Len())
	for _, d := range c.Degrees() {
		p, _ := c.Tone(d)
		positions := f.FindNote(p, s)
		sort.Slice(positions, func(i, j int) bool {
			a, b := positions[i], positions[j]
			return a.Fret < b.Fret || (a.Fret == b.Fret && a.String < b.String)
		})
		if positions == nil {
			positions = []Position{}
			f.log.Debug("degree unreachable", zap.Int("degree", d), zap.Stringer("pitch", p))
		}
		out[d] = positions
	}
	return out
}
