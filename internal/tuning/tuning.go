// Package tuning builds the ordered open-string pitches of a stringed
// instrument from a tuning name such as "EBGDAE" or "EADG".
package tuning

import (
	"strings"

	"github.com/chase3718/lou-chords/internal/pitch"
)

// DefaultName is standard six-string guitar tuning, highest string first.
const DefaultName = "EBGDAE"

// DefaultOctaveOrder assigns octaves positionally; strings past the end
// reuse the last entry.
var DefaultOctaveOrder = []int{2, 1, 1, 1, 0}

const allowed = "ABCDEFGH#b"

// Tuning is an ordered list of open strings. Index 0 is the first letter of
// the name, which by convention is the highest string.
type Tuning struct {
	name    string
	octaves []int
	strings []pitch.Pitch
}

// Option configures New.
type Option func(*Tuning)

// WithOctaveOrder overrides DefaultOctaveOrder.
func WithOctaveOrder(order ...int) Option {
	return func(t *Tuning) {
		if len(order) > 0 {
			t.octaves = append([]int(nil), order...)
		}
	}
}

// New parses a tuning name. Every letter appends a string; a '#' raises the
// most recently added string by one semitone instead of adding one.
func New(name string, opts ...Option) (*Tuning, error) {
	if name == "" || strings.Trim(name, allowed) != "" {
		return nil, &NameError{Name: name}
	}
	t := &Tuning{name: name, octaves: DefaultOctaveOrder}
	for _, opt := range opts {
		opt(t)
	}
	for _, r := range name {
		if r == '#' {
			if len(t.strings) == 0 {
				return nil, &NameError{Name: name}
			}
			last := len(t.strings) - 1
			t.strings[last] = t.strings[last].Add(1)
			continue
		}
		p, err := pitch.Parse(string(r), t.octave(len(t.strings)))
		if err != nil {
			return nil, &NameError{Name: name}
		}
		t.strings = append(t.strings, p)
	}
	return t, nil
}

// Default returns the standard guitar tuning.
func Default() *Tuning {
	t, err := New(DefaultName)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tuning) octave(n int) int {
	if n >= len(t.octaves) {
		return t.octaves[len(t.octaves)-1]
	}
	return t.octaves[n]
}

// Name is the name the tuning was built from.
func (t *Tuning) Name() string { return t.name }

// Len is the number of strings.
func (t *Tuning) Len() int { return len(t.strings) }

// IsDefault reports whether t is standard guitar tuning.
func (t *Tuning) IsDefault() bool { return t.name == DefaultName }

// StringAt returns the open pitch of string n, counted from 1.
func (t *Tuning) StringAt(n int) (pitch.Pitch, error) {
	if n < 1 || n > len(t.strings) {
		return pitch.Pitch{}, &StringError{String: n, Count: len(t.strings), Tuning: t.name}
	}
	return t.strings[n-1], nil
}

// Strings returns a copy of the open-string pitches in order.
func (t *Tuning) Strings() []pitch.Pitch {
	return append([]pitch.Pitch(nil), t.strings...)
}

// Describe lists every string with its octave, e.g. "E2 B1 G1 D1 A0 E0".
func (t *Tuning) Describe() string {
	parts := make([]string, len(t.strings))
	for i, s := range t.strings {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

func (t *Tuning) String() string { return t.name }
