// Package pitch implements semitone and octave arithmetic over the two
// enharmonic note alphabets used for chord spelling.
package pitch

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// Spelling selects the alphabet a pitch takes its default name from.
type Spelling int

const (
	Sharp Spelling = iota // major context: C C# D D# ...
	Flat                  // minor context: C Db D Eb ...
)

func (s Spelling) String() string {
	if s == Flat {
		return "flat"
	}
	return "sharp"
}

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flatNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// naturals maps a letter to its sharp-alphabet position. H is the German B.
var naturals = map[rune]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11, 'H': 11}

// A4 in concert pitch sits at octave 1 in this package's numbering.
const (
	referenceOctave = 1
	referenceClass  = 9
	referenceHz     = 440.0
	referenceMIDI   = 69
)

// Pitch is a pitch class plus an octave. The zero value is C0.
//
// The semitone identity (class, octave) never changes when the spelling or
// the display name is replaced; both only affect rendering.
type Pitch struct {
	class    int
	octave   int
	spelling Spelling
	display  string
}

// New returns the pitch at sharp-alphabet position class (0..11) in octave.
func New(class, octave int, spelling Spelling) Pitch {
	p := Pitch{octave: octave, spelling: spelling}
	return p.Add(class)
}

// Parse builds a pitch from a free-form note name. Only the first two
// characters are read; the letter is upper-cased and the accidental
// lower-cased. Names outside both alphabets (E#, Cb, H) resolve to their
// pitch class and keep the written form as display name.
func Parse(name string, octave int) (Pitch, error) {
	key := normalize(name)
	if key == "" {
		return Pitch{}, &NoteError{Name: name}
	}
	for i, n := range sharpNames {
		if n == key {
			return Pitch{class: i, octave: octave, spelling: Sharp, display: key}, nil
		}
	}
	for i, n := range flatNames {
		if n == key {
			return Pitch{class: i, octave: octave, spelling: Flat, display: key}, nil
		}
	}

	r := []rune(key)
	natural, ok := naturals[r[0]]
	if !ok {
		return Pitch{}, &NoteError{Name: name}
	}
	p := Pitch{class: natural, octave: octave, spelling: Sharp}
	if len(r) == 2 {
		switch r[1] {
		case '#':
			p = p.Add(1)
		case 'b':
			p = p.Add(-1)
			p.spelling = Flat
		default:
			return Pitch{}, &NoteError{Name: name}
		}
	}
	p.display = key
	return p, nil
}

// MustParse is like Parse but panics on an unknown name.
func MustParse(name string, octave int) Pitch {
	p, err := Parse(name, octave)
	if err != nil {
		panic(err)
	}
	return p
}

func normalize(name string) string {
	r := []rune(strings.TrimSpace(name))
	if len(r) == 0 {
		return ""
	}
	if len(r) > 2 {
		r = r[:2]
	}
	r[0] = unicode.ToUpper(r[0])
	if len(r) == 2 {
		r[1] = unicode.ToLower(r[1])
	}
	return string(r)
}

// Class returns the sharp-alphabet position, 0 (C) to 11 (B).
func (p Pitch) Class() int { return p.class }

// Octave returns the octave number.
func (p Pitch) Octave() int { return p.octave }

// Spelling returns the spelling context.
func (p Pitch) Spelling() Spelling { return p.spelling }

// Add returns p moved by n semitones, carrying into the octave.
func (p Pitch) Add(n int) Pitch {
	total := p.octave*12 + p.class + n
	octave := total / 12
	class := total % 12
	if class < 0 {
		class += 12
		octave--
	}
	return Pitch{class: class, octave: octave, spelling: p.spelling}
}

// Sub returns the signed semitone distance p - o.
func (p Pitch) Sub(o Pitch) int {
	return (p.octave-o.octave)*12 + p.class - o.class
}

// SameClass reports whether p and o name the same pitch class.
func (p Pitch) SameClass(o Pitch) bool { return p.class == o.class }

// Equal reports whether p and o are the same semitone, ignoring spelling.
func (p Pitch) Equal(o Pitch) bool { return p.Sub(o) == 0 }

// WithSpelling re-expresses the same pitch in the other alphabet.
func (p Pitch) WithSpelling(s Spelling) Pitch {
	p.spelling = s
	return p
}

// WithDisplay stores a preferred name used only for rendering.
func (p Pitch) WithDisplay(name string) Pitch {
	p.display = name
	return p
}

// Name is the name in the current spelling context.
func (p Pitch) Name() string {
	if p.spelling == Flat {
		return flatNames[p.class]
	}
	return sharpNames[p.class]
}

// MajorName is the sharp-alphabet name regardless of context.
func (p Pitch) MajorName() string { return sharpNames[p.class] }

// MinorName is the flat-alphabet name regardless of context.
func (p Pitch) MinorName() string { return flatNames[p.class] }

// Display is the preferred rendering name, falling back to Name.
func (p Pitch) Display() string {
	if p.display != "" {
		return p.display
	}
	return p.Name()
}

// Frequency is the equal-tempered frequency in Hz.
func (p Pitch) Frequency() float64 {
	n := p.Sub(Pitch{class: referenceClass, octave: referenceOctave})
	return referenceHz * math.Pow(2, float64(n)/12)
}

// MIDIKey is the MIDI note number matching Frequency.
func (p Pitch) MIDIKey() int {
	return referenceMIDI + p.Sub(Pitch{class: referenceClass, octave: referenceOctave})
}

func (p Pitch) String() string {
	return fmt.Sprintf("%s%d", p.Name(), p.octave)
}
