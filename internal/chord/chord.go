// Package chord compiles chord symbols such as "Am7", "Dsus4/B" or
// "F#dim7/A" into a mapping from scale degree to pitch.
//
// A Chord is a value: every operation returns a new Chord and leaves the
// receiver untouched.
package chord

import (
	"sort"
	"strings"

	"github.com/chase3718/lou-chords/internal/pitch"
)

// Tonic is the scale degree of the root.
const Tonic = 1

// naturalMajor holds the semitone offset of each letter of C D E F G A B.
var naturalMajor = [7]int{0, 2, 4, 5, 7, 9, 11}

// Interval returns the semitones from the tonic to natural-major degree k
// (k >= 1), e.g. 3 -> 4, 5 -> 7, 9 -> 14.
func Interval(k int) int {
	return (k-1)/7*12 + naturalMajor[(k-1)%7]
}

// Chord maps scale degrees to pitches. Degree 1 always exists. Degrees at
// or below zero are bass notes added under the tonic.
type Chord struct {
	tones map[int]pitch.Pitch
	minor bool
}

// New returns a chord holding only its tonic.
func New(tonic pitch.Pitch) Chord {
	return Chord{tones: map[int]pitch.Pitch{Tonic: tonic}}
}

func (c Chord) clone() Chord {
	tones := make(map[int]pitch.Pitch, len(c.tones)+1)
	for d, p := range c.tones {
		tones[d] = p
	}
	return Chord{tones: tones, minor: c.minor}
}

func (c Chord) set(d int, p pitch.Pitch) Chord {
	out := c.clone()
	out.tones[d] = p
	return out
}

// Tonic returns degree 1.
func (c Chord) Tonic() pitch.Pitch { return c.tones[Tonic] }

// Tone returns the pitch at degree d.
func (c Chord) Tone(d int) (pitch.Pitch, bool) {
	p, ok := c.tones[d]
	return p, ok
}

// Has reports whether degree d is present.
func (c Chord) Has(d int) bool {
	_, ok := c.tones[d]
	return ok
}

// Len is the number of degrees, bass notes included.
func (c Chord) Len() int { return len(c.tones) }

// Degrees returns every degree in ascending order, bass notes first.
func (c Chord) Degrees() []int {
	out := make([]int, 0, len(c.tones))
	for d := range c.tones {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// Top returns the highest degree, or 0 for an empty chord.
func (c Chord) Top() int {
	d := c.Degrees()
	if len(d) == 0 {
		return 0
	}
	return d[len(d)-1]
}

// Minor reports whether the chord was built minor or diminished. It only
// affects display text.
func (c Chord) Minor() bool { return c.minor }

// WithMinor sets the minor display flag.
func (c Chord) WithMinor(minor bool) Chord {
	out := c.clone()
	out.minor = minor
	return out
}

// WithTonicSpelling re-expresses the tonic in another alphabet without
// changing its pitch.
func (c Chord) WithTonicSpelling(s pitch.Spelling) Chord {
	return c.set(Tonic, c.Tonic().WithSpelling(s))
}

// AddNatural inserts degree d at its natural-major interval above the
// tonic, replacing any pitch already there. Degrees below 2 are refused.
func (c Chord) AddNatural(d int) (Chord, bool) {
	if d < 2 {
		return c, false
	}
	tonic := c.Tonic()
	return c.set(d, tonic.Add(Interval(d)).WithSpelling(tonic.Spelling())), true
}

// ExpandTo fills every missing odd degree from 3 up to target. A new 7th is
// minor unless major7 is set. An even target is inserted on its own.
func (c Chord) ExpandTo(target int, major7 bool) Chord {
	out := c
	for d := 3; d <= target; d += 2 {
		if out.Has(d) {
			continue
		}
		out, _ = out.AddNatural(d)
		if d == 7 && !major7 {
			out, _ = out.Lower(7)
		}
	}
	if target%2 == 0 && !out.Has(target) {
		out, _ = out.AddNatural(target)
	}
	return out
}

// Lower flattens degree d by a semitone and spells it from the flat
// alphabet. The tonic and absent degrees are left alone.
func (c Chord) Lower(d int) (Chord, bool) {
	p, ok := c.tones[d]
	if !ok || d == Tonic {
		return c, false
	}
	return c.set(d, p.Add(-1).WithSpelling(pitch.Flat)), true
}

// Raise sharpens degree d by a semitone and spells it from the sharp
// alphabet. The tonic and absent degrees are left alone.
func (c Chord) Raise(d int) (Chord, bool) {
	p, ok := c.tones[d]
	if !ok || d == Tonic {
		return c, false
	}
	return c.set(d, p.Add(1).WithSpelling(pitch.Sharp)), true
}

// Remove deletes degree d. The tonic cannot be removed.
func (c Chord) Remove(d int) (Chord, bool) {
	if !c.Has(d) || d == Tonic {
		return c, false
	}
	out := c.clone()
	delete(out.tones, d)
	return out, true
}

// Suspend drops the third and inserts target. The flag reports whether a
// third was present.
func (c Chord) Suspend(target int) (Chord, bool) {
	out, removed := c.Remove(3)
	out, _ = out.AddNatural(target)
	return out, removed
}

// Diminish lowers every degree above the tonic.
func (c Chord) Diminish() Chord {
	out := c
	for _, d := range c.Degrees() {
		if d > Tonic {
			out, _ = out.Lower(d)
		}
	}
	return out.WithMinor(true)
}

// Augment raises the highest degree.
func (c Chord) Augment() (Chord, bool) {
	if c.Len() == 0 {
		return c, false
	}
	return c.Raise(c.Top())
}

// AddBass places p on the next free pseudo-degree at or below zero.
func (c Chord) AddBass(p pitch.Pitch) Chord {
	d := 0
	for c.Has(d) {
		d--
	}
	return c.set(d, p)
}

// Spelled pairs a degree with its pitch and resolved display name.
type Spelled struct {
	Degree int
	Pitch  pitch.Pitch
	Name   string
}

// Spell resolves display names for every degree, ascending. It never
// changes the chord.
func (c Chord) Spell() []Spelled {
	tonic := c.Tonic()
	degrees := c.Degrees()
	out := make([]Spelled, 0, len(degrees))
	for _, d := range degrees {
		p := c.tones[d]
		out = append(out, Spelled{Degree: d, Pitch: p, Name: spellingFor(d, p, tonic)})
	}
	return out
}

func spellingFor(d int, p, tonic pitch.Pitch) string {
	switch {
	case d == Tonic:
		return p.Display()
	case d == 2:
		return p.MinorName()
	case d >= 4 && d <= 6:
		return p.MajorName()
	}
	if ((p.Sub(tonic)%3)+3)%3 != 0 {
		return p.MajorName()
	}
	return p.MinorName()
}

// Names returns the spelled names in degree order.
func (c Chord) Names() []string {
	spelled := c.Spell()
	out := make([]string, len(spelled))
	for i, s := range spelled {
		out[i] = s.Name
	}
	return out
}

func (c Chord) String() string {
	return strings.Join(c.Names(), " ")
}
