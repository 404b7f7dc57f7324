package fretboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chase3718/lou-chords/internal/chord"
)

// Blank marks a cell no chord tone falls on.
const Blank = " "

// RootLabel marks the tonic in a schema.
const RootLabel = "R"

// Window is an inclusive fret range.
type Window struct {
	Start int
	End   int
}

// DefaultWindow covers the open string and the first eleven frets.
var DefaultWindow = Window{Start: 0, End: 11}

// Validate rejects negative or inverted windows.
func (w Window) Validate() error {
	if w.Start < 0 || w.End < w.Start {
		return fmt.Errorf("%w: %d..%d", ErrInvalidWindow, w.Start, w.End)
	}
	return nil
}

// Width is the number of frets in the window.
func (w Window) Width() int { return w.End - w.Start + 1 }

// Schema is a string-by-fret grid of degree labels. Rows run from the last
// string of the tuning (the lowest, by convention) to the first.
type Schema struct {
	Window Window
	Rows   [][]string
}

// Label returns the schema label of degree d.
func Label(d int) string {
	if d == chord.Tonic {
		return RootLabel
	}
	return strconv.Itoa(d)
}

// Schema lays the chord out over w. When several degrees share a pitch
// class the lowest real degree wins; bass notes only label cells no real
// degree claims, so the E of C/E is labelled 3 rather than 0.
func (f *Fretboard) Schema(c chord.Chord, w Window) (Schema, error) {
	if err := w.Validate(); err != nil {
		return Schema{}, err
	}

	labels := make(map[int]string, c.Len())
	degrees := c.Degrees()
	for _, d := range degrees {
		if d < chord.Tonic {
			continue
		}
		p, _ := c.Tone(d)
		if _, taken := labels[p.Class()]; !taken {
			labels[p.Class()] = Label(d)
		}
	}
	for _, d := range degrees {
		if d >= chord.Tonic {
			continue
		}
		p, _ := c.Tone(d)
		if _, taken := labels[p.Class()]; !taken {
			labels[p.Class()] = Label(d)
		}
	}

	strs := f.tuning.Strings()
	rows := make([][]string, 0, len(strs))
	for i := len(strs) - 1; i >= 0; i-- {
		row := make([]string, 0, w.Width())
		for fret := w.Start; fret <= w.End; fret++ {
			label, ok := labels[strs[i].Add(fret).Class()]
			if !ok {
				label = Blank
			}
			row = append(row, label)
		}
		rows = append(rows, row)
	}
	return Schema{Window: w, Rows: rows}, nil
}

// Lines renders the grid as text: one line per string, a blank spacer line
// and a line of fret numbers.
func (s Schema) Lines() []string {
	lines := make([]string, 0, len(s.Rows)+2)
	for _, row := range s.Rows {
		cells := make([]string, len(row))
		for i, label := range row {
			cells[i] = fmt.Sprintf("%3s", " "+label)
		}
		lines = append(lines, strings.Join(cells, "|"))
	}
	lines = append(lines, strings.Repeat(" ", 4*s.Window.Width()-1))

	frets := make([]string, 0, s.Window.Width())
	for fret := s.Window.Start; fret <= s.Window.End; fret++ {
		frets = append(frets, fmt.Sprintf("%3d", fret))
	}
	lines = append(lines, strings.Join(frets, " "))
	return lines
}
