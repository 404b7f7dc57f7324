// Package explain turns chord symbols into fretboard diagrams: a title, a
// legend of spelled tones and a text grid ready for rendering.
package explain

import (
	"slices"
	"strings"

	"github.com/chase3718/lou-chords/internal/chord"
	"github.com/chase3718/lou-chords/internal/fretboard"
)

// MirroredSuffix is appended to the title of a mirrored diagram.
const MirroredSuffix = " (fret is mirrored)"

// LegendEntry names the tone behind a schema label.
type LegendEntry struct {
	Label string
	Name  string
}

// Diagram is the mapped form of one chord.
type Diagram struct {
	Symbol   string
	Title    string
	Legend   []LegendEntry
	Mirrored bool
	Chord    chord.Chord

	schema fretboard.Schema
}

// Map lays c out on fb over w. Unless reverse is set the finished grid is
// flipped once so the highest string sits on top under the fret numbers.
func Map(symbol string, c chord.Chord, fb *fretboard.Fretboard, w fretboard.Window, reverse bool) (*Diagram, error) {
	schema, err := fb.Schema(c, w)
	if err != nil {
		return nil, err
	}
	d := &Diagram{
		Symbol:   symbol,
		Title:    symbol + ": " + c.String(),
		Mirrored: reverse,
		Chord:    c,
		schema:   schema,
	}
	if reverse {
		d.Title += MirroredSuffix
	}
	for _, s := range c.Spell() {
		d.Legend = append(d.Legend, LegendEntry{Label: fretboard.Label(s.Degree), Name: s.Name})
	}
	return d, nil
}

// Window is the fret range the diagram covers.
func (d *Diagram) Window() fretboard.Window { return d.schema.Window }

// Grid returns the label cells, one row per string, in display order.
func (d *Diagram) Grid() [][]string {
	rows := make([][]string, len(d.schema.Rows))
	for i, row := range d.schema.Rows {
		rows[i] = slices.Clone(row)
	}
	if !d.Mirrored {
		slices.Reverse(rows)
	}
	return rows
}

// Lines returns the text handed to a renderer: the grid in display order
// with the legend set to its right, or below it when the grid is too short.
func (d *Diagram) Lines() []string {
	lines := d.schema.Lines()
	if !d.Mirrored {
		slices.Reverse(lines)
	}

	annotation := []string{"", d.Symbol + ":"}
	for _, e := range d.Legend {
		annotation = append(annotation, e.Label+": "+e.Name)
	}
	if len(lines) >= len(annotation) {
		for i, a := range annotation {
			lines[i] += "   " + a
		}
		return lines
	}
	return append(lines, "", strings.Join(annotation, "  "))
}
