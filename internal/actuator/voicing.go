package actuator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chase3718/lou-chords/internal/chord"
	"github.com/chase3718/lou-chords/internal/fretboard"
)

// -------------------- Voicing --------------------

// Voicer picks one fret per string for a chord.
type Voicer struct {
	log *zap.Logger
}

// NewVoicer returns a Voicer logging to l; nil means no logging.
func NewVoicer(l *zap.Logger) *Voicer {
	if l == nil {
		l = zap.NewNop()
	}
	return &Voicer{log: l}
}

// Voicing assigns each string the lowest fret inside w that sounds any tone
// of c, bass included. Strings with no such fret stay muted and unstrummed.
func (v *Voicer) Voicing(fb *fretboard.Fretboard, c chord.Chord, w fretboard.Window, seq byte) (Frame, error) {
	if err := w.Validate(); err != nil {
		return Frame{}, err
	}
	if w.End >= Muted {
		return Frame{}, fmt.Errorf("%w: fret %d does not fit a frame", ErrFrame, w.End)
	}
	n := fb.Tuning().Len()
	if n > MaxStrings {
		return Frame{}, fmt.Errorf("%w: %d strings", ErrFrame, n)
	}

	var tones []int
	for _, d := range c.Degrees() {
		p, _ := c.Tone(d)
		tones = append(tones, p.Class())
	}

	f := EmptyFrame(n, seq)
	for i := range f.Fret {
		// Tuning strings run high to low; the frame runs low to high.
		str := n - i
		for fret := w.Start; fret <= w.End; fret++ {
			p, err := fb.Note(str, fret)
			if err != nil {
				return Frame{}, err
			}
			if !containsClass(tones, p.Class()) {
				continue
			}
			f.Fret[i] = byte(fret)
			f.StrumMask |= 1 << i
			v.log.Debug("mapping: string voiced", zap.Int("string", str), zap.Int("fret", fret), zap.Stringer("pitch", p))
			break
		}
		if f.Fret[i] == Muted {
			v.log.Debug("mapping: string muted (no chord tone in window)", zap.Int("string", str))
		}
	}
	f.Duration = DefaultDuration
	v.log.Debug("mapping: frame built",
		zap.Uint8("seq", seq),
		zap.Int("tones", c.Len()),
		zap.Uint8("strum_mask", f.StrumMask),
	)
	return f, nil
}

func containsClass(classes []int, class int) bool {
	for _, c := range classes {
		if c == class {
			return true
		}
	}
	return false
}
