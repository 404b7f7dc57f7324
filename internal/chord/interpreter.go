package chord

import (
	"go.uber.org/zap"

	"github.com/chase3718/lou-chords/internal/pitch"
)

const (
	// TonicOctave is the octave every compiled tonic is placed in.
	TonicOctave = 1

	// MaxDegree bounds alteration targets; larger ones are skipped.
	MaxDegree = 21
)

// Interpreter turns a parsed Symbol into a Chord. Inconsistent alterations
// (omitting an absent degree, raising the tonic) are logged and skipped.
type Interpreter struct {
	log *zap.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger routes step diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(in *Interpreter) {
		if l != nil {
			in.log = l
		}
	}
}

// NewInterpreter returns an Interpreter that logs nowhere by default.
func NewInterpreter(opts ...Option) *Interpreter {
	in := &Interpreter{log: zap.NewNop()}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

var defaultInterpreter = NewInterpreter()

// Compile parses and interprets a chord symbol with a silent Interpreter.
func Compile(symbol string) (Chord, error) {
	return defaultInterpreter.Compile(symbol)
}

// Compile parses and interprets a chord symbol.
func (in *Interpreter) Compile(symbol string) (Chord, error) {
	sym, err := Parse(symbol)
	if err != nil {
		in.log.Debug("chord symbol rejected", zap.String("symbol", symbol))
		return Chord{}, err
	}
	return in.Build(sym)
}

// Build applies the stages in a fixed order: character, extensions,
// modifications, omissions, modifier, bass.
func (in *Interpreter) Build(sym Symbol) (Chord, error) {
	log := in.log.With(zap.String("symbol", sym.Input))

	tonic, err := pitch.Parse(sym.Tonic, TonicOctave)
	if err != nil {
		return Chord{}, &SymbolError{Symbol: sym.Input}
	}
	c := New(tonic)
	log.Debug("tonic", zap.Stringer("pitch", tonic))

	c = in.applyCharacter(log, c, sym.Character)

	alterations := make([]Alteration, 0, len(sym.Alterations))
	for _, a := range sym.Alterations {
		if a.Degree < 2 || a.Degree > MaxDegree {
			log.Warn("alteration target out of range",
				zap.Stringer("op", a.Op), zap.Int("degree", a.Degree))
			continue
		}
		alterations = append(alterations, a)
	}

	for _, a := range alterations {
		switch a.Op {
		case OpMajor:
			c = c.ExpandTo(a.Degree, true)
		case OpExtend:
			c = c.ExpandTo(a.Degree, false)
			if a.Degree == 5 {
				c = in.omit(log, c, 3)
			}
		case OpAdd:
			c, _ = c.AddNatural(a.Degree)
			log.Debug("degree added", zap.Int("degree", a.Degree))
		}
	}

	for _, a := range alterations {
		switch a.Op {
		case OpLower:
			c = c.ExpandTo(a.Degree, false)
			c = in.lower(log, c, a.Degree)
		case OpRaise:
			c = c.ExpandTo(a.Degree, false)
			c = in.raise(log, c, a.Degree)
		case OpSuspend:
			var had bool
			c, had = c.Suspend(a.Degree)
			if !had {
				log.Debug("no third to suspend", zap.Int("degree", a.Degree))
			}
		}
	}

	for _, a := range alterations {
		if a.Op == OpOmit {
			c = in.omit(log, c, a.Degree)
		}
	}

	switch {
	case sym.Modifier == Diminished:
		c = c.Diminish()
		log.Debug("diminished")
	case sym.Modifier == Augmented || sym.AppendedPlus:
		var ok bool
		if c, ok = c.Augment(); !ok {
			log.Debug("nothing to augment")
		}
	}

	for _, name := range sym.Bass {
		p, err := pitch.Parse(name, tonic.Octave()-1)
		if err != nil {
			log.Warn("bass note skipped", zap.String("bass", name), zap.Error(err))
			continue
		}
		c = c.AddBass(p)
		log.Debug("bass added", zap.Stringer("pitch", p))
	}
	return c, nil
}

func (in *Interpreter) applyCharacter(log *zap.Logger, c Chord, ch Character) Chord {
	c = c.ExpandTo(5, false)
	switch ch {
	case Major:
		c = c.WithTonicSpelling(pitch.Sharp)
	case Minor:
		c = in.lower(log, c, 3)
		c = c.WithMinor(true).WithTonicSpelling(pitch.Flat)
	case Suspended:
		c, _ = c.Suspend(4)
	}
	log.Debug("character", zap.Stringer("character", ch))
	return c
}

func (in *Interpreter) lower(log *zap.Logger, c Chord, d int) Chord {
	out, ok := c.Lower(d)
	if !ok {
		log.Debug("no degree to lower", zap.Int("degree", d))
	}
	return out
}

func (in *Interpreter) raise(log *zap.Logger, c Chord, d int) Chord {
	out, ok := c.Raise(d)
	if !ok {
		log.Debug("no degree to raise", zap.Int("degree", d))
	}
	return out
}

func (in *Interpreter) omit(log *zap.Logger, c Chord, d int) Chord {
	out, ok := c.Remove(d)
	if !ok {
		log.Debug("no degree to omit", zap.Int("degree", d))
	}
	return out
}
