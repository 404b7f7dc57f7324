package explain

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chase3718/lou-chords/internal/chord"
	"github.com/chase3718/lou-chords/internal/fretboard"
	"github.com/chase3718/lou-chords/internal/tuning"
)

const defaultWorkers = 4

// Explainer compiles chord symbols and maps them onto a fretboard. It holds
// no per-request state and is safe for concurrent use.
type Explainer struct {
	interp  *chord.Interpreter
	frets   int
	window  fretboard.Window
	workers int
	log     *zap.Logger
}

// Option configures an Explainer.
type Option func(*Explainer)

// WithLogger routes compile and mapping diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(e *Explainer) {
		if l != nil {
			e.log = l
		}
	}
}

// WithFrets sets the fret count of every fretboard built.
func WithFrets(n int) Option {
	return func(e *Explainer) {
		if n > 0 {
			e.frets = n
		}
	}
}

// WithWindow sets the fret window shown in diagrams.
func WithWindow(w fretboard.Window) Option {
	return func(e *Explainer) { e.window = w }
}

// WithWorkers bounds how many symbols of a batch are compiled at once.
func WithWorkers(n int) Option {
	return func(e *Explainer) {
		if n > 0 {
			e.workers = n
		}
	}
}

// New returns an Explainer with a 22-fret neck and the 0..11 window.
func New(opts ...Option) *Explainer {
	e := &Explainer{
		frets:   fretboard.DefaultFrets,
		window:  fretboard.DefaultWindow,
		workers: defaultWorkers,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.interp = chord.NewInterpreter(chord.WithLogger(e.log.Named("chord")))
	return e
}

// Compile turns one symbol into a chord.
func (e *Explainer) Compile(symbol string) (chord.Chord, error) {
	return e.interp.Compile(symbol)
}

// Explain compiles symbol and maps it onto t; a nil tuning is standard guitar.
func (e *Explainer) Explain(symbol string, t *tuning.Tuning, reverse bool) (*Diagram, error) {
	c, err := e.interp.Compile(symbol)
	if err != nil {
		return nil, err
	}
	fb := fretboard.New(t, fretboard.WithFrets(e.frets), fretboard.WithLogger(e.log.Named("fretboard")))
	d, err := Map(symbol, c, fb, e.window, reverse)
	if err != nil {
		return nil, err
	}
	e.log.Debug("chord explained",
		zap.String("symbol", symbol),
		zap.String("tones", c.String()),
		zap.String("tuning", fb.Tuning().Name()),
		zap.Bool("mirrored", reverse),
	)
	return d, nil
}

// Result is the outcome for one symbol of a batch.
type Result struct {
	Symbol  string
	Diagram *Diagram
	Err     error
}

// SplitSymbols splits comma-separated input into trimmed, non-empty symbols.
func SplitSymbols(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Batch explains every comma-separated symbol of text. Items are compiled
// in parallel and fail independently; results keep input order.
func (e *Explainer) Batch(ctx context.Context, text string, t *tuning.Tuning, reverse bool) []Result {
	symbols := SplitSymbols(text)
	results := make([]Result, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			results[i].Symbol = symbol
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			d, err := e.Explain(symbol, t, reverse)
			if err != nil {
				e.log.Info("chord not explained", zap.String("symbol", symbol), zap.Error(err))
				results[i].Err = err
				return nil
			}
			results[i].Diagram = d
			return nil
		})
	}
	_ = g.Wait()
	return results
}
