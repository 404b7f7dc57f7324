// Package bot answers chat messages: slash commands change per-user
// settings and any other text is explained chord by chord.
package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/chase3718/lou-chords/internal/chord"
	"github.com/chase3718/lou-chords/internal/explain"
	"github.com/chase3718/lou-chords/internal/render"
	"github.com/chase3718/lou-chords/internal/session"
	"github.com/chase3718/lou-chords/internal/tuning"
)

// HelpText is the reply to /start and /help.
const HelpText = `Input a chord name, eg: Am7 or Dsus4/B

Use comma (",") to input multiple chords, e.g.: "Am, Dm, E"
Commands:
  /help - this help ;)
  /tune <tuning> - change tuning, eg, "/tune EADG" for 4-string bass guitar
  /tune default - returns tuning to classic EBGDAE
  /reverse - mirror the fret diagram`

// Reply is one outgoing message. A diagram reply carries the grid lines and
// the rendered image alongside its caption.
type Reply struct {
	Symbol   string
	Text     string
	Lines    []string
	Image    []byte
	Filename string
	Minor    bool
	Err      error // set when the item failed
}

// Bot is transport independent; a chat client feeds it (user, text) pairs
// and delivers the replies.
type Bot struct {
	explainer *explain.Explainer
	store     session.Store
	renderer  render.Renderer
	format    render.Format
	log       *zap.Logger
}

// Option configures a Bot.
type Option func(*Bot)

func WithLogger(l *zap.Logger) Option {
	return func(b *Bot) {
		if l != nil {
			b.log = l
		}
	}
}

// WithRenderer replaces the image renderer; nil disables images.
func WithRenderer(r render.Renderer) Option {
	return func(b *Bot) { b.renderer = r }
}

// WithFormat sets the image encoding.
func WithFormat(f render.Format) Option {
	return func(b *Bot) { b.format = f }
}

// New returns a Bot rendering JPEG images.
func New(e *explain.Explainer, store session.Store, opts ...Option) *Bot {
	b := &Bot{
		explainer: e,
		store:     store,
		renderer:  render.NewTextImage(),
		format:    render.JPEG,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Handle answers one message from user.
func (b *Bot) Handle(ctx context.Context, user, text string) ([]Reply, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "/") {
		return b.command(user, text)
	}
	return b.explain(ctx, user, text)
}

func (b *Bot) command(user, text string) ([]Reply, error) {
	fields := strings.Fields(text)
	name := strings.TrimPrefix(fields[0], "/")
	// Group chats address commands as /cmd@botname.
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	args := fields[1:]

	switch name {
	case "start", "help":
		return text1(HelpText), nil
	case "tune", "tuning":
		return b.tune(user, args)
	case "reverse":
		return b.reverse(user)
	}
	return text1(fmt.Sprintf("unknown command /%s, try /help", name)), nil
}

func (b *Bot) tune(user string, args []string) ([]Reply, error) {
	if len(args) == 0 {
		return text1("tuning cannot be empty"), nil
	}
	prefs, err := b.store.Get(user)
	if err != nil {
		return nil, err
	}
	name := args[0]
	if strings.EqualFold(name, "default") {
		prefs.Tuning = ""
		if err := b.store.Put(user, prefs); err != nil {
			return nil, err
		}
		return text1(fmt.Sprintf("tuning is set to default (%s)", tuning.DefaultName)), nil
	}

	t, err := tuning.New(name)
	if err != nil {
		b.log.Debug("tuning rejected", zap.String("user", user), zap.Error(err))
		return text1("invalid tuning " + name), nil
	}
	prefs.Tuning = t.Name()
	if err := b.store.Put(user, prefs); err != nil {
		return nil, err
	}
	b.log.Info("tuning changed", zap.String("user", user), zap.String("tuning", t.Name()))
	return text1("tuning is set to " + t.Name()), nil
}

func (b *Bot) reverse(user string) ([]Reply, error) {
	prefs, err := b.store.Get(user)
	if err != nil {
		return nil, err
	}
	prefs.Reverse = !prefs.Reverse
	if err := b.store.Put(user, prefs); err != nil {
		return nil, err
	}
	if prefs.Reverse {
		return text1("fret is now mirrored"), nil
	}
	return text1("fret is now not mirrored"), nil
}

func (b *Bot) explain(ctx context.Context, user, text string) ([]Reply, error) {
	prefs, err := b.store.Get(user)
	if err != nil {
		return nil, err
	}
	var (
		t      *tuning.Tuning
		suffix string
	)
	if prefs.Tuning != "" {
		if t, err = tuning.New(prefs.Tuning); err != nil {
			return nil, fmt.Errorf("stored tuning for %s: %w", user, err)
		}
		suffix = " (tuning: " + t.Name() + ")"
	}
	b.log.Debug("explaining", zap.String("user", user), zap.String("tuning", prefs.TuningName()))

	var replies []Reply
	for _, res := range b.explainer.Batch(ctx, text, t, prefs.Reverse) {
		if res.Err != nil {
			replies = append(replies, b.failed(res.Symbol, res.Err))
			continue
		}
		r := Reply{
			Symbol: res.Symbol,
			Text:   res.Diagram.Title + suffix,
			Lines:  res.Diagram.Lines(),
			Minor:  res.Diagram.Chord.Minor(),
		}
		if b.renderer != nil {
			var buf bytes.Buffer
			if err := render.Encode(&buf, b.renderer, r.Lines, b.format); err != nil {
				replies = append(replies, b.failed(res.Symbol, fmt.Errorf("render: %w", err)))
				continue
			}
			r.Image = buf.Bytes()
			r.Filename = "schema." + b.format.Ext()
		}
		replies = append(replies, r)
	}
	return replies, nil
}

// failed turns one item's error into its reply; the rest of the batch
// still gets answered.
func (b *Bot) failed(symbol string, err error) Reply {
	r := Reply{Symbol: symbol, Err: err}
	if errors.Is(err, chord.ErrUnparseableSymbol) {
		r.Text = symbol + " is not a valid chord name"
		return r
	}
	b.log.Warn("chord not answered", zap.String("symbol", symbol), zap.Error(err))
	r.Text = symbol + " could not be explained"
	return r
}

func text1(s string) []Reply {
	return []Reply{{Text: s}}
}
