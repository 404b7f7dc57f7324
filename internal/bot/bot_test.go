package bot

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/chase3718/lou-chords/internal/chord"
	"github.com/chase3718/lou-chords/internal/explain"
	"github.com/chase3718/lou-chords/internal/fretboard"
	"github.com/chase3718/lou-chords/internal/render"
	"github.com/chase3718/lou-chords/internal/session"
)

func newBot(opts ...Option) (*Bot, *session.MemoryStore) {
	store := session.NewMemoryStore()
	return New(explain.New(), store, opts...), store
}

func texts(replies []Reply) []string {
	out := make([]string, len(replies))
	for i, r := range replies {
		out[i] = r.Text
	}
	return out
}

func handle(t *testing.T, b *Bot, user, text string) []Reply {
	t.Helper()
	replies, err := b.Handle(context.Background(), user, text)
	require.NoError(t, err)
	return replies
}

func TestHelp(t *testing.T) {
	b, _ := newBot()
	for _, cmd := range []string{"/start", "/help", "/help@lou_chords_bot"} {
		assert.Equal(t, []string{HelpText}, texts(handle(t, b, "1", cmd)))
	}
}

func TestUnknownCommand(t *testing.T) {
	b, _ := newBot()
	assert.Equal(t, []string{"unknown command /foo, try /help"}, texts(handle(t, b, "1", "/foo bar")))
}

func TestTune(t *testing.T) {
	b, store := newBot()

	assert.Equal(t, []string{"tuning cannot be empty"}, texts(handle(t, b, "1", "/tune")))
	assert.Equal(t, []string{"invalid tuning XYZ"}, texts(handle(t, b, "1", "/tune XYZ")))

	assert.Equal(t, []string{"tuning is set to EADG"}, texts(handle(t, b, "1", "/tuning EADG")))
	p, err := store.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "EADG", p.Tuning)

	assert.Equal(t, []string{"tuning is set to default (EBGDAE)"}, texts(handle(t, b, "1", "/tune Default")))
	p, err = store.Get("1")
	require.NoError(t, err)
	assert.Empty(t, p.Tuning)
}

func TestReverseToggles(t *testing.T) {
	b, store := newBot()
	assert.Equal(t, []string{"fret is now mirrored"}, texts(handle(t, b, "1", "/reverse")))
	assert.Equal(t, []string{"fret is now not mirrored"}, texts(handle(t, b, "1", "/reverse")))
	assert.Equal(t, []string{"fret is now mirrored"}, texts(handle(t, b, "1", "/reverse")))

	p, err := store.Get("2")
	require.NoError(t, err)
	assert.False(t, p.Reverse)
}

func TestExplain(t *testing.T) {
	defer goleak.VerifyNone(t)

	b, _ := newBot()
	replies := handle(t, b, "1", "Am, xyz")
	require.Len(t, replies, 2)

	assert.Equal(t, "Am: A C E", replies[0].Text)
	assert.True(t, replies[0].Minor)
	assert.NotEmpty(t, replies[0].Lines)
	assert.Equal(t, "schema.jpeg", replies[0].Filename)
	assert.Equal(t, []byte{0xff, 0xd8}, replies[0].Image[:2])

	assert.Equal(t, "xyz", replies[1].Symbol)
	assert.Equal(t, "xyz is not a valid chord name", replies[1].Text)
	assert.True(t, errors.Is(replies[1].Err, chord.ErrUnparseableSymbol))
	assert.Nil(t, replies[1].Image)
}

func TestExplainWithUserSettings(t *testing.T) {
	b, _ := newBot(WithRenderer(nil))
	handle(t, b, "1", "/tune EADG")
	handle(t, b, "1", "/reverse")

	replies := handle(t, b, "1", "E")
	require.Len(t, replies, 1)
	assert.Equal(t, "E: E G# B"+explain.MirroredSuffix+" (tuning: EADG)", replies[0].Text)
	assert.Nil(t, replies[0].Image)

	replies = handle(t, b, "2", "E")
	assert.Equal(t, "E: E G# B", replies[0].Text)
}

func TestExplainPNG(t *testing.T) {
	b, _ := newBot(WithFormat(render.PNG))
	replies := handle(t, b, "1", "C")
	require.Len(t, replies, 1)
	assert.Equal(t, "schema.png", replies[0].Filename)
	assert.Equal(t, []byte("\x89PNG"), replies[0].Image[:4])
}

func TestExplainCanceled(t *testing.T) {
	b, _ := newBot()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	replies, err := b.Handle(ctx, "1", "Am, C")
	require.NoError(t, err)
	require.Len(t, replies, 2)
	for _, r := range replies {
		assert.True(t, errors.Is(r.Err, context.Canceled))
		assert.Equal(t, r.Symbol+" could not be explained", r.Text)
	}
}

func TestExplainIsolatesMappingFailures(t *testing.T) {
	e := explain.New(explain.WithWindow(fretboard.Window{Start: 4, End: 2}))
	b := New(e, session.NewMemoryStore(), WithRenderer(nil))
	replies := handle(t, b, "1", "Am, xyz, C")
	require.Len(t, replies, 3)
	assert.Equal(t, []string{
		"Am could not be explained",
		"xyz is not a valid chord name",
		"C could not be explained",
	}, texts(replies))
	assert.True(t, errors.Is(replies[0].Err, fretboard.ErrInvalidWindow))
}

// flakyRenderer fails its first call only.
type flakyRenderer struct {
	calls int
	next  render.Renderer
}

func (r *flakyRenderer) Render(lines []string) (image.Image, error) {
	r.calls++
	if r.calls == 1 {
		return nil, errors.New("out of ink")
	}
	return r.next.Render(lines)
}

func TestExplainIsolatesRenderFailures(t *testing.T) {
	b, _ := newBot(WithRenderer(&flakyRenderer{next: render.NewTextImage()}), WithFormat(render.PNG))
	replies := handle(t, b, "1", "Am, C, E")
	require.Len(t, replies, 3)

	assert.Equal(t, "Am could not be explained", replies[0].Text)
	assert.Error(t, replies[0].Err)
	assert.Nil(t, replies[0].Image)

	for _, r := range replies[1:] {
		require.NoError(t, r.Err)
		assert.NotEmpty(t, r.Image)
	}
	assert.Equal(t, "C: C E G", replies[1].Text)
	assert.Equal(t, "E: E G# B", replies[2].Text)
}

func TestFileStoreBackedBot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.yaml")
	store, err := session.OpenFileStore(path)
	require.NoError(t, err)
	b := New(explain.New(), store, WithRenderer(nil))
	handle(t, b, "9", "/tune DADGAD")

	reopened, err := session.OpenFileStore(path)
	require.NoError(t, err)
	replies := handle(t, New(explain.New(), reopened, WithRenderer(nil)), "9", "D")
	assert.Equal(t, "D: D F# A (tuning: DADGAD)", replies[0].Text)
}
