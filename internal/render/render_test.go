package render

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextImageSize(t *testing.T) {
	img, err := NewTextImage().Render([]string{"  0   1   2", "  R|   |  3"})
	require.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, 512, b.Dx())
	assert.Equal(t, 2*16+32, b.Dy())

	long := strings.Repeat("x", 100)
	img, err = NewTextImage().Render([]string{long})
	require.NoError(t, err)
	assert.Equal(t, 100*7+32, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestTextImageBackground(t *testing.T) {
	img, err := NewTextImage().Render([]string{"R"})
	require.NoError(t, err)
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xf0f0), r)
	assert.Equal(t, uint32(0xf0f0), g)
	assert.Equal(t, uint32(0xe0e0), b)
}

func TestTextImageDrawsText(t *testing.T) {
	img, err := NewTextImage().Render([]string{"RRRR"})
	require.NoError(t, err)
	dark := 0
	for y := 16; y < 32; y++ {
		for x := 16; x < 16+4*7; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				dark++
			}
		}
	}
	assert.Positive(t, dark)
}

func TestTextImageNoLines(t *testing.T) {
	_, err := NewTextImage().Render(nil)
	assert.Error(t, err)
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, NewTextImage(), []string{"Am:"}, PNG))
	cfg, format, err := image.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 512, cfg.Width)
}

func TestEncodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, NewTextImage(), []string{"Am:"}, JPEG))
	assert.Equal(t, []byte{0xff, 0xd8}, buf.Bytes()[:2])
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, NewTextImage(), []string{"Am:"}, Format("gif"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("jpg")
	require.NoError(t, err)
	assert.Equal(t, JPEG, f)
	f, err = ParseFormat("png")
	require.NoError(t, err)
	assert.Equal(t, "png", f.Ext())
	_, err = ParseFormat("bmp")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestTerminal(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)
	require.NoError(t, term.Diagram("Am: A C E", []string{"  R|   |  3"}, true))
	require.NoError(t, term.Error("xyz is not a valid chord name"))
	require.NoError(t, term.Message("fret is now mirrored"))

	out := buf.String()
	assert.Contains(t, out, "Am: A C E")
	assert.Contains(t, out, "  R|   |  3")
	assert.Contains(t, out, "xyz is not a valid chord name")
	assert.Contains(t, out, "fret is now mirrored\n")
}
