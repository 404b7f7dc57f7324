// Package render turns the text lines of a diagram into something a person
// can look at: a bitmap for chat clients or a styled block for terminals.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Format is an encoded image format.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// ErrUnknownFormat is returned for an image format other than png or jpeg.
var ErrUnknownFormat = errors.New("unknown image format")

// ParseFormat accepts "png", "jpeg" and "jpg".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext is the file extension without a dot.
func (f Format) Ext() string { return string(f) }

// Renderer turns text lines into an image.
type Renderer interface {
	Render(lines []string) (image.Image, error)
}

const (
	minWidth   = 512
	margin     = 16
	lineHeight = 16
)

var background = color.RGBA{R: 0xf0, G: 0xf0, B: 0xe0, A: 0xff}

// TextImage draws monospaced lines on a light background.
type TextImage struct {
	face font.Face
}

// NewTextImage returns a renderer using the 7x13 fixed font.
func NewTextImage() *TextImage {
	return &TextImage{face: basicfont.Face7x13}
}

// Render draws one line every 16 pixels, 16 pixels in from the top left.
// The image is at least 512 pixels wide and grows to fit the longest line.
func (r *TextImage) Render(lines []string) (image.Image, error) {
	if len(lines) == 0 {
		return nil, errors.New("render: no lines")
	}
	advance := font.MeasureString(r.face, "0").Ceil()
	width := minWidth
	for _, l := range lines {
		if w := utf8.RuneCountInString(l)*advance + 2*margin; w > width {
			width = w
		}
	}
	height := len(lines)*lineHeight + 2*margin

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	ascent := r.face.Metrics().Ascent
	d := &font.Drawer{Dst: img, Src: image.Black, Face: r.face}
	for n, l := range lines {
		d.Dot = fixed.Point26_6{
			X: fixed.I(margin),
			Y: fixed.I(margin+n*lineHeight) + ascent,
		}
		d.DrawString(l)
	}
	return img, nil
}

// Encode renders lines and writes the image to w.
func Encode(w io.Writer, r Renderer, lines []string, format Format) error {
	img, err := r.Render(lines)
	if err != nil {
		return err
	}
	switch format {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
