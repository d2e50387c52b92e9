/*
Package tga implements a Truevision TGA image decoder and encoder.

The supported variants are 8-bit color-mapped, 15/16/24/32-bit
true-color and 8/16-bit black and white images, each either raw or
run-length encoded. Decoded images are normalized to a single in-memory
representation; an interleaved R,G,B[,A] buffer with 8 bits per channel
stored row-major, top-to-bottom. The optional extension and developer
areas at the end of a file are neither read nor written.
*/
package tga

import "errors"

var (
	// ErrInvalidFormat is returned when a header declares no image
	// data or the pixel data contradicts the header.
	ErrInvalidFormat = errors.New("tga: invalid image")

	// ErrUnsupportedVariant is returned for image type codes or
	// (type, bit depth) pairings this package does not handle.
	ErrUnsupportedVariant = errors.New("tga: unsupported image type or bit depth")

	// ErrTruncated is returned when the stream ends before the
	// amount of data declared by the header has been read.
	ErrTruncated = errors.New("tga: truncated data")

	// ErrPaletteOverflow is returned when an image with more than
	// 256 distinct colors is encoded to a color-mapped variant.
	ErrPaletteOverflow = errors.New("tga: more than 256 distinct colors")

	errBounds = errors.New("tga: image does not fit the format")
)

// Image is a decoded TGA image. Pix holds Width*Height pixels of
// Channels interleaved R,G,B[,A] bytes in row-major, top-to-bottom
// order. Channels is either 3 or 4.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// New returns an Image of the given size with an allocated, zeroed
// pixel buffer. Channels must be 3 or 4.
func New(width, height, channels int) *Image {
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]byte, width*height*channels),
	}
}

func (m *Image) validate() error {
	if m.Channels != 3 && m.Channels != 4 {
		return errBounds
	}
	if m.Width < 0 || m.Width > 0xffff || m.Height < 0 || m.Height > 0xffff {
		return errBounds
	}
	if len(m.Pix) != m.Width*m.Height*m.Channels {
		return errBounds
	}
	return nil
}

// FlipHorizontal mirrors the image left to right in place. Applying it
// twice restores the original image.
func (m *Image) FlipHorizontal() {
	stride := m.Width * m.Channels
	for y := 0; y < m.Height; y++ {
		row := m.Pix[y*stride : (y+1)*stride]
		for x := 0; x < m.Width/2; x++ {
			a := row[x*m.Channels : (x+1)*m.Channels]
			b := row[(m.Width-x-1)*m.Channels : (m.Width-x)*m.Channels]
			for k := range a {
				a[k], b[k] = b[k], a[k]
			}
		}
	}
}

// FlipVertical mirrors the image top to bottom in place. Applying it
// twice restores the original image.
func (m *Image) FlipVertical() {
	stride := m.Width * m.Channels
	if stride == 0 {
		return
	}
	tmp := make([]byte, stride)
	for y := 0; y < m.Height/2; y++ {
		top := m.Pix[y*stride : (y+1)*stride]
		bottom := m.Pix[(m.Height-y-1)*stride : (m.Height-y)*stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}
