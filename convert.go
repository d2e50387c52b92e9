package tga

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

// NRGBA returns a copy of m as a stdlib image. A 3-channel image
// becomes fully opaque.
func (m *Image) NRGBA() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for p := 0; p < m.Width*m.Height; p++ {
		s := m.Pix[p*m.Channels:]
		d := dst.Pix[p*4:]
		d[0] = s[0]
		d[1] = s[1]
		d[2] = s[2]
		if m.Channels == 4 {
			d[3] = s[3]
		} else {
			d[3] = 255
		}
	}
	return dst
}

// FromImage converts any stdlib image into the canonical
// representation. A fully opaque source yields 3 channels, anything
// else 4.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Bounds(), src, b.Min, draw.Src)

	channels := 3
	for i := 3; i < len(n.Pix); i += 4 {
		if n.Pix[i] != 255 {
			channels = 4
			break
		}
	}

	m := New(b.Dx(), b.Dy(), channels)
	for p := 0; p < m.Width*m.Height; p++ {
		copy(m.Pix[p*channels:(p+1)*channels], n.Pix[p*4:])
	}
	return m
}

// Quantized returns a copy of m reduced to at most colors distinct
// values using median-cut quantization, so that it can be written with
// one of the mapped variants. The channel count is preserved.
func Quantized(m *Image, colors int) *Image {
	src := m.NRGBA()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(src.Bounds(), q.Quantize(make(color.Palette, 0, colors), src))
	draw.Draw(pm, src.Bounds(), src, image.Point{}, draw.Src)

	out := New(m.Width, m.Height, m.Channels)
	for p := 0; p < m.Width*m.Height; p++ {
		c := color.NRGBAModel.Convert(pm.Palette[pm.Pix[p]]).(color.NRGBA)
		d := out.Pix[p*m.Channels:]
		d[0] = c.R
		d[1] = c.G
		d[2] = c.B
		if m.Channels == 4 {
			d[3] = c.A
		}
	}
	return out
}
