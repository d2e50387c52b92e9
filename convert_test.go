package tga

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNRGBA(t *testing.T) {
	m := &Image{
		Width:    2,
		Height:   1,
		Channels: 3,
		Pix:      []byte{1, 2, 3, 4, 5, 6},
	}

	n := m.NRGBA()
	require.Equal(t, []byte{1, 2, 3, 255, 4, 5, 6, 255}, n.Pix)

	m.Channels = 4
	m.Pix = []byte{1, 2, 3, 9, 4, 5, 6, 0}
	n = m.NRGBA()
	require.Equal(t, []byte{1, 2, 3, 9, 4, 5, 6, 0}, n.Pix)
}

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		src.SetNRGBA(i%2, i/2, color.NRGBA{byte(i * 10), byte(i * 20), byte(i * 30), 255})
	}

	// Fully opaque collapses to three channels
	m := FromImage(src)
	require.Equal(t, 3, m.Channels)
	require.Equal(t, []byte{
		0, 0, 0, 10, 20, 30,
		20, 40, 60, 30, 60, 90,
	}, m.Pix)

	// A single translucent pixel keeps the alpha channel
	src.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 128})
	m = FromImage(src)
	require.Equal(t, 4, m.Channels)
	require.Equal(t, byte(128), m.Pix[3])
}

func TestFromImageRoundTrip(t *testing.T) {
	m := patternImage(7, 5, 4)
	require.Equal(t, m, FromImage(m.NRGBA()))

	m = patternImage(7, 5, 3)
	require.Equal(t, m, FromImage(m.NRGBA()))
}

func TestQuantized(t *testing.T) {
	// More distinct colors than any palette can hold
	m := New(32, 32, 3)
	for i := range m.Pix {
		m.Pix[i] = byte(i * 7)
	}

	q := Quantized(m, 256)
	require.Equal(t, m.Width, q.Width)
	require.Equal(t, m.Height, q.Height)
	require.Equal(t, m.Channels, q.Channels)

	colors := make(map[[3]byte]struct{})
	for p := 0; p < q.Width*q.Height; p++ {
		var c [3]byte
		copy(c[:], q.Pix[p*3:])
		colors[c] = struct{}{}
	}
	require.LessOrEqual(t, len(colors), 256)

	// The quantized copy must be encodable as a mapped image
	_, _, err := buildPalette(q.Pix, q.Channels)
	require.NoError(t, err)
}
