package tga

import (
	"bufio"
	"io"
	"os"
)

type encoder struct {
	w io.Writer
	m *Image
	t Type
}

// native converts the canonical pixels to their file representation
// and returns the buffer together with its per-pixel stride. index is
// the palette index buffer for the mapped variants and nil otherwise.
func (e *encoder) native(index []byte) ([]byte, int) {
	n := e.m.Width * e.m.Height
	switch e.t {
	case Mapped, MappedRLE:
		return index, 1
	case RGB, RGBRLE:
		buf := append([]byte(nil), e.m.Pix...)
		swapRB(buf, e.m.Channels)
		return buf, e.m.Channels
	case RGB16, RGB16RLE:
		buf := make([]byte, n*2)
		pack16(buf, e.m.Pix, e.m.Channels)
		return buf, 2
	case BW, BWRLE:
		buf := make([]byte, n*2)
		packBW16(buf, e.m.Pix, e.m.Channels)
		return buf, 2
	default: // BW8, BW8RLE
		buf := make([]byte, n)
		packBW8(buf, e.m.Pix, e.m.Channels)
		return buf, 1
	}
}

func (e *encoder) encode() error {
	imageType, bits, rle, mapped, err := e.t.params(e.m.Channels)
	if err != nil {
		return err
	}

	var cmap, index []byte
	if mapped {
		if cmap, index, err = buildPalette(e.m.Pix, e.m.Channels); err != nil {
			return err
		}
	}

	h := header{
		imageType:    imageType,
		width:        uint16(e.m.Width),
		height:       uint16(e.m.Height),
		bitsPerPixel: bits,
	}
	if mapped {
		h.colorMapType = 1
		h.mapLength = uint16(len(cmap) / e.m.Channels)
		h.mapEntryBits = byte(e.m.Channels * 8)
	}

	hb := h.marshal()
	if _, err := e.w.Write(hb[:]); err != nil {
		return err
	}
	if mapped {
		if _, err := e.w.Write(cmap); err != nil {
			return err
		}
	}

	pix, stride := e.native(index)
	if rle {
		return rleEncode(e.w, pix, e.m.Width, e.m.Height, stride)
	}
	_, err = e.w.Write(pix)
	return err
}

// Encode writes m to w using the given on-disk encoding. The mapped
// variants fail with ErrPaletteOverflow if m has more than 256
// distinct colors; Quantized can reduce an image beforehand. On any
// failure the bytes already written are undefined and the output
// should be discarded.
func Encode(w io.Writer, m *Image, t Type) error {
	if err := m.validate(); err != nil {
		return err
	}
	e := encoder{w: w, m: m, t: t}
	return e.encode()
}

// EncodeFile writes m to the named file, creating or truncating it.
// The file contents are undefined if an error is returned.
func EncodeFile(path string, m *Image, t Type) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	b := bufio.NewWriter(f)
	if err := Encode(b, m, t); err != nil {
		f.Close()
		return err
	}
	if err := b.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
