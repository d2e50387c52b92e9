package tga

import (
	"bufio"
	"io"
	"io/ioutil"
	"os"
)

func readFull(r io.Reader, b []byte) error {
	if _, err := io.ReadFull(r, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrTruncated
		}
		return err
	}
	return nil
}

// Config holds the image parameters recorded in a TGA header.
type Config struct {
	Width        int
	Height       int
	Channels     int
	BitsPerPixel int
	RLE          bool
}

type decoder struct {
	r io.Reader

	h        header
	channels int
	cmap     []byte // file-native B,G,R[,A] entries
	img      *Image
}

func (d *decoder) readHeader() error {
	var b [headerLen]byte
	if err := readFull(d.r, b[:]); err != nil {
		return err
	}
	h, err := parseHeader(b[:])
	if err != nil {
		return err
	}
	if d.channels, err = h.channels(); err != nil {
		return err
	}
	d.h = h

	// The optional image ID is skipped, never retained.
	if h.idLength > 0 {
		if _, err := io.CopyN(ioutil.Discard, d.r, int64(h.idLength)); err != nil {
			return ErrTruncated
		}
	}
	return nil
}

func (d *decoder) readColorMap() error {
	if d.h.colorMapType == 0 {
		return nil
	}
	// A color map may be attached to any subtype; non-mapped images
	// still carry it in the stream and it has to be consumed.
	d.cmap = make([]byte, int(d.h.mapLength)*int(d.h.mapEntryBits)/8)
	return readFull(d.r, d.cmap)
}

// readNative reads count pixels of stride bytes each into dst, either
// verbatim or from a packet stream.
func (d *decoder) readNative(dst []byte, stride int, rle bool) error {
	if rle {
		return rleDecode(d.r, dst, len(dst)/stride, stride)
	}
	return readFull(d.r, dst)
}

func (d *decoder) decodePixels() error {
	base, rle := d.h.variant()
	w, h := int(d.h.width), int(d.h.height)
	n := w * h
	d.img = New(w, h, d.channels)

	switch base {
	case typeMapped:
		idx := make([]byte, n)
		if err := d.readNative(idx, 1, rle); err != nil {
			return err
		}
		return lookupMap(d.img.Pix, idx, d.cmap, d.channels)
	case typeRGB:
		switch d.h.bitsPerPixel {
		case 24, 32:
			if err := d.readNative(d.img.Pix, d.channels, rle); err != nil {
				return err
			}
			swapRB(d.img.Pix, d.channels)
		case 15, 16:
			native := make([]byte, n*2)
			if err := d.readNative(native, 2, rle); err != nil {
				return err
			}
			unpack16(d.img.Pix, native, d.channels)
		}
	case typeBW:
		switch d.h.bitsPerPixel {
		case 8:
			native := make([]byte, n)
			if err := d.readNative(native, 1, rle); err != nil {
				return err
			}
			unpackBW8(d.img.Pix, native)
		case 16:
			native := make([]byte, n*2)
			if err := d.readNative(native, 2, rle); err != nil {
				return err
			}
			unpackBW16(d.img.Pix, native)
		}
	}
	return nil
}

// Decode reads a TGA image from r.
//
// The returned image always reads top-to-bottom, left-to-right: a
// non-zero x or y origin coordinate in the header triggers a
// horizontal or vertical flip. This mirrors the convention of the
// encoder in this package; the descriptor origin-corner bits are
// ignored, so files relying on them decode in their stored order.
func Decode(r io.Reader) (*Image, error) {
	d := decoder{r: r}
	if err := d.readHeader(); err != nil {
		return nil, err
	}
	if err := d.readColorMap(); err != nil {
		return nil, err
	}
	if err := d.decodePixels(); err != nil {
		return nil, err
	}
	if d.h.xOrigin != 0 {
		d.img.FlipHorizontal()
	}
	if d.h.yOrigin != 0 {
		d.img.FlipVertical()
	}
	return d.img, nil
}

// DecodeConfig returns the dimensions and pixel parameters of a TGA
// image without decoding any pixel data.
func DecodeConfig(r io.Reader) (Config, error) {
	d := decoder{r: r}
	if err := d.readHeader(); err != nil {
		return Config{}, err
	}
	_, rle := d.h.variant()
	return Config{
		Width:        int(d.h.width),
		Height:       int(d.h.height),
		Channels:     d.channels,
		BitsPerPixel: int(d.h.bitsPerPixel),
		RLE:          rle,
	}, nil
}

// DecodeFile reads the named TGA file.
func DecodeFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}
