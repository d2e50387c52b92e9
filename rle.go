package tga

import (
	"bytes"
	"io"
)

// A packet starts with one header byte; the high bit selects between a
// run (one pixel value repeated) and a raw literal sequence, the low
// seven bits hold the pixel count minus one, so a packet covers 1 to
// 128 pixels of stride bytes each.
const maxPacketPixels = 128

// rleDecode fills dst, which holds count pixels of stride bytes each,
// from the packet stream read off r. It reads exactly as many packets
// as needed; a packet extending past count fails with
// ErrInvalidFormat, a short read with ErrTruncated.
func rleDecode(r io.Reader, dst []byte, count, stride int) error {
	var hdr [1]byte
	for filled := 0; filled < count; {
		if err := readFull(r, hdr[:]); err != nil {
			return err
		}
		n := int(hdr[0]&0x7f) + 1
		if filled+n > count {
			return ErrInvalidFormat
		}
		if hdr[0]&0x80 != 0 {
			px := dst[filled*stride : (filled+1)*stride]
			if err := readFull(r, px); err != nil {
				return err
			}
			for i := 1; i < n; i++ {
				copy(dst[(filled+i)*stride:(filled+i+1)*stride], px)
			}
		} else {
			if err := readFull(r, dst[filled*stride:(filled+n)*stride]); err != nil {
				return err
			}
		}
		filled += n
	}
	return nil
}

// rleEncode writes pix, holding width*height pixels of stride bytes
// each in file-native form, to w as a packet stream. Rows are encoded
// independently; no packet crosses a row boundary.
func rleEncode(w io.Writer, pix []byte, width, height, stride int) error {
	for y := 0; y < height; y++ {
		if err := rleEncodeRow(w, pix[y*width*stride:(y+1)*width*stride], width, stride); err != nil {
			return err
		}
	}
	return nil
}

func rleEncodeRow(w io.Writer, row []byte, width, stride int) error {
	px := func(j int) []byte {
		return row[j*stride : (j+1)*stride]
	}

	for j := 0; j < width; {
		if j+1 < width && bytes.Equal(px(j), px(j+1)) {
			// Run packet: extend while the full-stride value
			// repeats, capped at the 7-bit count field.
			n := 2
			for j+n < width && n < maxPacketPixels && bytes.Equal(px(j+n), px(j)) {
				n++
			}
			if _, err := w.Write([]byte{0x80 | byte(n-1)}); err != nil {
				return err
			}
			if _, err := w.Write(px(j)); err != nil {
				return err
			}
			j += n
			continue
		}

		// Raw packet. Two equal adjacent pixels end the literal
		// sequence before them; they start the next run instead
		// of leaving a stray duplicate inside this packet.
		n := 1
		for j+n < width && n < maxPacketPixels {
			if j+n+1 < width && bytes.Equal(px(j+n), px(j+n+1)) {
				break
			}
			n++
		}
		if _, err := w.Write([]byte{byte(n - 1)}); err != nil {
			return err
		}
		if _, err := w.Write(row[j*stride : (j+n)*stride]); err != nil {
			return err
		}
		j += n
	}
	return nil
}
