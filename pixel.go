package tga

// The file stores colors in B,G,R[,A] order whereas the canonical
// buffer is R,G,B[,A], so every transform below reorders channels as a
// side effect of packing or unpacking.

// swapRB exchanges the first and third byte of every pixel in place.
// It converts file order to canonical order and back; applying it
// twice is a no-op.
func swapRB(pix []byte, channels int) {
	for i := 0; i+2 < len(pix); i += channels {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}

// lookupMap expands 8-bit palette indices into canonical pixels. cmap
// holds the file-native B,G,R[,A] palette entries, channels bytes each.
func lookupMap(dst, idx, cmap []byte, channels int) error {
	for i, x := range idx {
		e := int(x) * channels
		if e+channels > len(cmap) {
			return ErrInvalidFormat
		}
		d := dst[i*channels:]
		d[0] = cmap[e+2]
		d[1] = cmap[e+1]
		d[2] = cmap[e]
		if channels == 4 {
			d[3] = cmap[e+3]
		}
	}
	return nil
}

// unpack16 expands little-endian 5-5-5 packed words into 8-bit
// channels. Each 5-bit value is shifted up by three; the low bits stay
// clear so that packing the result returns the identical word. The top
// bit of the word maps to alpha 255 or 0 when there is an alpha
// channel, and is ignored otherwise.
func unpack16(dst, src []byte, channels int) {
	for i := 0; i*2+1 < len(src); i++ {
		w := uint16(src[i*2]) | uint16(src[i*2+1])<<8
		d := dst[i*channels:]
		d[0] = byte(w>>10&0x1f) << 3
		d[1] = byte(w>>5&0x1f) << 3
		d[2] = byte(w&0x1f) << 3
		if channels == 4 {
			if w&0x8000 != 0 {
				d[3] = 255
			} else {
				d[3] = 0
			}
		}
	}
}

// pack16 packs 8-bit channels into little-endian 5-5-5 words, keeping
// the top three bits of each channel. With an alpha channel the top
// bit of the word is set for any non-zero alpha; without one it is
// always set.
func pack16(dst, src []byte, channels int) {
	for i := 0; (i+1)*channels <= len(src); i++ {
		s := src[i*channels:]
		w := uint16(s[0]>>3)<<10 | uint16(s[1]>>3)<<5 | uint16(s[2]>>3)
		if channels == 3 || s[3] != 0 {
			w |= 0x8000
		}
		dst[i*2] = byte(w)
		dst[i*2+1] = byte(w >> 8)
	}
}

// luminance converts one canonical pixel to a gray value, truncating
// toward zero.
func luminance(r, g, b byte) byte {
	return byte((int(r) + int(g) + int(b)) / 3)
}

// packBW16 converts canonical pixels to luminance+alpha byte pairs.
// Without an alpha channel the alpha byte is fixed at 255.
func packBW16(dst, src []byte, channels int) {
	for i := 0; (i+1)*channels <= len(src); i++ {
		s := src[i*channels:]
		dst[i*2] = luminance(s[0], s[1], s[2])
		if channels == 4 {
			dst[i*2+1] = s[3]
		} else {
			dst[i*2+1] = 255
		}
	}
}

// unpackBW16 replicates the luminance byte of each pair into R, G and
// B and stores the second byte as alpha.
func unpackBW16(dst, src []byte) {
	for i := 0; i*2+1 < len(src); i++ {
		d := dst[i*4:]
		d[0] = src[i*2]
		d[1] = src[i*2]
		d[2] = src[i*2]
		d[3] = src[i*2+1]
	}
}

// packBW8 converts canonical pixels to bare luminance bytes. Any alpha
// channel is dropped; the variant cannot represent it.
func packBW8(dst, src []byte, channels int) {
	for i := 0; (i+1)*channels <= len(src); i++ {
		s := src[i*channels:]
		dst[i] = luminance(s[0], s[1], s[2])
	}
}

// unpackBW8 replicates each luminance byte into R, G and B.
func unpackBW8(dst, src []byte) {
	for i, l := range src {
		d := dst[i*3:]
		d[0] = l
		d[1] = l
		d[2] = l
	}
}
