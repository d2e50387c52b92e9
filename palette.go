package tga

import "bytes"

const maxPaletteEntries = 256

// buildPalette deduplicates the canonical pixels of pix into an
// insertion-ordered palette of at most 256 entries and one palette
// index per pixel. Every pixel is compared against the accepted
// entries in order and the first full channel-tuple match wins, so the
// same input always yields bit-identical output. The returned palette
// is rewritten to the file-native B,G,R[,A] channel order.
func buildPalette(pix []byte, channels int) (cmap, index []byte, err error) {
	n := len(pix) / channels
	index = make([]byte, n)
	entries := make([]byte, 0, maxPaletteEntries*channels)
	count := 0

	for i := 0; i < n; i++ {
		px := pix[i*channels : (i+1)*channels]
		found := -1
		for c := 0; c < count; c++ {
			if bytes.Equal(px, entries[c*channels:(c+1)*channels]) {
				found = c
				break
			}
		}
		if found < 0 {
			if count == maxPaletteEntries {
				return nil, nil, ErrPaletteOverflow
			}
			entries = append(entries, px...)
			found = count
			count++
		}
		index[i] = byte(found)
	}

	swapRB(entries, channels)
	return entries, index, nil
}
