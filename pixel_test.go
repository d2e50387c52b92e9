package tga

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwapRB(t *testing.T) {
	pix := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	swapRB(pix, 4)
	require.Equal(t, []byte{3, 2, 1, 4, 7, 6, 5, 8}, pix)
	swapRB(pix, 4)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, pix)

	pix = []byte{1, 2, 3, 4, 5, 6}
	swapRB(pix, 3)
	require.Equal(t, []byte{3, 2, 1, 6, 5, 4}, pix)
}

func TestPack16(t *testing.T) {
	// Alpha of zero leaves the top bit clear
	dst := make([]byte, 2)
	pack16(dst, []byte{248, 0, 0, 0}, 4)
	require.Equal(t, []byte{0x00, 0x7c}, dst)

	// Non-zero alpha sets it
	pack16(dst, []byte{248, 0, 0, 1}, 4)
	require.Equal(t, []byte{0x00, 0xfc}, dst)

	// Without an alpha channel it is always set
	pack16(dst, []byte{0, 0, 248}, 3)
	require.Equal(t, []byte{0x1f, 0x80}, dst)
}

func TestUnpack16(t *testing.T) {
	dst := make([]byte, 4)
	unpack16(dst, []byte{0x00, 0x7c}, 4)
	require.Equal(t, []byte{248, 0, 0, 0}, dst)

	unpack16(dst, []byte{0x00, 0xfc}, 4)
	require.Equal(t, []byte{248, 0, 0, 255}, dst)

	// The alpha bit is ignored for a 3-channel target
	dst = make([]byte, 3)
	unpack16(dst, []byte{0x1f, 0x80}, 3)
	require.Equal(t, []byte{0, 0, 248}, dst)
}

func TestLuminance(t *testing.T) {
	// Integer division truncates toward zero
	require.Equal(t, byte(1), luminance(1, 1, 2))
	require.Equal(t, byte(255), luminance(255, 255, 255))
	require.Equal(t, byte(0), luminance(0, 1, 1))
	require.Equal(t, byte(85), luminance(255, 0, 0))
}

func TestPackBW16(t *testing.T) {
	dst := make([]byte, 4)
	packBW16(dst, []byte{30, 30, 30, 7, 90, 90, 90, 0}, 4)
	require.Equal(t, []byte{30, 7, 90, 0}, dst)

	// No alpha channel means full opacity
	dst = make([]byte, 2)
	packBW16(dst, []byte{30, 30, 30}, 3)
	require.Equal(t, []byte{30, 255}, dst)
}

func TestUnpackBW16(t *testing.T) {
	dst := make([]byte, 8)
	unpackBW16(dst, []byte{30, 7, 90, 0})
	require.Equal(t, []byte{30, 30, 30, 7, 90, 90, 90, 0}, dst)
}

func TestPackBW8DropsAlpha(t *testing.T) {
	dst := make([]byte, 1)
	packBW8(dst, []byte{30, 30, 30, 7}, 4)
	require.Equal(t, []byte{30}, dst)
}

func TestUnpackBW8(t *testing.T) {
	dst := make([]byte, 6)
	unpackBW8(dst, []byte{30, 90})
	require.Equal(t, []byte{30, 30, 30, 90, 90, 90}, dst)
}

func TestLookupMap(t *testing.T) {
	// File-native B,G,R entries
	cmap := []byte{
		255, 0, 0, // blue
		0, 0, 255, // red
	}

	dst := make([]byte, 9)
	require.NoError(t, lookupMap(dst, []byte{1, 0, 1}, cmap, 3))
	require.Equal(t, []byte{255, 0, 0, 0, 0, 255, 255, 0, 0}, dst)

	// An index past the palette is rejected rather than read out of
	// bounds
	require.Equal(t, ErrInvalidFormat, lookupMap(dst, []byte{2}, cmap, 3))
}
