package tga

// Type selects the on-disk encoding used by Encode.
type Type int

const (
	// Mapped is 8-bit color-mapped with a 24 or 32-bit palette.
	Mapped Type = iota
	// MappedRLE is Mapped with run-length encoded indices.
	MappedRLE
	// RGB is 24 or 32-bit true-color, depending on channel count.
	RGB
	// RGBRLE is RGB with run-length encoded pixels.
	RGBRLE
	// RGB16 is 15 or 16-bit packed true-color, depending on channel
	// count.
	RGB16
	// RGB16RLE is RGB16 with run-length encoded pixels.
	RGB16RLE
	// BW is 16-bit black and white; one luminance and one alpha byte
	// per pixel.
	BW
	// BWRLE is BW with run-length encoded pixels.
	BWRLE
	// BW8 is 8-bit black and white. There is no alpha byte, so a
	// 4-channel image loses its alpha channel.
	BW8
	// BW8RLE is BW8 with run-length encoded pixels.
	BW8RLE
)

// Image type codes stored at header byte 2.
const (
	typeNoImage   = 0
	typeMapped    = 1
	typeRGB       = 2
	typeBW        = 3
	typeMappedRLE = 9
	typeRGBRLE    = 10
	typeBWRLE     = 11
)

const headerLen = 18

// header is the fixed 18-byte TGA file header. All multi-byte fields
// are little-endian on the wire.
type header struct {
	idLength     byte
	colorMapType byte
	imageType    byte
	mapFirst     uint16
	mapLength    uint16
	mapEntryBits byte
	xOrigin      uint16
	yOrigin      uint16
	width        uint16
	height       uint16
	bitsPerPixel byte
	descriptor   byte
}

func parseHeader(b []byte) (header, error) {
	h := header{
		idLength:     b[0],
		colorMapType: b[1],
		imageType:    b[2],
		mapFirst:     uint16(b[3]) | uint16(b[4])<<8,
		mapLength:    uint16(b[5]) | uint16(b[6])<<8,
		mapEntryBits: b[7],
		xOrigin:      uint16(b[8]) | uint16(b[9])<<8,
		yOrigin:      uint16(b[10]) | uint16(b[11])<<8,
		width:        uint16(b[12]) | uint16(b[13])<<8,
		height:       uint16(b[14]) | uint16(b[15])<<8,
		bitsPerPixel: b[16],
		descriptor:   b[17],
	}
	if h.imageType == typeNoImage {
		return header{}, ErrInvalidFormat
	}
	return h, nil
}

func (h header) marshal() [headerLen]byte {
	return [headerLen]byte{
		h.idLength,
		h.colorMapType,
		h.imageType,
		byte(h.mapFirst), byte(h.mapFirst >> 8),
		byte(h.mapLength), byte(h.mapLength >> 8),
		h.mapEntryBits,
		byte(h.xOrigin), byte(h.xOrigin >> 8),
		byte(h.yOrigin), byte(h.yOrigin >> 8),
		byte(h.width), byte(h.width >> 8),
		byte(h.height), byte(h.height >> 8),
		h.bitsPerPixel,
		h.descriptor,
	}
}

// variant splits the image type code into its base subtype and whether
// the pixel data is run-length encoded.
func (h header) variant() (byte, bool) {
	if h.imageType >= typeMappedRLE && h.imageType <= typeBWRLE {
		return h.imageType - 8, true
	}
	return h.imageType, false
}

// channels returns the canonical channel count produced by decoding,
// fixed by the subtype and bit depth.
func (h header) channels() (int, error) {
	base, _ := h.variant()
	switch base {
	case typeMapped:
		if h.bitsPerPixel != 8 || h.colorMapType == 0 {
			return 0, ErrUnsupportedVariant
		}
		switch h.mapEntryBits {
		case 24:
			return 3, nil
		case 32:
			return 4, nil
		}
		return 0, ErrUnsupportedVariant
	case typeRGB:
		switch h.bitsPerPixel {
		case 15, 24:
			return 3, nil
		case 16, 32:
			return 4, nil
		}
		return 0, ErrUnsupportedVariant
	case typeBW:
		switch h.bitsPerPixel {
		case 8:
			return 3, nil
		case 16:
			return 4, nil
		}
		return 0, ErrUnsupportedVariant
	}
	return 0, ErrUnsupportedVariant
}

// params returns the header fields implied by encoding a given channel
// count with this Type.
func (t Type) params(channels int) (imageType, bits byte, rle, mapped bool, err error) {
	switch t {
	case Mapped:
		return typeMapped, 8, false, true, nil
	case MappedRLE:
		return typeMappedRLE, 8, true, true, nil
	case RGB:
		return typeRGB, byte(channels * 8), false, false, nil
	case RGBRLE:
		return typeRGBRLE, byte(channels * 8), true, false, nil
	case RGB16:
		bits = 15
		if channels == 4 {
			bits = 16
		}
		return typeRGB, bits, false, false, nil
	case RGB16RLE:
		bits = 15
		if channels == 4 {
			bits = 16
		}
		return typeRGBRLE, bits, true, false, nil
	case BW:
		return typeBW, 16, false, false, nil
	case BWRLE:
		return typeBWRLE, 16, true, false, nil
	case BW8:
		return typeBW, 8, false, false, nil
	case BW8RLE:
		return typeBWRLE, 8, true, false, nil
	}
	return 0, 0, false, false, ErrUnsupportedVariant
}
