package rfbenc

import (
	"encoding/binary"
	"errors"
	"math/bits"
)

// PixelFormat describes how a pixel is packed on the wire for a particular
// VNC client, mirroring RFC 6143 §7.4.
type PixelFormat struct {
	BPP       uint8 // bits-per-pixel: 8, 16, or 32
	Depth     uint8 // colour depth
	BigEndian uint8 // big-endian-flag
	TrueColor uint8 // true-colour-flag; must be 1

	RedMax, GreenMax, BlueMax       uint16
	RedShift, GreenShift, BlueShift uint8
}

// DefaultPixelFormat is 32-bit true colour with red in bits 16-23, green in
// bits 8-15 and blue in bits 0-7, sent little-endian (byte order B,G,R,pad),
// the format most VNC servers negotiate by default.
var DefaultPixelFormat = PixelFormat{
	BPP: 32, Depth: 24, BigEndian: 0, TrueColor: 1,
	RedMax: 255, GreenMax: 255, BlueMax: 255,
	RedShift: 16, GreenShift: 8, BlueShift: 0,
}

var (
	// ErrUnsupportedBPP is returned when BitsPerPixel is not 8, 16, or 32.
	ErrUnsupportedBPP = errors.New("rfbenc: bits-per-pixel must be 8, 16, or 32")
	// ErrNotTrueColor is returned for colormap (palette-indexed) formats,
	// which are explicitly out of scope.
	ErrNotTrueColor = errors.New("rfbenc: colormap pixel formats are not supported")
	// ErrBadChannelMax is returned when a channel maximum is not of the
	// form 2^k - 1.
	ErrBadChannelMax = errors.New("rfbenc: channel max must be 2^k-1")
	// ErrChannelOverflow is returned when a channel's shift plus its bit
	// width would exceed BitsPerPixel, or channels overlap.
	ErrChannelOverflow = errors.New("rfbenc: channel bit ranges overflow or overlap")
)

// Validate checks the invariants of RFC 6143 §7.4's PixelFormat: BPP in
// {8,16,32}, true-colour only, each max of the form 2^k-1, and
// non-overlapping, in-range channel bit ranges.
func (pf PixelFormat) Validate() error {
	switch pf.BPP {
	case 8, 16, 32:
	default:
		return ErrUnsupportedBPP
	}
	if pf.TrueColor == 0 {
		return ErrNotTrueColor
	}

	channels := []struct {
		max   uint16
		shift uint8
	}{
		{pf.RedMax, pf.RedShift},
		{pf.GreenMax, pf.GreenShift},
		{pf.BlueMax, pf.BlueShift},
	}

	var occupied uint64
	for _, ch := range channels {
		if ch.max == 0 || (uint32(ch.max)+1)&uint32(ch.max) != 0 {
			return ErrBadChannelMax
		}
		width := bits.Len16(ch.max)
		if int(ch.shift)+width > int(pf.BPP) {
			return ErrChannelOverflow
		}
		mask := uint64((1<<uint(width))-1) << ch.shift
		if occupied&mask != 0 {
			return ErrChannelOverflow
		}
		occupied |= mask
	}
	return nil
}

// BytesPerPixel returns BPP/8.
func (pf PixelFormat) BytesPerPixel() int {
	return int(pf.BPP) / 8
}

func (pf PixelFormat) order() binary.ByteOrder {
	if pf.BigEndian != 0 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// fitsInLow24 reports whether every channel's bit range lies entirely
// within the low 24 bits of the packed pixel — the condition under which
// Tight and ZRLE may use their 3-byte compact pixel forms instead of the
// full client-format pixel.
func (pf PixelFormat) fitsInLow24() bool {
	if pf.BPP != 32 {
		return false
	}
	channels := []struct {
		max   uint16
		shift uint8
	}{
		{pf.RedMax, pf.RedShift},
		{pf.GreenMax, pf.GreenShift},
		{pf.BlueMax, pf.BlueShift},
	}
	for _, ch := range channels {
		width := bits.Len16(ch.max)
		if int(ch.shift)+width > 24 {
			return false
		}
	}
	return true
}

// scaleChannel maps an 8-bit channel value into the range [0, max] using
// integer arithmetic with truncation toward zero, per RFC 6143 §7.4's
// pixel-value construction.
func scaleChannel(c uint8, max uint16) uint32 {
	return (uint32(c) * uint32(max)) / 255
}

// packPixel assembles a packed pixel value from the three 8-bit interior
// channels according to pf's shifts and maxima.
func packPixel(r, g, b uint8, pf PixelFormat) uint32 {
	rv := scaleChannel(r, pf.RedMax) << pf.RedShift
	gv := scaleChannel(g, pf.GreenMax) << pf.GreenShift
	bv := scaleChannel(b, pf.BlueMax) << pf.BlueShift
	return rv | gv | bv
}

// appendPixel serialises a packed pixel value as 1, 2, or 4 bytes in pf's
// declared endianness, appending to dst.
func appendPixel(dst []byte, pixel uint32, pf PixelFormat) []byte {
	order := pf.order()
	switch pf.BPP {
	case 8:
		return append(dst, byte(pixel))
	case 16:
		var buf [2]byte
		order.PutUint16(buf[:], uint16(pixel))
		return append(dst, buf[:]...)
	default: // 32
		var buf [4]byte
		order.PutUint32(buf[:], pixel)
		return append(dst, buf[:]...)
	}
}

// TranslatePixels converts a canonical interior pixel array (4 bytes per
// pixel: R,G,B,pad) into the client's wire PixelFormat. Returns nil if the
// input length doesn't match width*height*4.
func TranslatePixels(interior []byte, width, height int, pf PixelFormat) []byte {
	n := width * height
	if len(interior) != n*4 {
		return nil
	}
	out := make([]byte, 0, n*pf.BytesPerPixel())
	for i := 0; i < n; i++ {
		r, g, b := interior[i*4], interior[i*4+1], interior[i*4+2]
		pixel := packPixel(r, g, b, pf)
		out = appendPixel(out, pixel, pf)
	}
	return out
}

// TranslatePixel converts a single interior pixel to its client-format
// representation, appending the result to dst.
func TranslatePixel(dst []byte, r, g, b uint8, pf PixelFormat) []byte {
	return appendPixel(dst, packPixel(r, g, b, pf), pf)
}

// CompactPixel writes a 3-byte compact pixel (the packed pixel without its
// unused most significant byte, in pf's byte order) when pf.fitsInLow24,
// otherwise it writes a normal client-format pixel. This single helper
// backs both Tight's TPIXEL and ZRLE's CPIXEL, which are defined
// identically in RFC 6143 and the Tight extension.
func CompactPixel(dst []byte, r, g, b uint8, pf PixelFormat) []byte {
	if !pf.fitsInLow24() {
		return appendPixel(dst, packPixel(r, g, b, pf), pf)
	}
	pixel := packPixel(r, g, b, pf)
	// Drop whichever byte of the 32-bit pixel lies entirely outside every
	// channel mask (always the most significant byte, since fitsInLow24
	// guarantees all channels live in bits 0..23), keeping the other three
	// in pf's declared byte order.
	if pf.BigEndian != 0 {
		return append(dst, byte(pixel>>16), byte(pixel>>8), byte(pixel))
	}
	return append(dst, byte(pixel), byte(pixel>>8), byte(pixel>>16))
}

// CompactPixelSize returns 3 when pf qualifies for TPIXEL/CPIXEL compaction,
// otherwise pf.BytesPerPixel().
func CompactPixelSize(pf PixelFormat) int {
	if pf.fitsInLow24() {
		return 3
	}
	return pf.BytesPerPixel()
}

// TranslateCompact converts an interior pixel array into a sequence of
// compact pixels (TPIXEL/CPIXEL), one call servicing both Tight and ZRLE.
func TranslateCompact(interior []byte, width, height int, pf PixelFormat) []byte {
	n := width * height
	if len(interior) != n*4 {
		return nil
	}
	out := make([]byte, 0, n*CompactPixelSize(pf))
	for i := 0; i < n; i++ {
		out = CompactPixel(out, interior[i*4], interior[i*4+1], interior[i*4+2], pf)
	}
	return out
}
