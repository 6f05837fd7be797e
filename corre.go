package rfbenc

// MaxCoRRETile is the largest tile CoRRE can encode in one call, since its
// subrectangle coordinates and dimensions are single bytes. Rectangles
// larger than this in either dimension must be decomposed by the caller
// into MaxCoRRETile x MaxCoRRETile tiles.
const MaxCoRRETile = 255

// EncodeCoRRE implements CoRRE (Compressed RRE, a TightVNC extension to the
// RFC 6143 §7.7.3 RRE encoding): identical to RRE but with 8-bit subrectangle
// count and coordinates. Operates on a single tile no larger than
// MaxCoRRETile x MaxCoRRETile; a caller with a larger rectangle must
// decompose it into such tiles itself.
//
// Falls back to EncodeRaw if width or height exceed MaxCoRRETile, or if the
// subrectangle count would exceed 255.
func EncodeCoRRE(interior []byte, width, height int, opts Options) []byte {
	if width <= 0 || height <= 0 || len(interior) != 4*width*height {
		return nil
	}
	if width > MaxCoRRETile || height > MaxCoRRETile {
		return EncodeRaw(interior, width, height, opts)
	}

	bgR, bgG, bgB := mostCommonColor(interior, width*height)
	subs := findSubrects(interior, width, height, bgR, bgG, bgB)

	if len(subs) > 255 {
		return EncodeRaw(interior, width, height, opts)
	}

	out := TranslatePixel(nil, bgR, bgG, bgB, opts.Format)
	out = append(out, byte(len(subs)))

	for _, s := range subs {
		out = TranslatePixel(out, s.r, s.g, s.b, opts.Format)
		out = append(out, byte(s.x), byte(s.y), byte(s.w), byte(s.h))
	}
	return out
}
