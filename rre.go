package rfbenc

import "encoding/binary"

// EncodeRRE implements the RRE encoding (RFC 6143 §7.7.3): a single
// background colour plus a list of 16-bit-coordinate monochrome
// subrectangles covering everything else.
//
// Wire form: u32 nSubrects, background pixel, then per subrect
// [color][u16 x][u16 y][u16 w][u16 h]. Falls back to EncodeRaw if the
// subrectangle count would overflow a uint32 (never happens in practice,
// since a rectangle has at most width*height subrects, but the fallback is
// part of the documented error taxonomy).
func EncodeRRE(interior []byte, width, height int, opts Options) []byte {
	if width <= 0 || height <= 0 || len(interior) != 4*width*height {
		return nil
	}

	bgR, bgG, bgB := mostCommonColor(interior, width*height)
	subs := findSubrects(interior, width, height, bgR, bgG, bgB)

	if uint64(len(subs)) > 0xFFFFFFFF {
		return EncodeRaw(interior, width, height, opts)
	}

	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, uint32(len(subs)))
	out = TranslatePixel(out, bgR, bgG, bgB, opts.Format)

	for _, s := range subs {
		out = TranslatePixel(out, s.r, s.g, s.b, opts.Format)
		var coords [8]byte
		binary.BigEndian.PutUint16(coords[0:2], uint16(s.x))
		binary.BigEndian.PutUint16(coords[2:4], uint16(s.y))
		binary.BigEndian.PutUint16(coords[4:6], uint16(s.w))
		binary.BigEndian.PutUint16(coords[6:8], uint16(s.h))
		out = append(out, coords[:]...)
	}
	return out
}
