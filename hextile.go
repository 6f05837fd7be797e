package rfbenc

// Hextile subencoding mask bits, per RFC 6143 §7.7.4.
const (
	hextileRaw              = 1 << 0
	hextileBgSpecified      = 1 << 1
	hextileFgSpecified      = 1 << 2
	hextileAnySubrects      = 1 << 3
	hextileSubrectsColoured = 1 << 4
)

// TileSize is the Hextile/ZlibHex tile edge length.
const TileSize = 16

// maxHextilePaletteColours bounds the "few colours" cascade step in
// RFC 6143 §7.7.4.
const maxHextilePaletteColours = 16

type hextileState struct {
	bg      [3]uint8
	bgValid bool
	fg      [3]uint8
	fgValid bool
}

// EncodeHextile implements the Hextile encoding (RFC 6143 §7.7.4): the
// rectangle is tiled 16x16; each tile emits a one-byte subencoding mask
// chosen by the cascade in RFC 6143 §7.7.4. The carried background and
// foreground colours persist across tiles of a single call (i.e. a single
// rectangle) and are invalidated whenever the corresponding flag fires.
func EncodeHextile(interior []byte, width, height int, opts Options) []byte {
	if width <= 0 || height <= 0 || len(interior) != 4*width*height {
		return nil
	}

	var out []byte
	var st hextileState

	for ty := 0; ty < height; ty += TileSize {
		th := TileSize
		if ty+th > height {
			th = height - ty
		}
		for tx := 0; tx < width; tx += TileSize {
			tw := TileSize
			if tx+tw > width {
				tw = width - tx
			}
			tile := extractTile(interior, width, tx, ty, tw, th)
			out = encodeHextileTile(out, tile, tw, th, opts.Format, &st)
		}
	}
	return out
}

// extractTile copies a tw x th block starting at (x,y) out of a w-wide
// interior pixel array into its own contiguous 4-byte-per-pixel buffer.
func extractTile(interior []byte, width, x, y, tw, th int) []byte {
	tile := make([]byte, tw*th*4)
	for row := 0; row < th; row++ {
		srcOff := ((y+row)*width + x) * 4
		dstOff := row * tw * 4
		copy(tile[dstOff:dstOff+tw*4], interior[srcOff:srcOff+tw*4])
	}
	return tile
}

func encodeHextileTile(out []byte, tile []byte, w, h int, pf PixelFormat, st *hextileState) []byte {
	n := w * h
	pal, indices, ok := buildPalette(tile, n, maxHextilePaletteColours)

	if ok && pal.size() == 1 {
		r, g, b := pal.colorAt(0)
		if st.bgValid && st.bg == [3]uint8{r, g, b} {
			return append(out, 0)
		}
		st.bg = [3]uint8{r, g, b}
		st.bgValid = true
		out = append(out, hextileBgSpecified)
		return TranslatePixel(out, r, g, b, pf)
	}

	bgR, bgG, bgB := mostCommonColor(tile, n)
	subs := findSubrects(tile, w, h, bgR, bgG, bgB)

	if ok && pal.size() == 2 && len(subs) <= 255 {
		var fgR, fgG, fgB uint8
		for i := 0; i < pal.size(); i++ {
			r, g, b := pal.colorAt(i)
			if !(r == bgR && g == bgG && b == bgB) {
				fgR, fgG, fgB = r, g, b
			}
		}
		var mask byte = hextileAnySubrects
		if !st.bgValid || st.bg != [3]uint8{bgR, bgG, bgB} {
			mask |= hextileBgSpecified
			st.bg = [3]uint8{bgR, bgG, bgB}
			st.bgValid = true
		}
		if !st.fgValid || st.fg != [3]uint8{fgR, fgG, fgB} {
			mask |= hextileFgSpecified
			st.fg = [3]uint8{fgR, fgG, fgB}
			st.fgValid = true
		}
		out = append(out, mask)
		if mask&hextileBgSpecified != 0 {
			out = TranslatePixel(out, bgR, bgG, bgB, pf)
		}
		if mask&hextileFgSpecified != 0 {
			out = TranslatePixel(out, fgR, fgG, fgB, pf)
		}
		out = append(out, byte(len(subs)))
		for _, s := range subs {
			out = append(out, byte(s.x<<4|s.y), byte((s.w-1)<<4|(s.h-1)))
		}
		return out
	}

	_ = indices
	bpp := pf.BytesPerPixel()
	subrectBytes := 1 + len(subs)*(bpp+2)
	rawBytes := n * bpp

	if ok && len(subs) <= 255 && subrectBytes < rawBytes {
		mask := byte(hextileAnySubrects | hextileSubrectsColoured)
		if !st.bgValid || st.bg != [3]uint8{bgR, bgG, bgB} {
			mask |= hextileBgSpecified
			st.bg = [3]uint8{bgR, bgG, bgB}
			st.bgValid = true
		}
		out = append(out, mask)
		if mask&hextileBgSpecified != 0 {
			out = TranslatePixel(out, bgR, bgG, bgB, pf)
		}
		out = append(out, byte(len(subs)))
		for _, s := range subs {
			out = TranslatePixel(out, s.r, s.g, s.b, pf)
			out = append(out, byte(s.x<<4|s.y), byte((s.w-1)<<4|(s.h-1)))
		}
		return out
	}

	out = append(out, hextileRaw)
	return append(out, TranslatePixels(tile, w, h, pf)...)
}
