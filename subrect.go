package rfbenc

// subrect is a tile/rectangle-local axis-aligned monochrome block, the unit
// RRE/CoRRE/Hextile (RFC 6143 §7.7.3/§7.7.4) encode non-background runs as.
type subrect struct {
	r, g, b    uint8
	x, y, w, h int
}

// findSubrects partitions every pixel whose colour differs from
// (bgR,bgG,bgB) into axis-aligned monochrome subrectangles, by a greedy
// scan: row-major; on encountering an unconsumed non-background pixel,
// extend right while the colour matches, then extend down while the
// full-width strip matches; mark consumed; continue. This guarantees every
// non-background pixel is covered by at least one subrectangle — none is
// ever dropped for being "inefficient".
func findSubrects(interior []byte, width, height int, bgR, bgG, bgB uint8) []subrect {
	consumed := make([]bool, width*height)
	at := func(x, y int) (uint8, uint8, uint8) {
		i := (y*width + x) * 4
		return interior[i], interior[i+1], interior[i+2]
	}
	isBG := func(r, g, b uint8) bool { return r == bgR && g == bgG && b == bgB }

	var out []subrect
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if consumed[idx] {
				continue
			}
			r, g, b := at(x, y)
			if isBG(r, g, b) {
				continue
			}

			w := 1
			for x+w < width {
				ci := y*width + (x + w)
				if consumed[ci] {
					break
				}
				rr, gg, bb := at(x+w, y)
				if rr != r || gg != g || bb != b {
					break
				}
				w++
			}

			h := 1
		rowLoop:
			for y+h < height {
				for dx := 0; dx < w; dx++ {
					ci := (y+h)*width + (x + dx)
					if consumed[ci] {
						break rowLoop
					}
					rr, gg, bb := at(x+dx, y+h)
					if rr != r || gg != g || bb != b {
						break rowLoop
					}
				}
				h++
			}

			for dy := 0; dy < h; dy++ {
				for dx := 0; dx < w; dx++ {
					consumed[(y+dy)*width+(x+dx)] = true
				}
			}
			out = append(out, subrect{r: r, g: g, b: b, x: x, y: y, w: w, h: h})
		}
	}
	return out
}
