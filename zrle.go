package rfbenc

import "encoding/binary"

// ZRLETileSize is the ZRLE/ZYWRLE tile edge length (RFC 6143 §7.7.6, larger
// than Hextile's since CPIXEL compaction already shrinks the raw case).
const ZRLETileSize = 64

// ZRLE subencoding control-byte values, grounded on
// CambridgeSoftwareLtd-go-vnc/zrle/zrle.go's decode-side SubType table and
// inverted here for encoding.
const (
	zrleSubRaw         = 0
	zrleSubSolid       = 1
	zrleSubRLE         = 128
	zrleSubPaletteRLE  = 130 // + (paletteSize - 2), for paletteSize in [2,127]
	minPaletteRunLen   = 3   // shortest run that sends a >16-colour tile to plain RLE
)

// EncodeZRLE implements the ZRLE encoding (type 16): tile the rectangle
// 64x64, choose a per-tile subencoding in CPIXEL form, concatenate every
// tile's bytes, compress the whole buffer through stream 0, and frame it
// with a u32 byte length. Requires a non-nil opts.Compressor.
func EncodeZRLE(interior []byte, width, height int, opts Options) ([]byte, error) {
	if width <= 0 || height <= 0 || len(interior) != 4*width*height {
		return nil, nil
	}
	if opts.Compressor == nil {
		return nil, ErrNoCompressor
	}

	var body []byte
	for ty := 0; ty < height; ty += ZRLETileSize {
		th := ZRLETileSize
		if ty+th > height {
			th = height - ty
		}
		for tx := 0; tx < width; tx += ZRLETileSize {
			tw := ZRLETileSize
			if tx+tw > width {
				tw = width - tx
			}
			tile := extractTile(interior, width, tx, ty, tw, th)
			body = encodeZRLETile(body, tile, tw, th, opts.Format)
		}
	}

	compressed, err := opts.Compressor.Compress(zlibStreamFullColour, opts.Compression, body)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 4, 4+len(compressed))
	binary.BigEndian.PutUint32(out, uint32(len(compressed)))
	return append(out, compressed...), nil
}

func encodeZRLETile(out []byte, tile []byte, w, h int, pf PixelFormat) []byte {
	n := w * h
	pal, indices, small := buildPalette(tile, n, 127)

	if small && pal.size() == 1 {
		r, g, b := pal.colorAt(0)
		out = append(out, zrleSubSolid)
		return CompactPixel(out, r, g, b, pf)
	}

	if small && pal.size() <= 16 {
		return encodeZRLEPackedPalette(out, tile, indices, pal, w, h, pf)
	}

	longRun := false
	if small {
		for _, rl := range calcRuns(indices) {
			if rl.length >= minPaletteRunLen {
				longRun = true
				break
			}
		}
	} else {
		longRun = hasLongRunRaw(tile, n)
	}

	switch {
	case longRun:
		return encodeZRLEPlainRLE(out, tile, n, pf)

	case small: // 17-127 colours, no long run
		return encodeZRLEPaletteRLE(out, indices, pal, pf)

	default:
		out = append(out, zrleSubRaw)
		return append(out, TranslateCompact(tile, w, h, pf)...)
	}
}

type colorRun struct {
	idx    int
	length int
}

// calcRuns compresses an index array into (index,runLength) pairs, grounded
// on CambridgeSoftwareLtd-go-vnc/zrle/zrle.go's CalcRuns.
func calcRuns(indices []int) []colorRun {
	var runs []colorRun
	for i := 0; i < len(indices); {
		j := i + 1
		for j < len(indices) && indices[j] == indices[i] {
			j++
		}
		runs = append(runs, colorRun{idx: indices[i], length: j - i})
		i = j
	}
	return runs
}

// hasLongRunRaw scans the raw (non-palette) tile pixel-by-pixel for any
// run of identical colour at least minPaletteRunLen long, used to decide
// between plain RLE and raw CPIXELs once the tile has more than 127 colours
// and the palette has overflowed.
func hasLongRunRaw(tile []byte, n int) bool {
	if n == 0 {
		return false
	}
	run := 1
	prevKey := pixelKey(tile[0], tile[1], tile[2])
	for i := 1; i < n; i++ {
		k := pixelKey(tile[i*4], tile[i*4+1], tile[i*4+2])
		if k == prevKey {
			run++
			if run >= minPaletteRunLen {
				return true
			}
		} else {
			run = 1
			prevKey = k
		}
	}
	return false
}

func encodeZRLEPackedPalette(out []byte, tile []byte, indices []int, pal *palette, w, h int, pf PixelFormat) []byte {
	out = append(out, byte(pal.size()))
	for i := 0; i < pal.size(); i++ {
		r, g, b := pal.colorAt(i)
		out = CompactPixel(out, r, g, b, pf)
	}
	bits := bitsForPaletteSize(pal.size())
	return append(out, packIndices(indices, w, h, bits)...)
}

// encodeZRLEPaletteRLE emits the palette-RLE subencoding for 17-127 colours
// (control byte 130 + (paletteSize-2)): palette, then each run as either a
// bare palette index (run of length 1, high bit clear) or index|0x80
// followed by the run's variable-length count (run of length >= 2).
func encodeZRLEPaletteRLE(out []byte, indices []int, pal *palette, pf PixelFormat) []byte {
	out = append(out, byte(zrleSubPaletteRLE+pal.size()-2))
	for i := 0; i < pal.size(); i++ {
		r, g, b := pal.colorAt(i)
		out = CompactPixel(out, r, g, b, pf)
	}
	for _, run := range calcRuns(indices) {
		if run.length == 1 {
			out = append(out, byte(run.idx))
			continue
		}
		out = append(out, byte(run.idx)|0x80)
		out = appendRunLength(out, run.length)
	}
	return out
}

// encodeZRLEPlainRLE emits the control-byte-128 subencoding used when more
// than 16 colours are present but long runs still dominate: each run is a
// CPIXEL followed by its variable-length run count.
func encodeZRLEPlainRLE(out []byte, tile []byte, n int, pf PixelFormat) []byte {
	out = append(out, zrleSubRLE)
	i := 0
	for i < n {
		r, g, b := tile[i*4], tile[i*4+1], tile[i*4+2]
		j := i + 1
		for j < n && tile[j*4] == r && tile[j*4+1] == g && tile[j*4+2] == b {
			j++
		}
		out = CompactPixel(out, r, g, b, pf)
		out = appendRunLength(out, j-i)
		i = j
	}
	return out
}
