package rfbenc

import "encoding/binary"

// zywrleLevels derives the CDF 9/7 decomposition depth L from the RFB
// quality scale used by UltraVNC's ZYWRLE extension to RFC 6143 §7.7.6
// ZRLE: coarser quality tolerates a deeper, lossier transform.
func zywrleLevels(quality int) int {
	switch {
	case quality <= 1:
		return 3
	case quality <= 4:
		return 2
	case quality <= 7:
		return 1
	default:
		return 0
	}
}

// zywrleQuantTable gives the per-level detail-coefficient zeroing threshold,
// tuned empirically rather than derived from the protocol (see RFC 6143
// §7.7.6's ZRLE discussion of lossy subencoding trade-offs) — indexed by
// decomposition level, 1 being the finest, and larger at the coarser
// (higher-numbered) levels.
var zywrleQuantTable = map[int]float64{
	1: 6,
	2: 10,
	3: 16,
}

// EncodeZYWRLE implements the ZYWRLE encoding (type 17): identical framing
// to ZRLE, but each 64x64 tile is first passed through an L-level 2-D CDF
// 9/7 wavelet transform (L derived from quality), has its detail subbands
// quantised, and is reconstructed via the inverse transform before the
// usual ZRLE subencoding cascade runs on the (now smoothed) tile. Edge tiles
// whose width or height is not a multiple of 2^L (including every tile
// narrower than 2^L) fall back to L=0, i.e. identical to plain ZRLE.
// Requires a non-nil opts.Compressor.
func EncodeZYWRLE(interior []byte, width, height int, opts Options) ([]byte, error) {
	if width <= 0 || height <= 0 || len(interior) != 4*width*height {
		return nil, nil
	}
	if opts.Compressor == nil {
		return nil, ErrNoCompressor
	}

	levels := zywrleLevels(opts.Quality)

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
			tileLevels := levels
			if tw%(1<<uint(levels)) != 0 || th%(1<<uint(levels)) != 0 {
				tileLevels = 0
			}
			if tileLevels > 0 {
				tile = zywrleSmoothTile(tile, tw, th, tileLevels)
			}
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

// zywrleSmoothTile runs the forward transform, quantisation, and inverse
// transform on each of the R, G, B channels independently, returning a new
// interior-format tile buffer (pad byte zeroed, unused).
func zywrleSmoothTile(tile []byte, w, h, levels int) []byte {
	planes := [3]*planeDWT{newPlaneDWT(w, h), newPlaneDWT(w, h), newPlaneDWT(w, h)}
	for i := 0; i < w*h; i++ {
		planes[0].data[i] = float64(tile[i*4])
		planes[1].data[i] = float64(tile[i*4+1])
		planes[2].data[i] = float64(tile[i*4+2])
	}

	for _, p := range planes {
		p.forward2D(levels)
	}
	for l := 1; l <= levels; l++ {
		cw, ch := w>>uint(l-1), h>>uint(l-1)
		threshold := zywrleQuantTable[l]
		for _, p := range planes {
			p.quantizeDetail(cw, ch, threshold)
		}
	}
	for _, p := range planes {
		p.inverse2D(levels)
	}

	out := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		out[i*4] = clampToByte(planes[0].data[i])
		out[i*4+1] = clampToByte(planes[1].data[i])
		out[i*4+2] = clampToByte(planes[2].data[i])
	}
	return out
}

func clampToByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
