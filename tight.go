package rfbenc

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/golang/glog"
)

// Tight control-byte bit patterns, per RFC 6143 §7.7.7.
const (
	tightCtrlFilterShift = 4
	tightCtrlFilterFlag  = 0x40
	tightFilterPalette   = 0x01

	tightCtrlFill = 0x80
	tightCtrlJPEG = 0x90
)

// Persistent zlib stream indices Tight multiplexes across its Basic modes.
const (
	tightStreamFullColor = 0
	tightStreamMono      = 1
	tightStreamIndexed   = 2
)

// tightCompressThreshold is the RFC 6143 §7.7.7 minimum size of an
// uncompressed Basic payload; a shorter payload is sent uncompressed.
const tightCompressThreshold = 12

// tightMaxStripRows caps every Tight strip regardless of width, matching the
// "hard limit 2048 rows per strip" clause of RFC 6143 §7.7.7.
const tightMaxStripRows = 2048

// tightJPEGQualityTable maps the RFB 0-9 quality scale onto JPEG quality.
var tightJPEGQualityTable = [10]int{5, 10, 15, 25, 37, 50, 60, 70, 75, 80}

// EncodeTight implements the Tight encoding (type 7): splits large
// rectangles into horizontal strips, classifies each strip into one of five
// modes (Solid, Mono, Indexed, JPEG, BasicFullColor) per the cascade in
// RFC 6143 §7.7.7, and compresses Basic-mode payloads through the
// connection's persistent streams. Requires a non-nil opts.Compressor.
func EncodeTight(interior []byte, width, height int, opts Options) ([]byte, error) {
	if width <= 0 || height <= 0 || len(interior) != 4*width*height {
		return nil, nil
	}
	if opts.Compressor == nil {
		return nil, ErrNoCompressor
	}

	stripRows := 65536 / width
	if stripRows > tightMaxStripRows {
		stripRows = tightMaxStripRows
	}
	if stripRows < 1 {
		stripRows = 1
	}

	var out []byte
	for y := 0; y < height; y += stripRows {
		h := stripRows
		if y+h > height {
			h = height - y
		}
		strip := interior[y*width*4 : (y+h)*width*4]
		enc, err := encodeTightStrip(strip, width, h, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	return out, nil
}

func encodeTightStrip(interior []byte, width, height int, opts Options) ([]byte, error) {
	n := width * height
	pf := opts.Format

	pal, indices, indexed := buildPalette(interior, n, 16)

	switch {
	case indexed && pal.size() == 1:
		r, g, b := pal.colorAt(0)
		out := []byte{tightCtrlFill}
		return CompactPixel(out, r, g, b, pf), nil

	case indexed && pal.size() == 2:
		return encodeTightMono(interior, width, height, pal, indices, opts)

	case indexed:
		return encodeTightIndexed(interior, width, height, pal, indices, opts)
	}

	if opts.Quality >= 0 && opts.Quality < 5 && !looksLikeGradient(interior, n) {
		out, err := encodeTightJPEG(interior, width, height, opts)
		if err == nil {
			return out, nil
		}
		glog.Warningf("rfbenc: tight JPEG mode failed, falling back to BasicFullColor: %v", err)
	}
	return encodeTightFullColor(interior, width, height, opts)
}

func encodeTightMono(interior []byte, width, height int, pal *palette, indices []int, opts Options) ([]byte, error) {
	pf := opts.Format
	r0, g0, b0 := pal.colorAt(0)
	r1, g1, b1 := pal.colorAt(1)

	body := packIndices(indices, width, height, 1)
	payload, err := compressTightBody(body, tightStreamMono, opts)
	if err != nil {
		return nil, err
	}

	ctrl := byte(tightCtrlFilterFlag | tightFilterPalette<<tightCtrlFilterShift)
	out := []byte{ctrl, byte(pal.size() - 1)}
	out = CompactPixel(out, r0, g0, b0, pf)
	out = CompactPixel(out, r1, g1, b1, pf)
	return append(out, payload...), nil
}

func encodeTightIndexed(interior []byte, width, height int, pal *palette, indices []int, opts Options) ([]byte, error) {
	pf := opts.Format
	bits := bitsForPaletteSize(pal.size())
	body := packIndices(indices, width, height, bits)
	payload, err := compressTightBody(body, tightStreamIndexed, opts)
	if err != nil {
		return nil, err
	}

	ctrl := byte(tightCtrlFilterFlag | tightFilterPalette<<tightCtrlFilterShift)
	out := []byte{ctrl, byte(pal.size() - 1)}
	for i := 0; i < pal.size(); i++ {
		r, g, b := pal.colorAt(i)
		out = CompactPixel(out, r, g, b, pf)
	}
	return append(out, payload...), nil
}

func encodeTightFullColor(interior []byte, width, height int, opts Options) ([]byte, error) {
	body := TranslateCompact(interior, width, height, opts.Format)
	payload, err := compressTightBody(body, tightStreamFullColor, opts)
	if err != nil {
		return nil, err
	}
	return append([]byte{0x00}, payload...), nil
}

// compressTightBody applies the RFC 6143 §7.7.7 Basic-mode threshold: a
// body shorter than tightCompressThreshold bytes is sent raw with no stream
// touched and no length
// prefix; otherwise it is zlib-compressed through streamID and framed with a
// compact length.
func compressTightBody(body []byte, streamID int, opts Options) ([]byte, error) {
	if len(body) < tightCompressThreshold {
		return body, nil
	}
	compressed, err := opts.Compressor.Compress(streamID, opts.Compression, body)
	if err != nil {
		return nil, err
	}
	out := appendCompactLength(nil, len(compressed))
	return append(out, compressed...), nil
}

// encodeTightJPEG encodes interior as baseline JPEG at a quality mapped from
// opts.Quality via tightJPEGQualityTable, framed as control 0x90 + compact
// length + JPEG bytes.
func encodeTightJPEG(interior []byte, width, height int, opts Options) ([]byte, error) {
	q := opts.Quality
	if q < 0 {
		q = 0
	}
	if q > 9 {
		q = 9
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		img.Pix[i*4] = interior[i*4]
		img.Pix[i*4+1] = interior[i*4+1]
		img.Pix[i*4+2] = interior[i*4+2]
		img.Pix[i*4+3] = 0xff
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: tightJPEGQualityTable[q]}); err != nil {
		return nil, err
	}

	out := []byte{tightCtrlJPEG}
	out = appendCompactLength(out, buf.Len())
	return append(out, buf.Bytes()...), nil
}

// looksLikeGradient implements the conservative "smooth/gradient" guard
// discussed alongside RFC 6143 §7.7.7's JPEG Basic-mode trade-off: a large
// unique-colour count together with a low per-channel standard deviation
// suggests a flat, largely-solid surface rather than a photograph, in which
// case JPEG is not worth attempting. The threshold below is tuned
// empirically, not derived from the protocol.
func looksLikeGradient(interior []byte, count int) bool {
	if count == 0 {
		return false
	}
	var sumR, sumG, sumB int64
	for i := 0; i < count; i++ {
		sumR += int64(interior[i*4])
		sumG += int64(interior[i*4+1])
		sumB += int64(interior[i*4+2])
	}
	meanR := float64(sumR) / float64(count)
	meanG := float64(sumG) / float64(count)
	meanB := float64(sumB) / float64(count)

	var varR, varG, varB float64
	for i := 0; i < count; i++ {
		dr := float64(interior[i*4]) - meanR
		dg := float64(interior[i*4+1]) - meanG
		db := float64(interior[i*4+2]) - meanB
		varR += dr * dr
		varG += dg * dg
		varB += db * db
	}
	varR /= float64(count)
	varG /= float64(count)
	varB /= float64(count)

	const lowVarianceThreshold = 4.0 // std-dev ~2 out of 255
	return varR < lowVarianceThreshold && varG < lowVarianceThreshold && varB < lowVarianceThreshold
}
