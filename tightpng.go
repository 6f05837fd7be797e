package rfbenc

import (
	"bytes"
	"image"
	"image/png"
)

// tightPngControl is the single control byte TightPng rectangles begin
// with, distinct from every Tight Basic/Fill/JPEG control byte.
const tightPngControl = 0x0A

// EncodeTightPng implements the TightPng pseudo-encoding (type -260): emits
// control byte 0x0A, a compact length, then an 8-bit RGB PNG (no alpha) of
// the rectangle. The Solid and palette control codes Tight proper uses are
// available in principle but the canonical path always emits PNG, per the
// TightPNG extension to RFC 6143 §7.7.7 Tight.
func EncodeTightPng(interior []byte, width, height int, opts Options) ([]byte, error) {
	if width <= 0 || height <= 0 || len(interior) != 4*width*height {
		return nil, nil
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		img.Pix[i*4] = interior[i*4]
		img.Pix[i*4+1] = interior[i*4+1]
		img.Pix[i*4+2] = interior[i*4+2]
		img.Pix[i*4+3] = 0xff
	}

	enc := &png.Encoder{CompressionLevel: pngCompressionLevel(opts.Compression)}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}

	out := []byte{tightPngControl}
	out = appendCompactLength(out, buf.Len())
	return append(out, buf.Bytes()...), nil
}

// pngCompressionLevel maps the RFB 0-9 compression scale onto
// image/png.Encoder's coarser three-way level, per the TightPNG extension to
// RFC 6143 §7.7.7 Tight.
func pngCompressionLevel(level int) png.CompressionLevel {
	switch {
	case level <= 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 7:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
