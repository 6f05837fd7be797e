package rfbenc

import "errors"

// ErrNoCompressor is returned by any encoder that requires a persistent zlib
// stream (Zlib, ZlibHex, Tight, ZRLE, ZYWRLE) when called with a nil
// opts.Compressor.
var ErrNoCompressor = errors.New("rfbenc: encoding requires a non-nil Compressor")

// Options bundles the parameters every encoder needs: the client's
// negotiated PixelFormat, the RFB quality/compression levels (0-9), and —
// for the stateful encodings — the Compressor that owns the persistent
// zlib streams for this connection. Encoders that don't need compression
// ignore Compressor.
type Options struct {
	Quality     int
	Compression int
	Format      PixelFormat
	Compressor  *Compressor
}

func clamp09(v int) int {
	if v < 0 {
		return 0
	}
	if v > 9 {
		return 9
	}
	return v
}
