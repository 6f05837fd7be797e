package rfbenc

import "encoding/binary"

// zlibStreamFullColour is the persistent stream index used by both Zlib and
// ZRLE/ZYWRLE, following the same single-stream discipline RFC 6143 §7.7.6
// ZRLE and §7.7.7 Tight use for their full-colour data.
const zlibStreamFullColour = 0

// EncodeZlib implements the Zlib encoding (type 6): translate the rectangle
// to the client's pixel format exactly as Raw does, then compress the whole
// result through the connection's persistent stream 0, framed with a
// u32 byte length. Requires a non-nil opts.Compressor.
func EncodeZlib(interior []byte, width, height int, opts Options) ([]byte, error) {
	if width <= 0 || height <= 0 || len(interior) != 4*width*height {
		return nil, nil
	}
	if opts.Compressor == nil {
		return nil, ErrNoCompressor
	}

	raw := TranslatePixels(interior, width, height, opts.Format)
	compressed, err := opts.Compressor.Compress(zlibStreamFullColour, opts.Compression, raw)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 4, 4+len(compressed))
	binary.BigEndian.PutUint32(out, uint32(len(compressed)))
	return append(out, compressed...), nil
}
