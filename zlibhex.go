package rfbenc

import "encoding/binary"

// zlibHexStreamSubrects and zlibHexStreamRaw are the persistent stream
// indices ZlibHex (a TigerVNC extension layering RFC 6143 §7.7.4 Hextile's
// tiling under a persistent zlib stream) multiplexes across: AnySubrects and
// SubrectsColoured tile bodies share stream 0, Raw tile bodies get their own
// stream 1, since the two byte distributions compress poorly under a shared
// dictionary.
const (
	zlibHexStreamSubrects = 0
	zlibHexStreamRaw      = 1
)

// EncodeZlibHex implements the ZlibHex encoding (type 8): identical tiling
// and per-tile mask selection to Hextile, but the variable-length body that
// follows each mask byte (raw pixels, or subrectangle colour+geometry data)
// is zlib-compressed per tile as its own sync-flushed chunk of one of two
// shared persistent streams (zlibHexStreamRaw for Raw tiles,
// zlibHexStreamSubrects otherwise), and framed with a u16 byte length. The mask byte
// itself is never compressed. Requires a non-nil opts.Compressor.
func EncodeZlibHex(interior []byte, width, height int, opts Options) ([]byte, error) {
	if width <= 0 || height <= 0 || len(interior) != 4*width*height {
		return nil, nil
	}
	if opts.Compressor == nil {
		return nil, ErrNoCompressor
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
			tileBytes := encodeHextileTile(nil, tile, tw, th, opts.Format, &st)
			mask, body := tileBytes[0], tileBytes[1:]

			out = append(out, mask)

			// Only the variable-length Raw/AnySubrects/SubrectsColoured
			// bodies are worth compressing; a bare background-colour update
			// is a single client-format pixel and goes out uncompressed,
			// unframed.
			compressible := mask&(hextileRaw|hextileAnySubrects) != 0
			if !compressible {
				out = append(out, body...)
				continue
			}

			streamID := zlibHexStreamSubrects
			if mask&hextileRaw != 0 {
				streamID = zlibHexStreamRaw
			}

			compressed, err := opts.Compressor.Compress(streamID, opts.Compression, body)
			if err != nil {
				return nil, err
			}

			var length [2]byte
			binary.BigEndian.PutUint16(length[:], uint16(len(compressed)))
			out = append(out, length[:]...)
			out = append(out, compressed...)
		}
	}
	return out, nil
}
