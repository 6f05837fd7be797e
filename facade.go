package rfbenc

import (
	"fmt"

	"github.com/dustinmcafee/rfb-encodings/encodings"
)

// ErrUnknownEncoding is returned by Encode for any encodings.Type not
// implemented by this package (e.g. CopyRect, which carries no pixel
// payload of its own).
var ErrUnknownEncoding = fmt.Errorf("rfbenc: unknown or unsupported encoding type")

// Encode dispatches to the Encode* function matching t, the single entry
// point a framing layer should call once it has decided which wire
// encoding to use for a rectangle. This mirrors the teacher's own split
// between a root package and an `encodings` constants package: callers
// that already hold an encodings.Type never need to know the per-encoder
// function names.
func Encode(t encodings.Type, interior []byte, width, height int, opts Options) ([]byte, error) {
	switch t {
	case encodings.Raw:
		return EncodeRaw(interior, width, height, opts), nil
	case encodings.RRE:
		return EncodeRRE(interior, width, height, opts), nil
	case encodings.CoRRE:
		return EncodeCoRRE(interior, width, height, opts), nil
	case encodings.Hextile:
		return EncodeHextile(interior, width, height, opts), nil
	case encodings.Zlib:
		return EncodeZlib(interior, width, height, opts)
	case encodings.ZlibHex:
		return EncodeZlibHex(interior, width, height, opts)
	case encodings.Tight:
		return EncodeTight(interior, width, height, opts)
	case encodings.TightPng:
		return EncodeTightPng(interior, width, height, opts)
	case encodings.ZRLE:
		return EncodeZRLE(interior, width, height, opts)
	case encodings.ZYWRLE:
		return EncodeZYWRLE(interior, width, height, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, t)
	}
}
