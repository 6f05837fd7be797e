package rfbenc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeZlibRoundTrip(t *testing.T) {
	pf := DefaultPixelFormat
	interior := solidInterior(16, 16, 1, 2, 3)
	opts := Options{Format: pf, Compression: 6, Compressor: NewCompressor()}

	out, err := EncodeZlib(interior, 16, 16, opts)
	require.NoError(t, err)
	require.True(t, len(out) > 4)

	length := binary.BigEndian.Uint32(out[0:4])
	assert.Equal(t, int(length), len(out)-4)

	r, err := zlib.NewReader(bytes.NewReader(out[4:]))
	require.NoError(t, err)
	decompressed, err := io.ReadAll(r)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF) // sync-flushed, not closed

	expected := TranslatePixels(interior, 16, 16, pf)
	assert.Equal(t, expected, decompressed)
}

func TestEncodeZlibRequiresCompressor(t *testing.T) {
	interior := solidInterior(2, 2, 1, 1, 1)
	_, err := EncodeZlib(interior, 2, 2, Options{Format: DefaultPixelFormat})
	assert.ErrorIs(t, err, ErrNoCompressor)
}

func TestEncodeZlibBadDimensions(t *testing.T) {
	out, err := EncodeZlib([]byte{1}, 1, 1, Options{Format: DefaultPixelFormat, Compressor: NewCompressor()})
	require.NoError(t, err)
	assert.Nil(t, out)
}
