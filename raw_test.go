package rfbenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRawLength(t *testing.T) {
	interior := solidInterior(4, 3, 1, 2, 3)
	out := EncodeRaw(interior, 4, 3, Options{Format: DefaultPixelFormat})
	require.Len(t, out, 4*3*4)
}

func TestEncodeRawRoundTrip(t *testing.T) {
	pf := DefaultPixelFormat
	interior := make([]byte, 2*2*4)
	colors := [4][3]uint8{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}}
	for i, c := range colors {
		interior[i*4], interior[i*4+1], interior[i*4+2] = c[0], c[1], c[2]
	}

	out := EncodeRaw(interior, 2, 2, Options{Format: pf})
	require.Len(t, out, 16)
	for i, c := range colors {
		r, g, b := decodePixel(out, i*4, pf)
		assert.Equal(t, c[0], r)
		assert.Equal(t, c[1], g)
		assert.Equal(t, c[2], b)
	}
}

func TestEncodeRawBadDimensions(t *testing.T) {
	assert.Nil(t, EncodeRaw([]byte{1, 2, 3}, 2, 2, Options{Format: DefaultPixelFormat}))
	assert.Nil(t, EncodeRaw(nil, 0, 0, Options{Format: DefaultPixelFormat}))
}
