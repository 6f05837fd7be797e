package rfbenc

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTightPng(t *testing.T) {
	interior := make([]byte, 16*16*4)
	for i := 0; i < 16*16; i++ {
		interior[i*4] = byte(i * 7)
		interior[i*4+1] = byte(i * 3)
		interior[i*4+2] = byte(i)
	}

	out, err := EncodeTightPng(interior, 16, 16, Options{Compression: 5})
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, byte(tightPngControl), out[0])

	length, consumed := readCompactLength(out, 1)
	body := out[1+consumed:]
	assert.Equal(t, length, len(body))

	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())

	r, g, b, _ := img.At(1, 0).RGBA()
	// image/color.RGBA64 values are 16-bit-scaled; shift back down to 8-bit.
	assert.Equal(t, uint8(interior[4]), uint8(r>>8))
	assert.Equal(t, uint8(interior[5]), uint8(g>>8))
	assert.Equal(t, uint8(interior[6]), uint8(b>>8))
}

func TestEncodeTightPngBadDimensions(t *testing.T) {
	out, err := EncodeTightPng([]byte{1}, 1, 1, Options{})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestPngCompressionLevel(t *testing.T) {
	assert.Equal(t, png.NoCompression, pngCompressionLevel(0))
	assert.Equal(t, png.BestSpeed, pngCompressionLevel(2))
	assert.Equal(t, png.DefaultCompression, pngCompressionLevel(5))
	assert.Equal(t, png.BestCompression, pngCompressionLevel(9))
}
