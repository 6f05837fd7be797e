package rfbenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTightSolid(t *testing.T) {
	pf := DefaultPixelFormat
	interior := solidInterior(40, 40, 7, 8, 9)
	opts := Options{Format: pf, Quality: 6, Compression: 6, Compressor: NewCompressor()}

	out, err := EncodeTight(interior, 40, 40, opts)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	assert.Equal(t, byte(tightCtrlFill), out[0])
	r, g, b, size := decodeCompactPixel(out, 1, pf)
	assert.Equal(t, uint8(7), r)
	assert.Equal(t, uint8(8), g)
	assert.Equal(t, uint8(9), b)
	assert.Equal(t, 1+size, len(out))
}

func TestEncodeTightMono(t *testing.T) {
	pf := DefaultPixelFormat
	interior := solidInterior(20, 20, 0, 0, 0)
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			i := (y*20 + x) * 4
			interior[i], interior[i+1], interior[i+2] = 255, 255, 255
		}
	}
	opts := Options{Format: pf, Quality: 6, Compression: 6, Compressor: NewCompressor()}
	out, err := EncodeTight(interior, 20, 20, opts)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	ctrl := out[0]
	assert.NotEqual(t, byte(0), ctrl&tightCtrlFilterFlag)
	assert.Equal(t, byte(1), out[1]) // paletteSize - 1 == 1, i.e. 2 colours
}

func TestEncodeTightIndexed(t *testing.T) {
	pf := DefaultPixelFormat
	interior := make([]byte, 20*20*4)
	for i := 0; i < 20*20; i++ {
		c := byte((i % 5) * 50)
		interior[i*4], interior[i*4+1], interior[i*4+2] = c, c, c
	}
	opts := Options{Format: pf, Quality: 6, Compression: 6, Compressor: NewCompressor()}
	out, err := EncodeTight(interior, 20, 20, opts)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, byte(4), out[1]) // paletteSize - 1 == 4, i.e. 5 colours
}

func TestEncodeTightFullColorFallback(t *testing.T) {
	pf := DefaultPixelFormat
	interior := make([]byte, 32*32*4)
	for i := 0; i < 32*32; i++ {
		interior[i*4] = byte(i * 7)
		interior[i*4+1] = byte(i * 13)
		interior[i*4+2] = byte(i * 23)
	}
	opts := Options{Format: pf, Quality: 9, Compression: 6, Compressor: NewCompressor()}
	out, err := EncodeTight(interior, 32, 32, opts)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, byte(0x00), out[0])
}

func TestEncodeTightJPEGPath(t *testing.T) {
	pf := DefaultPixelFormat
	interior := make([]byte, 64*64*4)
	for i := 0; i < 64*64; i++ {
		interior[i*4] = byte(i * 3)
		interior[i*4+1] = byte(i * 17)
		interior[i*4+2] = byte(i * 41)
	}
	opts := Options{Format: pf, Quality: 2, Compression: 6, Compressor: NewCompressor()}
	out, err := EncodeTight(interior, 64, 64, opts)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, byte(tightCtrlJPEG), out[0])
}

func TestEncodeTightRequiresCompressor(t *testing.T) {
	interior := solidInterior(4, 4, 1, 1, 1)
	_, err := EncodeTight(interior, 4, 4, Options{Format: DefaultPixelFormat})
	assert.ErrorIs(t, err, ErrNoCompressor)
}

func TestLooksLikeGradient(t *testing.T) {
	flat := solidInterior(10, 10, 50, 50, 50)
	assert.True(t, looksLikeGradient(flat, 100))

	noisy := make([]byte, 10*10*4)
	for i := 0; i < 100; i++ {
		noisy[i*4] = byte(i * 37 % 256)
		noisy[i*4+1] = byte(i * 91 % 256)
		noisy[i*4+2] = byte(i * 53 % 256)
	}
	assert.False(t, looksLikeGradient(noisy, 100))
}
