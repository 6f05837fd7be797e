package rfbenc

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressorFirstCallRoundTrips(t *testing.T) {
	c := NewCompressor()
	input := bytes.Repeat([]byte("hello rfbenc"), 20)

	out, err := c.Compress(0, 6, input)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	r, err := zlib.NewReader(bytes.NewReader(out))
	require.NoError(t, err)
	// The stream is sync-flushed, not closed, so the reader runs out of
	// input after the flushed data instead of reaching a final block.
	got, err := io.ReadAll(r)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, input, got)
}

func TestCompressorStreamsAreIndependent(t *testing.T) {
	c := NewCompressor()
	input := []byte("independent streams")

	out0, err := c.Compress(0, 6, input)
	require.NoError(t, err)
	out1, err := c.Compress(1, 6, input)
	require.NoError(t, err)

	// Both are first-use on their own stream, so both decode standalone to
	// the same plaintext even though each carries its own zlib header.
	r0, err := zlib.NewReader(bytes.NewReader(out0))
	require.NoError(t, err)
	got0, err := io.ReadAll(r0)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF) // sync-flushed, not closed
	assert.Equal(t, input, got0)

	r1, err := zlib.NewReader(bytes.NewReader(out1))
	require.NoError(t, err)
	got1, err := io.ReadAll(r1)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF) // sync-flushed, not closed
	assert.Equal(t, input, got1)
}

func TestCompressorReinitOnLevelChange(t *testing.T) {
	c := NewCompressor()
	input := []byte("level change forces a fresh stream")

	_, err := c.Compress(2, 1, input)
	require.NoError(t, err)
	require.True(t, c.streams[2].init)
	assert.Equal(t, 1, c.streams[2].level)

	_, err = c.Compress(2, 9, input)
	require.NoError(t, err)
	assert.Equal(t, 9, c.streams[2].level)
}

func TestCompressorReset(t *testing.T) {
	c := NewCompressor()
	_, err := c.Compress(3, 5, []byte("data"))
	require.NoError(t, err)
	require.True(t, c.streams[3].init)

	c.Reset(3)
	assert.False(t, c.streams[3].init)
}

func TestCompressorInvalidStreamID(t *testing.T) {
	c := NewCompressor()
	assert.Panics(t, func() {
		_, _ = c.Compress(4, 5, []byte("x"))
	})
	assert.Panics(t, func() {
		_, _ = c.Compress(-1, 5, []byte("x"))
	})
}

func TestClamp09(t *testing.T) {
	assert.Equal(t, 0, clamp09(-5))
	assert.Equal(t, 9, clamp09(20))
	assert.Equal(t, 4, clamp09(4))
}
