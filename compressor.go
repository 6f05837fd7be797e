package rfbenc

import (
	"bytes"
	"compress/zlib"
	"sync"

	"github.com/golang/glog"
)

// NumStreams is the number of independent zlib streams a Compressor
// multiplexes, hard-coded per RFC 6143 §7.7.7's four-stream Tight discipline:
// 0 is full-colour, 1 is mono, 2 is indexed, 3 is reserved.
const NumStreams = 4

type zlibStream struct {
	w     *zlib.Writer
	buf   *bytes.Buffer
	level int
	init  bool
}

// Compressor owns the four persistent zlib compression streams shared by
// Zlib, ZlibHex, ZRLE, ZYWRLE, and Tight across every rectangle of a single
// VNC connection. Grounded on bigangryrobot-avacadovnc's encoding_tight.go
// zlibs [4]io.ReadCloser lazy-init/reset dance, mirrored here on the write
// (compress) side.
//
// A Compressor must be created once per connection and used by a single
// goroutine at a time; distinct Compressors are fully independent.
type Compressor struct {
	mu      sync.Mutex
	streams [NumStreams]zlibStream
}

// NewCompressor returns a Compressor with all streams uninitialised.
func NewCompressor() *Compressor {
	return &Compressor{}
}

// Compress runs input through the deflate stream at index id, (re)creating
// it if this is the first use or if level differs from the stream's
// current level, then flushes with a zlib sync flush so the output is
// self-delimiting while the dictionary survives for the next call.
func (c *Compressor) Compress(id int, level int, input []byte) ([]byte, error) {
	if id < 0 || id >= NumStreams {
		panic("rfbenc: stream id out of range")
	}
	level = clamp09(level)

	c.mu.Lock()
	defer c.mu.Unlock()

	s := &c.streams[id]
	if !s.init || s.level != level {
		if s.buf == nil {
			s.buf = &bytes.Buffer{}
		}
		s.buf.Reset()
		w, err := zlib.NewWriterLevel(s.buf, zlibLevel(level))
		if err != nil {
			return nil, err
		}
		s.w = w
		s.level = level
		s.init = true
		glog.V(2).Infof("rfbenc: compressor stream %d (re)initialised at level %d", id, level)
	} else {
		s.buf.Reset()
	}

	if _, err := s.w.Write(input); err != nil {
		s.init = false
		return nil, err
	}
	// Sync flush: byte-align the output with an empty stored block without
	// ending the stream, preserving the dictionary (RFC 1950 + 1951).
	if err := s.w.Flush(); err != nil {
		s.init = false
		return nil, err
	}

	out := make([]byte, s.buf.Len())
	copy(out, s.buf.Bytes())
	return out, nil
}

// Reset discards stream id's state; the next Compress call on it starts a
// fresh dictionary. Used when a caller observes a CompressorError and must
// recover, per the stream-reset discipline of RFC 6143 §7.7.7.
func (c *Compressor) Reset(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.streams[id] = zlibStream{}
}

func zlibLevel(level int) int {
	// RFB compression levels map directly onto zlib levels 0-9.
	if level < zlib.NoCompression {
		return zlib.NoCompression
	}
	if level > zlib.BestCompression {
		return zlib.BestCompression
	}
	return level
}
