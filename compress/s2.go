package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/s2"
)

// S2Codec handles s2 framed archives (snappy stream compatible).
type S2Codec struct{}

var _ Codec = (*S2Codec)(nil)

// NewS2Codec creates a new s2 stream codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Compress wraps data in an s2 stream with the snappy-compatible stream
// identifier, so Sniff can recognize the frame.
func (c S2Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w := s2.NewWriter(&buf, s2.WriterSnappyCompat())
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress unwraps an s2 or snappy stream.
func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r := s2.NewReader(bytes.NewReader(data))

	return io.ReadAll(r)
}
