package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data using S2 compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses the input data using S2 decompression into a
// buffer sized from the chunk header.
func (c S2Compressor) Decompress(data []byte, dstSize int) ([]byte, error) {
	if len(data) == 0 && dstSize == 0 {
		return nil, nil
	}

	out, err := s2.Decode(make([]byte, dstSize), data)
	if err != nil {
		return nil, err
	}
	if len(out) != dstSize {
		return nil, fmt.Errorf("s2: decompressed %d bytes, header says %d", len(out), dstSize)
	}

	return out, nil
}
