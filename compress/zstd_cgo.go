//go:build cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// Compress compresses the input data using Zstandard compression.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses Zstd-compressed data, reusing the header-derived
// payload size as the output buffer capacity.
func (c ZstdCompressor) Decompress(data []byte, dstSize int) ([]byte, error) {
	if len(data) == 0 && dstSize == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(make([]byte, 0, dstSize), data)
	if err != nil {
		return nil, err
	}
	if len(out) != dstSize {
		return nil, fmt.Errorf("zstd: decompressed %d bytes, header says %d", len(out), dstSize)
	}

	return out, nil
}
