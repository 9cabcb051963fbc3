package compress

import "fmt"

// NoOpCompressor provides a no-operation compressor that bypasses data without compression.
//
// This is the default for Gorilla chunk payloads: the bit packing already
// removed most of the redundancy, and skipping a general-purpose codec keeps
// Marshal/Unmarshal allocation-free on the payload path.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor that bypasses data.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress bypasses compression and returns the input data directly without copying.
//
// Note: The returned slice shares the same underlying memory as the input.
// Callers should not modify the input data after calling this method if they
// plan to use the returned slice.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress bypasses decompression and returns the input data directly
// without copying. A stored payload whose length disagrees with the size
// recorded in the chunk header is rejected.
//
// Note: The returned slice shares the same underlying memory as the input.
func (c NoOpCompressor) Decompress(data []byte, dstSize int) ([]byte, error) {
	if len(data) != dstSize {
		return nil, fmt.Errorf("noop decompress: payload is %d bytes, header says %d", len(data), dstSize)
	}

	return data, nil
}
