package compress

import (
	"fmt"

	"github.com/arloliu/tszchunk/format"
)

// Compressor compresses serialized chunk payloads.
//
// A payload is the bit-packed (or raw) sample region of a single sealed
// chunk, typically a few hundred bytes to a few KiB. Gorilla payloads are
// already dense, so the codecs here mostly earn their keep on raw chunk
// payloads and on long runs of identical samples.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is owned by the caller; it is newly allocated by
	//     every codec except NoOpCompressor, which returns the input slice
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores chunk payloads previously compressed with the
// matching Compressor.
//
// Unlike general-purpose streams, a chunk payload's decompressed size is
// always known before decoding starts: the chunk header carries the payload
// bit length (Gorilla) or the sample count (raw). Decompress takes that
// size so implementations allocate the exact output buffer once instead of
// guessing.
//
// Thread Safety: Decompressor implementations must be safe for concurrent use
// or document their thread safety requirements clearly.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original
	// result. dstSize is the exact decompressed payload length in bytes, as
	// recorded in the chunk header.
	//
	// Error conditions:
	//   - Returns error if input data is corrupted or invalid
	//   - Returns error if data was compressed with incompatible algorithm
	//   - Returns error if the payload does not fit dstSize
	//
	// Memory management:
	//   - Returned slice is owned by the caller; it is newly allocated by
	//     every codec except NoOpCompressor, which returns the input slice
	//   - Input slice is not modified
	Decompress(data []byte, dstSize int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Compressor instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
