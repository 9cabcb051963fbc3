package section

import "github.com/arloliu/tszchunk/format"

const (
	// Bit masks for the Options field
	ReservedMask    = 0x0001 // Mask for reserved bit (bit 0), must be zero
	EndiannessMask  = 0x0002 // Mask for endianness bit (bit 1), 0=little, 1=big
	MagicNumberMask = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic numbers (bits 4-15)
	MagicChunkV1Opt = 0xEC10 // MagicChunkV1Opt is the version 1 magic number for the chunk format.

	// Chunk encodings - using format package constants
	EncodingRaw     = uint8(format.TypeRaw)     // EncodingRaw represents verbatim sample pairs.
	EncodingGorilla = uint8(format.TypeGorilla) // EncodingGorilla represents Gorilla bit-packed samples.

	// Payload compression - using format package constants
	CompressionNone = uint8(format.CompressionNone) // CompressionNone represents no payload compression.
	CompressionZstd = uint8(format.CompressionZstd) // CompressionZstd represents Zstandard payload compression.
	CompressionS2   = uint8(format.CompressionS2)   // CompressionS2 represents S2 payload compression.
	CompressionLZ4  = uint8(format.CompressionLZ4)  // CompressionLZ4 represents LZ4 payload compression.
)

// offsets and section sizes in the serialized chunk
const (
	HeaderSize    = 80         // fixed header size in bytes
	ChecksumSize  = 8          // xxHash64 trailer appended after the payload
	PayloadOffset = HeaderSize // byte offset where the payload starts
)
