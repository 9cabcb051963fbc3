package section

import (
	"unsafe"

	"github.com/arloliu/tszchunk/errs"
)

// ChunkHeader represents the fixed-size header section at the start of a
// serialized chunk.
//
// The header carries everything the decoder needs besides the payload bits:
// the chunk capacity, the sample count, the verbatim first sample, and the
// rolling codec state at seal time. A fresh iterator only needs the base
// fields; the prev* fields exist so an unsealed chunk can be restored and
// appended to after a round-trip through storage.
type ChunkHeader struct {
	// Size is the chunk capacity in bytes.
	Size uint64 // byte offset 4-11
	// NumSamples is the number of samples encoded in the chunk.
	NumSamples uint64 // byte offset 12-19
	// BaseTimestamp is the timestamp of sample 0, stored verbatim.
	BaseTimestamp uint64 // byte offset 20-27
	// BaseValueBits is the raw IEEE-754 bit pattern of sample 0's value.
	BaseValueBits uint64 // byte offset 28-35
	// Idx is the bit length of the encoded payload.
	Idx uint64 // byte offset 36-43
	// PrevTimestamp is the timestamp of the last appended sample.
	PrevTimestamp uint64 // byte offset 44-51
	// PrevTimestampDelta is the delta of the last two appended timestamps.
	PrevTimestampDelta int64 // byte offset 52-59
	// PrevValueBits is the raw bit pattern of the last appended value.
	PrevValueBits uint64 // byte offset 60-67
	// PrevLeading is the leading zero count of the last emitted XOR window.
	PrevLeading uint8 // byte offset 68
	// PrevTrailing is the trailing zero count of the last emitted XOR window.
	PrevTrailing uint8 // byte offset 69
	// PayloadSize is the byte length of the stored (possibly compressed) payload.
	PayloadSize uint64 // byte offset 72-79

	// Flag is a packed field for options, magic number, encoding and compression.
	Flag ChunkFlag // byte offset 0-3
}

// NewChunkHeader creates a new ChunkHeader for a chunk of the given capacity.
// The remaining fields are filled in when the chunk is marshaled.
func NewChunkHeader(size uint64) *ChunkHeader {
	return &ChunkHeader{
		Size: size,
		Flag: NewChunkFlag(),
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 80 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is too short, or flag validation errors
func (h *ChunkHeader) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Parse the flag first to determine endianness (the Options field itself
	// is always little-endian)
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.EncodingType = data[2]
	h.Flag.CompressionType = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()

	h.Size = engine.Uint64(data[4:12])
	h.NumSamples = engine.Uint64(data[12:20])
	h.BaseTimestamp = engine.Uint64(data[20:28])
	h.BaseValueBits = engine.Uint64(data[28:36])
	h.Idx = engine.Uint64(data[36:44])
	h.PrevTimestamp = engine.Uint64(data[44:52])

	// Interpret the stored two's complement bits as a signed delta
	prevDeltaUint := engine.Uint64(data[52:60])
	h.PrevTimestampDelta = *(*int64)(unsafe.Pointer(&prevDeltaUint))

	h.PrevValueBits = engine.Uint64(data[60:68])
	h.PrevLeading = data[68]
	h.PrevTrailing = data[69]
	h.PayloadSize = engine.Uint64(data[72:80])

	return nil
}

// Bytes serializes the ChunkHeader into a byte slice.
func (h *ChunkHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.EncodingType
	b[3] = h.Flag.CompressionType

	engine.PutUint64(b[4:12], h.Size)
	engine.PutUint64(b[12:20], h.NumSamples)
	engine.PutUint64(b[20:28], h.BaseTimestamp)
	engine.PutUint64(b[28:36], h.BaseValueBits)
	engine.PutUint64(b[36:44], h.Idx)
	engine.PutUint64(b[44:52], h.PrevTimestamp)
	// Bitwise conversion; the delta is stored as-is in two's complement
	engine.PutUint64(b[52:60], *(*uint64)(unsafe.Pointer(&h.PrevTimestampDelta)))
	engine.PutUint64(b[60:68], h.PrevValueBits)
	b[68] = h.PrevLeading
	b[69] = h.PrevTrailing
	// bytes 70-71 reserved, left zero
	engine.PutUint64(b[72:80], h.PayloadSize)

	return b
}

// ParseChunkHeader parses a ChunkHeader from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 80 bytes)
//
// Returns:
//   - ChunkHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseChunkHeader(data []byte) (ChunkHeader, error) {
	if len(data) < HeaderSize {
		return ChunkHeader{}, errs.ErrInvalidHeaderSize
	}

	h := ChunkHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return ChunkHeader{}, err
	}

	return h, nil
}
