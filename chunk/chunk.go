package chunk

import (
	"iter"

	"github.com/arloliu/tszchunk/format"
)

// Sample is one (timestamp, value) pair stored in a chunk.
type Sample struct {
	Ts  uint64
	Val float64
}

// Chunk is the common surface of the Gorilla and raw chunk kinds.
//
// A chunk is single-writer: Append requires exclusive access. Once sealed
// (no more appends), any number of goroutines may iterate it concurrently.
type Chunk interface {
	// Append adds one sample to the chunk.
	//
	// It returns (true, nil) on success and (false, nil) when the chunk has
	// no room for the sample; a failed append leaves the chunk exactly as it
	// was. A timestamp older than the previously appended one returns an
	// error wrapping errs.ErrNonMonotonicTimestamp.
	Append(ts uint64, val float64) (bool, error)

	// AppendSlice appends samples in order until the chunk is full or a
	// sample is rejected, returning the number appended.
	AppendSlice(samples []Sample) (int, error)

	// NumSamples returns the number of samples stored in the chunk.
	NumSamples() uint64

	// Size returns the chunk capacity in bytes.
	Size() uint64

	// Encoding identifies the chunk's sample encoding.
	Encoding() format.EncodingType

	// All returns an iterator yielding every sample in insertion order.
	All() iter.Seq2[uint64, float64]

	// Samples decodes the whole chunk into a slice.
	Samples() []Sample

	// Marshal serializes the chunk into its storage form: header, payload,
	// checksum trailer.
	Marshal() ([]byte, error)
}

var (
	_ Chunk = (*GorillaChunk)(nil)
	_ Chunk = (*RawChunk)(nil)
)
