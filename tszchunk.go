// Package tszchunk provides a fixed-capacity, bit-packed chunk codec for
// time-series samples, following the Facebook Gorilla compression scheme.
//
// A chunk appends (timestamp, value) samples, with non-decreasing uint64
// timestamps and float64 values, into a fixed-capacity byte buffer and
// replays them in insertion order. Appending to a full chunk reports end-of-chunk without
// touching the chunk, so the caller can seal it and retry the same sample
// on a fresh one.
//
// # Core Features
//
//   - Gorilla delta-of-delta timestamps and XOR-compressed values
//   - Raw chunks storing verbatim pairs, with random access
//   - Transactional appends: a rejected sample leaves no trace
//   - Bit-exact round-trips, including NaN payloads and signed zero
//   - Self-contained serialization with optional compression (Zstd, S2,
//     LZ4) and an xxHash64 payload checksum
//
// # Basic Usage
//
// Creating a chunk and appending samples:
//
//	import "github.com/arloliu/tszchunk"
//
//	c, _ := tszchunk.NewGorillaChunk(4096)
//	for i, v := range values {
//	    ok, err := c.Append(start+uint64(i)*1000, v)
//	    if err != nil {
//	        return err // timestamp moved backward
//	    }
//	    if !ok {
//	        break // chunk full: seal it, start the next one
//	    }
//	}
//
// Reading samples back:
//
//	for ts, val := range c.All() {
//	    fmt.Printf("ts=%d, val=%f\n", ts, val)
//	}
//
// Persisting and restoring:
//
//	data, _ := c.Marshal()
//	restored, _ := tszchunk.Unmarshal(data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the chunk
// package. For fine-grained control over serialization options, use the
// chunk package directly.
package tszchunk

import (
	"fmt"

	"github.com/arloliu/tszchunk/chunk"
	"github.com/arloliu/tszchunk/format"
)

// Sample is one (timestamp, value) pair stored in a chunk.
type Sample = chunk.Sample

// Chunk is the common surface of the Gorilla and raw chunk kinds.
type Chunk = chunk.Chunk

// NewGorillaChunk creates a Gorilla-compressed chunk with a capacity of
// size bytes, rounded down to a whole number of 64-bit bins.
func NewGorillaChunk(size uint64, opts ...chunk.Option) (*chunk.GorillaChunk, error) {
	return chunk.NewGorilla(size, opts...)
}

// NewRawChunk creates a chunk storing verbatim sample pairs with a capacity
// of size bytes.
func NewRawChunk(size uint64, opts ...chunk.Option) (*chunk.RawChunk, error) {
	return chunk.NewRaw(size, opts...)
}

// NewChunk creates a chunk of the requested encoding.
func NewChunk(encoding format.EncodingType, size uint64, opts ...chunk.Option) (Chunk, error) {
	switch encoding {
	case format.TypeRaw:
		return chunk.NewRaw(size, opts...)
	case format.TypeGorilla:
		return chunk.NewGorilla(size, opts...)
	default:
		return nil, fmt.Errorf("invalid chunk encoding: %v", encoding)
	}
}

// Unmarshal restores a chunk of either kind from its serialized form.
func Unmarshal(data []byte) (Chunk, error) {
	return chunk.Unmarshal(data)
}
