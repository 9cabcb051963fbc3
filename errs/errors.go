// Package errs defines the sentinel errors shared across tszchunk packages.
//
// Chunk construction, append and unmarshal failures wrap one of these
// sentinels, so callers can match them with errors.Is regardless of the call
// site that produced them. Option validation, codec lookup and codec
// (de)compression errors are plain errors and wrap no sentinel.
package errs

import "errors"

var (
	// ErrInvalidChunkSize indicates a chunk capacity below the minimum for its
	// kind: one 64-bit bin for a Gorilla chunk, one 16-byte sample for a raw
	// chunk.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrNonMonotonicTimestamp indicates an appended timestamp older than the
	// previously appended one.
	ErrNonMonotonicTimestamp = errors.New("non-monotonic timestamp")

	// ErrInvalidHeaderSize indicates serialized chunk data shorter than the
	// fixed header.
	ErrInvalidHeaderSize = errors.New("invalid chunk header size")

	// ErrInvalidHeaderFlags indicates a bad magic number or unknown
	// encoding/compression flags in a serialized chunk header.
	ErrInvalidHeaderFlags = errors.New("invalid chunk header flags")

	// ErrInvalidPayloadSize indicates a serialized payload whose length does
	// not match the header.
	ErrInvalidPayloadSize = errors.New("invalid chunk payload size")

	// ErrChecksumMismatch indicates a serialized payload whose xxHash64
	// digest does not match the stored checksum.
	ErrChecksumMismatch = errors.New("chunk payload checksum mismatch")
)
