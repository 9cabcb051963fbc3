// Package chunk implements the fixed-capacity time-series chunk codecs.
//
// A chunk stores (timestamp, value) samples with non-decreasing uint64
// timestamps and float64 values, appended in order and replayed in order.
// Two encodings are provided:
//
//   - GorillaChunk: the Facebook Gorilla §4.1 technique. Timestamps are
//     delta-of-delta encoded with a variable-length prefix code, values are
//     XOR encoded against the previous value with leading/trailing zero
//     windows. Samples are packed into a bit stream of 64-bit bins.
//   - RawChunk: verbatim (uint64, float64) pairs through an endian engine.
//     Larger, but supports random access.
//
// Appending to a full chunk returns false with no error and leaves the
// chunk state untouched; the caller seals the chunk and starts a new one.
// Iteration is strictly sequential from sample 0 and never mutates the
// chunk, so a sealed chunk may be read by any number of iterators
// concurrently. Appends require exclusive access.
//
// Marshal serializes a chunk as a fixed header (see the section package),
// an optionally compressed payload, and an xxHash64 checksum trailer.
// Unmarshal restores either chunk kind from that form.
package chunk
