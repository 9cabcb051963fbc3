// Package compress provides the compression codecs applied to serialized
// chunk payloads.
//
// Four codecs are available, selected per chunk through the header flag:
//   - None: pass-through, the default for Gorilla payloads
//   - Zstd: best ratio, for cold storage (cgo gozstd or pure-Go fallback)
//   - S2: fast Snappy-compatible compression
//   - LZ4: fast block compression with pooled compressor state
//
// The codec only sees opaque payload bytes; the bit layout inside the
// payload is defined by the chunk package and is unaffected by the choice
// of codec. Decompression takes the exact payload size derived from the
// chunk header (bit length for Gorilla chunks, sample count for raw ones),
// so every codec allocates its output buffer once and size disagreements
// surface as corruption errors instead of silent truncation.
package compress
