package compress

// ZstdCompressor provides Zstandard compression for sealed chunk payloads.
//
// Zstd trades compression speed for ratio, which fits chunks that are sealed
// once and then read many times: cold storage, long retention windows, and
// network transfer of archived series.
//
// The implementation is selected at build time: with cgo enabled the
// gozstd bindings are used, otherwise the pure-Go klauspost/compress/zstd
// implementation. Both produce interoperable Zstandard frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
