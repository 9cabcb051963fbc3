package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 digest of the given payload bytes.
//
// It is appended to every serialized chunk and verified on load to detect
// corruption of the stored payload.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
