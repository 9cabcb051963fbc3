// Package section defines the fixed binary sections of a serialized chunk:
// the flag word, the 80-byte header, and the layout constants shared by the
// chunk marshaling code.
//
// A serialized chunk is laid out as:
//
//	[header 80B][payload PayloadSize bytes][xxHash64 checksum 8B]
//
// The header stores the chunk capacity, sample count, the verbatim first
// sample, the bit length of the payload, and the rolling codec state, so a
// chunk can be restored for further appends as well as for reads.
package section
