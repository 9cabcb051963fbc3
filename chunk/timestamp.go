package chunk

// Timestamps are delta-of-delta encoded with a variable-length prefix code:
// j leading 1-bits followed by a terminating 0-bit select the payload width
// dodWidths[j], and six consecutive 1-bits (no terminator) select a raw
// 64-bit escape. Payloads are the low bits of the two's complement
// delta-of-delta and are sign-extended on read.
//
//	prefix  width  signed range
//	0       0      {0}
//	10      5      [-16, 15]
//	110     8      [-128, 127]
//	1110    11     [-1024, 1023]
//	11110   15     [-16384, 16383]
//	111110  32     [-2^31, 2^31-1]
//	111111  64     full int64

// dodWidths lists the prefix-selected payload widths in selection order.
var dodWidths = [6]uint64{0, 5, 8, 11, 15, 32}

// dodEscapeBits is the number of consecutive 1-bits selecting the raw
// 64-bit escape.
const dodEscapeBits = 6

// dodFits reports whether dod is representable in a signed field of the
// given width.
func dodFits(dod int64, width uint64) bool {
	if width == 0 {
		return dod == 0
	}

	limit := int64(1) << (width - 1)

	return dod >= -limit && dod < limit
}

// dodBitLength returns the total encoded size of a delta-of-delta, prefix
// included, and the bucket chosen for it. The encoder always picks the
// shortest bucket whose range contains dod; bucket len(dodWidths) is the
// 64-bit escape.
func dodBitLength(dod int64) (uint64, int) {
	for j, w := range dodWidths {
		if dodFits(dod, w) {
			return uint64(j) + 1 + w, j
		}
	}

	return dodEscapeBits + 64, len(dodWidths)
}

// appendDOD emits the prefix code and payload for dod at idx and returns
// the advanced cursor. The bucket must come from dodBitLength for the same
// dod; capacity has already been checked by the caller.
func (bs bitstream) appendDOD(idx uint64, dod int64, bucket int) uint64 {
	if bucket == len(dodWidths) {
		bs.appendBits(idx, (1<<dodEscapeBits)-1, dodEscapeBits)
		idx += dodEscapeBits
		bs.appendBits(idx, uint64(dod), 64)

		return idx + 64
	}

	// bucket 1-bits then the terminating 0-bit, emitted LSB first
	bs.appendBits(idx, (1<<uint64(bucket))-1, uint64(bucket)+1)
	idx += uint64(bucket) + 1

	if w := dodWidths[bucket]; w > 0 {
		bs.appendBits(idx, uint64(dod), w)
		idx += w
	}

	return idx
}

// readDOD scans the prefix at idx, reads the payload and sign-extends it.
// It returns the decoded delta-of-delta and the advanced cursor.
func (bs bitstream) readDOD(idx uint64) (int64, uint64) {
	ones := 0
	for ones < dodEscapeBits && bs.biton(idx) {
		ones++
		idx++
	}

	if ones == dodEscapeBits {
		v := bs.readBits(idx, 64)
		return int64(v), idx + 64
	}

	idx++ // consume the terminating 0-bit

	w := dodWidths[ones]
	if w == 0 {
		return 0, idx
	}

	v := bs.readBits(idx, w)
	dod := int64(v)
	if v&(1<<(w-1)) != 0 {
		dod -= int64(1) << w
	}

	return dod, idx + w
}
