package chunk

import (
	"iter"
	"math"
)

// Iterator replays a Gorilla chunk's samples in insertion order.
//
// The iterator holds its own read cursor and rolling codec state mirroring
// the encoder's, and never mutates the chunk, so multiple iterators may
// read the same sealed chunk concurrently. Interleaving Next with Append on
// the same chunk requires external synchronization.
//
// Decoding trusts the stream: the only end condition is the sample count.
// A malformed stream yields unspecified samples.
type Iterator struct {
	c     *GorillaChunk
	idx   uint64 // read cursor in bits
	count uint64 // samples emitted so far

	prevTS    uint64
	prevDelta int64
	prevVal   uint64
	win       xorWindow
}

// Iterator creates an iterator positioned at sample 0.
func (c *GorillaChunk) Iterator() *Iterator {
	return &Iterator{c: c}
}

// Next returns the next sample, or (Sample{}, false) when the chunk is
// exhausted.
func (it *Iterator) Next() (Sample, bool) {
	c := it.c
	if it.count >= c.num {
		return Sample{}, false
	}

	if it.count == 0 {
		it.prevTS = c.baseTS
		it.prevDelta = 0
		it.prevVal = math.Float64bits(c.baseVal)
		it.count = 1

		return Sample{Ts: c.baseTS, Val: c.baseVal}, true
	}

	dod, idx := c.bins.readDOD(it.idx)
	it.prevDelta += dod
	it.prevTS += uint64(it.prevDelta)

	valBits, idx := c.bins.readXOR(idx, it.prevVal, &it.win)
	it.idx = idx
	it.prevVal = valBits
	it.count++

	return Sample{Ts: it.prevTS, Val: math.Float64frombits(valBits)}, true
}

// All returns a range iterator yielding every sample in insertion order.
func (c *GorillaChunk) All() iter.Seq2[uint64, float64] {
	return func(yield func(uint64, float64) bool) {
		it := c.Iterator()
		for s, ok := it.Next(); ok; s, ok = it.Next() {
			if !yield(s.Ts, s.Val) {
				return
			}
		}
	}
}

// Samples decodes the whole chunk into a slice.
func (c *GorillaChunk) Samples() []Sample {
	out := make([]Sample, 0, c.num)
	it := c.Iterator()
	for s, ok := it.Next(); ok; s, ok = it.Next() {
		out = append(out, s)
	}

	return out
}
