package chunk

import (
	"fmt"
	"math"

	"github.com/arloliu/tszchunk/errs"
	"github.com/arloliu/tszchunk/format"
)

// GorillaChunk is a fixed-capacity chunk holding Gorilla-compressed samples.
//
// Sample 0 is stored verbatim in the chunk fields; every later sample is
// appended to the bit stream as a delta-of-delta timestamp followed by an
// XOR-encoded value. The rolling codec state lives alongside the stream so
// each append is a pure extension of the previous one.
//
// Memory efficiency for typical series:
//   - Unchanged value at a regular interval: 2 bits per sample
//   - Slowly drifting values: 10-30 bits per sample
//   - Worst case (random doubles, irregular timestamps): up to 147 bits
type GorillaChunk struct {
	bins bitstream
	size uint64 // capacity in bytes
	num  uint64 // samples encoded
	idx  uint64 // write cursor in bits

	baseTS  uint64
	baseVal float64

	prevTS       uint64
	prevDelta    int64
	prevVal      uint64 // raw bit pattern of the last value
	prevLeading  uint8
	prevTrailing uint8

	cfg Config
}

// NewGorilla creates a Gorilla chunk with a capacity of size bytes.
//
// The capacity is rounded down to a whole number of 64-bit bins; sizes
// smaller than one bin are rejected with errs.ErrInvalidChunkSize. The
// backing buffer is zero-initialized, which appendBits relies on.
func NewGorilla(size uint64, opts ...Option) (*GorillaChunk, error) {
	if size < 8 {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidChunkSize, size)
	}
	size -= size % 8

	cfg := newConfig()
	if err := applyOptions(&cfg, opts); err != nil {
		return nil, err
	}

	return &GorillaChunk{
		bins: newBitstream(size),
		size: size,
		cfg:  cfg,
	}, nil
}

// Append adds one sample to the chunk.
//
// The first sample is stored verbatim in the chunk fields and costs no
// stream bits. Every later sample is checked for room before any bit is
// written: first the timestamp encoding plus one reserve bit (the minimum
// the value codec can emit), then the timestamp plus the exact value
// encoding. Either check failing returns (false, nil) with the chunk
// untouched, so a rejected append can be retried verbatim on a new chunk.
//
// A timestamp older than the previous one returns an error wrapping
// errs.ErrNonMonotonicTimestamp and appends nothing.
func (c *GorillaChunk) Append(ts uint64, val float64) (bool, error) {
	if c.num == 0 {
		c.baseTS = ts
		c.baseVal = val
		c.prevTS = ts
		c.prevDelta = 0
		c.prevVal = math.Float64bits(val)
		c.num = 1

		return true, nil
	}

	if ts < c.prevTS {
		return false, fmt.Errorf("%w: %d after %d", errs.ErrNonMonotonicTimestamp, ts, c.prevTS)
	}

	delta := int64(ts - c.prevTS)
	dod := delta - c.prevDelta
	dodBits, bucket := dodBitLength(dod)

	// Reserve one bit beyond the timestamp for the smallest possible value
	// encoding, so a chunk never ends on a timestamp without its value.
	if c.idx+dodBits+1 > c.bins.capBits() {
		return false, nil
	}

	valBits := math.Float64bits(val)
	xor := valBits ^ c.prevVal

	var plan xorPlan
	valueBits := uint64(1)
	if xor != 0 {
		plan = planXOR(xor, xorWindow{leading: c.prevLeading, trailing: c.prevTrailing})
		valueBits = plan.bits
	}
	if c.idx+dodBits+valueBits > c.bins.capBits() {
		return false, nil
	}

	c.idx = c.bins.appendDOD(c.idx, dod, bucket)

	if xor == 0 {
		c.bins.appendBits(c.idx, 0, 1)
		c.idx++
	} else {
		c.idx = c.bins.appendXOR(c.idx, xor, plan)
		if !plan.reuse {
			c.prevLeading = plan.leading
			c.prevTrailing = plan.trailing
		}
	}

	c.prevTS = ts
	c.prevDelta = delta
	c.prevVal = valBits
	c.num++

	return true, nil
}

// AppendSlice appends samples in order until the chunk is full or a sample
// is rejected. It returns the number of samples appended; the error is
// non-nil only for a precondition violation such as a non-monotonic
// timestamp.
func (c *GorillaChunk) AppendSlice(samples []Sample) (int, error) {
	for i, s := range samples {
		ok, err := c.Append(s.Ts, s.Val)
		if err != nil {
			return i, err
		}
		if !ok {
			return i, nil
		}
	}

	return len(samples), nil
}

// NumSamples returns the number of samples stored in the chunk.
func (c *GorillaChunk) NumSamples() uint64 {
	return c.num
}

// Size returns the chunk capacity in bytes.
func (c *GorillaChunk) Size() uint64 {
	return c.size
}

// Encoding identifies the chunk's sample encoding.
func (c *GorillaChunk) Encoding() format.EncodingType {
	return format.TypeGorilla
}

// BitsUsed returns the write cursor: the number of stream bits consumed.
// Sample 0 lives in the chunk fields and contributes no bits.
func (c *GorillaChunk) BitsUsed() uint64 {
	return c.idx
}

// BytesUsed returns the stream bytes touched by the cursor, rounded up.
func (c *GorillaChunk) BytesUsed() uint64 {
	return (c.idx + 7) / 8
}

// CompressionRatio returns the ratio of the samples' raw size (16 bytes
// each) to their encoded size, counting the out-of-stream base sample at
// its raw size. Returns 0 for an empty chunk.
func (c *GorillaChunk) CompressionRatio() float64 {
	if c.num == 0 {
		return 0
	}

	encoded := float64(rawSampleSize) + float64(c.BytesUsed())

	return float64(c.num*rawSampleSize) / encoded
}
