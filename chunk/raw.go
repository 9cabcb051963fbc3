package chunk

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/tszchunk/errs"
	"github.com/arloliu/tszchunk/format"
)

// rawSampleSize is the stored size of one verbatim (uint64, float64) pair.
const rawSampleSize = 16

// RawChunk is a fixed-capacity chunk holding verbatim samples.
//
// Each sample is stored as its 8-byte timestamp followed by the 8-byte raw
// bit pattern of its value, through the configured endian engine. Raw
// chunks trade space for random access and O(1) appends, and serve series
// whose values are too noisy for Gorilla XOR windows to pay off.
type RawChunk struct {
	data []byte
	size uint64 // capacity in bytes
	num  uint64 // samples stored

	cfg Config
}

// NewRaw creates a raw chunk with a capacity of size bytes. Sizes smaller
// than one 16-byte sample are rejected with errs.ErrInvalidChunkSize.
func NewRaw(size uint64, opts ...Option) (*RawChunk, error) {
	if size < rawSampleSize {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidChunkSize, size)
	}

	cfg := newConfig()
	if err := applyOptions(&cfg, opts); err != nil {
		return nil, err
	}

	return &RawChunk{
		data: make([]byte, 0, size),
		size: size,
		cfg:  cfg,
	}, nil
}

// Append adds one sample to the chunk. It returns (false, nil) when the
// chunk has no room for another 16-byte pair, and an error wrapping
// errs.ErrNonMonotonicTimestamp for a timestamp older than the last one.
func (c *RawChunk) Append(ts uint64, val float64) (bool, error) {
	if c.num > 0 {
		if last := c.lastTimestamp(); ts < last {
			return false, fmt.Errorf("%w: %d after %d", errs.ErrNonMonotonicTimestamp, ts, last)
		}
	}

	if uint64(len(c.data))+rawSampleSize > c.size {
		return false, nil
	}

	c.data = c.cfg.engine.AppendUint64(c.data, ts)
	c.data = c.cfg.engine.AppendUint64(c.data, math.Float64bits(val))
	c.num++

	return true, nil
}

// AppendSlice appends samples in order until the chunk is full or a sample
// is rejected, returning the number appended.
func (c *RawChunk) AppendSlice(samples []Sample) (int, error) {
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

func (c *RawChunk) lastTimestamp() uint64 {
	return c.cfg.engine.Uint64(c.data[(c.num-1)*rawSampleSize:])
}

// NumSamples returns the number of samples stored in the chunk.
func (c *RawChunk) NumSamples() uint64 {
	return c.num
}

// Size returns the chunk capacity in bytes.
func (c *RawChunk) Size() uint64 {
	return c.size
}

// Encoding identifies the chunk's sample encoding.
func (c *RawChunk) Encoding() format.EncodingType {
	return format.TypeRaw
}

// BytesUsed returns the bytes occupied by stored samples.
func (c *RawChunk) BytesUsed() uint64 {
	return uint64(len(c.data))
}

// At returns the sample at the given index. Raw chunks support random
// access; index must be below NumSamples.
func (c *RawChunk) At(index uint64) (Sample, bool) {
	if index >= c.num {
		return Sample{}, false
	}

	off := index * rawSampleSize

	return Sample{
		Ts:  c.cfg.engine.Uint64(c.data[off:]),
		Val: math.Float64frombits(c.cfg.engine.Uint64(c.data[off+8:])),
	}, true
}

// All returns a range iterator yielding every sample in insertion order.
func (c *RawChunk) All() iter.Seq2[uint64, float64] {
	return func(yield func(uint64, float64) bool) {
		for i := uint64(0); i < c.num; i++ {
			s, _ := c.At(i)
			if !yield(s.Ts, s.Val) {
				return
			}
		}
	}
}

// Samples decodes the whole chunk into a slice.
func (c *RawChunk) Samples() []Sample {
	out := make([]Sample, 0, c.num)
	for i := uint64(0); i < c.num; i++ {
		s, _ := c.At(i)
		out = append(out, s)
	}

	return out
}
