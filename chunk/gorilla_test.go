package chunk

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/tszchunk/errs"
)

func requireSamples(t *testing.T, c *GorillaChunk, want []Sample) {
	t.Helper()

	got := c.Samples()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].Ts, got[i].Ts, "sample %d timestamp", i)
		require.Equal(t, math.Float64bits(want[i].Val), math.Float64bits(got[i].Val), "sample %d value bits", i)
	}
}

func TestGorillaChunk_New(t *testing.T) {
	c, err := NewGorilla(128)
	require.NoError(t, err)
	require.Equal(t, uint64(128), c.Size())
	require.Equal(t, uint64(0), c.NumSamples())
	require.Equal(t, uint64(0), c.BitsUsed())
}

func TestGorillaChunk_NewRoundsDownToBins(t *testing.T) {
	c, err := NewGorilla(129)
	require.NoError(t, err)
	require.Equal(t, uint64(128), c.Size())
}

func TestGorillaChunk_NewRejectsTinySize(t *testing.T) {
	_, err := NewGorilla(7)
	require.ErrorIs(t, err, errs.ErrInvalidChunkSize)
}

func TestGorillaChunk_SingleSample(t *testing.T) {
	c, err := NewGorilla(128)
	require.NoError(t, err)

	ok, err := c.Append(1000, 3.14)
	require.NoError(t, err)
	require.True(t, ok)

	// The first sample lives in the chunk fields, not the bit stream.
	require.Equal(t, uint64(1), c.NumSamples())
	require.Equal(t, uint64(0), c.BitsUsed())

	it := c.Iterator()
	s, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, uint64(1000), s.Ts)
	require.Equal(t, 3.14, s.Val)

	_, ok = it.Next()
	require.False(t, ok)
}

func TestGorillaChunk_ConstantSeries(t *testing.T) {
	c, err := NewGorilla(128)
	require.NoError(t, err)

	samples := []Sample{{1000, 5.0}, {1010, 5.0}, {1020, 5.0}}
	n, err := c.AppendSlice(samples)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	// Sample 1 encodes delta-of-delta 10 (2-bit prefix + 5-bit payload)
	// plus one XOR-zero bit; sample 2 encodes delta-of-delta 0 plus one
	// XOR-zero bit.
	require.Equal(t, uint64(8+2), c.BitsUsed())

	requireSamples(t, c, samples)
}

func TestGorillaChunk_RegularInterval(t *testing.T) {
	c, err := NewGorilla(128)
	require.NoError(t, err)

	samples := []Sample{{0, 1.0}, {1, 1.0}, {3, 1.0}}
	n, err := c.AppendSlice(samples)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	// Deltas 1 and 2, delta-of-deltas 1 and 1: each costs the 2-bit prefix
	// plus 5 payload bits plus the XOR-zero bit.
	require.Equal(t, uint64(16), c.BitsUsed())

	requireSamples(t, c, samples)
}

func TestGorillaChunk_FillsToExactBoundary(t *testing.T) {
	c, err := NewGorilla(64)
	require.NoError(t, err)

	appended := uint64(0)
	for i := uint64(0); ; i++ {
		ok, err := c.Append(i, 0.0)
		require.NoError(t, err)
		if !ok {
			break
		}
		appended++
	}

	// Sample 0 costs nothing, sample 1 costs 8 bits (delta-of-delta 1),
	// every later sample costs 2 bits; 8 + 252*2 fills the 512-bit stream.
	require.Equal(t, uint64(254), appended)
	require.Equal(t, appended, c.NumSamples())
	require.Equal(t, uint64(512), c.BitsUsed())

	// The chunk stays full and untouched on further appends.
	ok, err := c.Append(10_000, 0.0)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, appended, c.NumSamples())
	require.Equal(t, uint64(512), c.BitsUsed())

	got := c.Samples()
	require.Len(t, got, int(appended))
	for i, s := range got {
		require.Equal(t, uint64(i), s.Ts)
		require.Equal(t, 0.0, s.Val)
	}
}

func TestGorillaChunk_RejectedAppendRollsBackState(t *testing.T) {
	c, err := NewGorilla(64)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	ts := uint64(1_700_000_000)
	for {
		snapshot := *c
		snapshotBins := append(bitstream(nil), c.bins...)

		ts += uint64(rng.Intn(100))
		ok, err := c.Append(ts, rng.NormFloat64()*1000)
		require.NoError(t, err)
		if ok {
			continue
		}

		// END must leave every field and every stream bit untouched.
		require.Equal(t, snapshot.num, c.num)
		require.Equal(t, snapshot.idx, c.idx)
		require.Equal(t, snapshot.prevTS, c.prevTS)
		require.Equal(t, snapshot.prevDelta, c.prevDelta)
		require.Equal(t, snapshot.prevVal, c.prevVal)
		require.Equal(t, snapshot.prevLeading, c.prevLeading)
		require.Equal(t, snapshot.prevTrailing, c.prevTrailing)
		require.Equal(t, snapshotBins, c.bins)

		return
	}
}

func TestGorillaChunk_NonMonotonicTimestamp(t *testing.T) {
	c, err := NewGorilla(128)
	require.NoError(t, err)

	_, err = c.Append(1000, 1.0)
	require.NoError(t, err)

	ok, err := c.Append(999, 2.0)
	require.ErrorIs(t, err, errs.ErrNonMonotonicTimestamp)
	require.False(t, ok)

	// The failed append changed nothing.
	require.Equal(t, uint64(1), c.NumSamples())
	require.Equal(t, uint64(0), c.BitsUsed())

	// An equal timestamp is fine.
	ok, err = c.Append(1000, 2.0)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGorillaChunk_ReuseBranchKeepsWindow(t *testing.T) {
	c, err := NewGorilla(256)
	require.NoError(t, err)

	samples := []Sample{{0, 1.0}, {1, 2.0}, {2, 3.0}, {3, 2.0}}
	n, err := c.AppendSlice(samples[:3])
	require.NoError(t, err)
	require.Equal(t, 3, n)

	leading, trailing := c.prevLeading, c.prevTrailing
	bitsBefore := c.BitsUsed()

	// 3.0 -> 2.0 XORs to the same single-bit block as 2.0 -> 3.0, so the
	// encoder must take the reuse branch and leave the window alone.
	ok, err := c.Append(3, 2.0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, leading, c.prevLeading)
	require.Equal(t, trailing, c.prevTrailing)

	// Timestamp delta-of-delta 0 (1 bit) + control bits 1,0 + 1-bit block.
	require.Equal(t, bitsBefore+4, c.BitsUsed())

	requireSamples(t, c, samples)
}

func TestGorillaChunk_DeltaBucketBoundaries(t *testing.T) {
	c, err := NewGorilla(256)
	require.NoError(t, err)

	// First stream sample carries delta-of-delta 2^31-1, the top of the
	// 32-bit bucket; the next one carries 2^31 and must take the 64-bit
	// escape.
	t0 := uint64(0)
	t1 := t0 + uint64(math.MaxInt32)             // delta 2^31-1
	t2 := t1 + uint64(math.MaxInt32) + (1 << 31) // delta grows by 2^31

	samples := []Sample{{t0, 1.0}, {t1, 1.0}, {t2, 1.0}}
	n, err := c.AppendSlice(samples)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	// 38+1 bits for the boundary bucket, 70+1 for the escape.
	require.Equal(t, uint64(39+71), c.BitsUsed())

	requireSamples(t, c, samples)
}

func TestGorillaChunk_SpecialValues(t *testing.T) {
	c, err := NewGorilla(512)
	require.NoError(t, err)

	quietNaN := math.Float64frombits(0x7FF8_0000_0000_0001)
	samples := []Sample{
		{0, 0.0},
		{1, math.Copysign(0, -1)},
		{2, 1.0},
		{3, -1.0},
		{4, math.MaxFloat64},
		{5, math.SmallestNonzeroFloat64},
		{6, math.Inf(1)},
		{7, math.Inf(-1)},
		{8, math.NaN()},
		{9, quietNaN},
		{10, quietNaN},
	}

	n, err := c.AppendSlice(samples)
	require.NoError(t, err)
	require.Equal(t, len(samples), n)

	requireSamples(t, c, samples)
}

func TestGorillaChunk_RandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for range 20 {
		c, err := NewGorilla(1024)
		require.NoError(t, err)

		var want []Sample
		ts := uint64(rng.Int63())
		for {
			ts += uint64(rng.Intn(1_000_000))
			var val float64
			switch rng.Intn(4) {
			case 0:
				val = rng.NormFloat64()
			case 1:
				val = float64(rng.Intn(100)) // repeated small integers
			case 2:
				val = math.Float64frombits(rng.Uint64()) // arbitrary bit patterns
			default:
				if len(want) > 0 {
					val = want[len(want)-1].Val // unchanged value
				}
			}

			ok, err := c.Append(ts, val)
			require.NoError(t, err)
			if !ok {
				break
			}
			want = append(want, Sample{Ts: ts, Val: val})
		}

		require.Equal(t, uint64(len(want)), c.NumSamples())
		requireSamples(t, c, want)
	}
}

func TestGorillaChunk_CursorMonotonic(t *testing.T) {
	c, err := NewGorilla(256)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))
	ts := uint64(0)
	prevIdx := c.BitsUsed()
	first := true
	for {
		ts += uint64(rng.Intn(1000))
		ok, err := c.Append(ts, rng.Float64())
		require.NoError(t, err)
		if !ok {
			break
		}

		if first {
			// Sample 0 writes no bits.
			require.Equal(t, uint64(0), c.BitsUsed())
			first = false
		} else {
			assert.Greater(t, c.BitsUsed(), prevIdx)
		}
		assert.LessOrEqual(t, c.BitsUsed(), c.Size()*8)
		prevIdx = c.BitsUsed()
	}
}

func TestGorillaChunk_CompressionRatio(t *testing.T) {
	c, err := NewGorilla(1024)
	require.NoError(t, err)

	require.Equal(t, 0.0, c.CompressionRatio())

	for i := range uint64(100) {
		ok, err := c.Append(i*1000, 21.5)
		require.NoError(t, err)
		require.True(t, ok)
	}

	// Constant series: 100 samples in 16 bytes + a handful of stream bytes.
	require.Greater(t, c.CompressionRatio(), 10.0)
}

func TestGorillaChunk_AppendSliceStopsAtCapacity(t *testing.T) {
	c, err := NewGorilla(8)
	require.NoError(t, err)

	samples := make([]Sample, 100)
	for i := range samples {
		samples[i] = Sample{Ts: uint64(i), Val: float64(i)}
	}

	n, err := c.AppendSlice(samples)
	require.NoError(t, err)
	require.Less(t, n, len(samples))
	require.Equal(t, uint64(n), c.NumSamples())
}
