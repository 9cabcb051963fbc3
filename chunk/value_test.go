package chunk

import (
	"math"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanXOR_FirstWindowIsFresh(t *testing.T) {
	xor := math.Float64bits(1.0) ^ math.Float64bits(2.0)

	plan := planXOR(xor, xorWindow{})

	require.False(t, plan.reuse)
	require.Equal(t, uint8(bits.LeadingZeros64(xor)), plan.leading)
	require.Equal(t, uint8(bits.TrailingZeros64(xor)), plan.trailing)
	require.Equal(t, 64-uint64(plan.leading)-uint64(plan.trailing), plan.block)
	require.Equal(t, 2+5+6+plan.block, plan.bits)
}

func TestPlanXOR_ReusesNestedCheaperWindow(t *testing.T) {
	prev := xorWindow{leading: 10, trailing: 40} // block 14

	// Window (12, 42) nests inside (10, 40) and a fresh window would cost
	// 5+6+10 = 21 > 14 bits, so reuse wins.
	xor := uint64(0x3FF) << 42

	plan := planXOR(xor, prev)

	require.True(t, plan.reuse)
	require.Equal(t, prev.leading, plan.leading)
	require.Equal(t, prev.trailing, plan.trailing)
	require.Equal(t, uint64(14), plan.block)
	require.Equal(t, uint64(16), plan.bits)
}

func TestPlanXOR_FreshWhenWindowDoesNotNest(t *testing.T) {
	prev := xorWindow{leading: 10, trailing: 40}

	// Trailing zeros below the previous window force a fresh one.
	xor := uint64(0x3FF) << 30

	plan := planXOR(xor, prev)

	require.False(t, plan.reuse)
	require.Equal(t, uint8(24), plan.leading)
	require.Equal(t, uint8(30), plan.trailing)
}

func TestPlanXOR_FreshWhenReuseSavesNothing(t *testing.T) {
	// A wide previous window nests everything, but reuse only pays when the
	// fresh form would cost more than the previous block width.
	prev := xorWindow{leading: 0, trailing: 0} // block 64

	xor := uint64(1) << 32 // fresh cost 5+6+1 = 12 <= 64

	plan := planXOR(xor, prev)

	require.False(t, plan.reuse)
	require.Equal(t, uint64(1), plan.block)
}

func TestPlanXOR_ClampsLeadingTo31(t *testing.T) {
	// 40 leading zeros cannot be stored in the 5-bit field; the plan clamps
	// to 31 and widens the block instead.
	xor := uint64(1) << 23 // clz 40, ctz 23

	plan := planXOR(xor, xorWindow{leading: 63, trailing: 0})

	require.False(t, plan.reuse)
	require.Equal(t, uint8(maxLeading), plan.leading)
	require.Equal(t, uint8(23), plan.trailing)
	require.Equal(t, uint64(64-31-23), plan.block)
}

func TestXOR_RoundTripSequence(t *testing.T) {
	values := []float64{
		1.0, 2.0, 3.0, 2.0, 2.0, 2.5, -2.5,
		math.Inf(1), math.Inf(-1), math.NaN(),
		0.0, math.Copysign(0, -1), math.MaxFloat64, math.SmallestNonzeroFloat64,
	}

	bs := newBitstream(4096)
	idx := uint64(0)
	prev := math.Float64bits(values[0])
	win := xorWindow{}

	for _, v := range values[1:] {
		valBits := math.Float64bits(v)
		xor := valBits ^ prev
		if xor == 0 {
			bs.appendBits(idx, 0, 1)
			idx++
		} else {
			plan := planXOR(xor, win)
			idx = bs.appendXOR(idx, xor, plan)
			if !plan.reuse {
				win.leading = plan.leading
				win.trailing = plan.trailing
			}
		}
		prev = valBits
	}

	rIdx := uint64(0)
	rPrev := math.Float64bits(values[0])
	rWin := xorWindow{}
	for _, want := range values[1:] {
		rPrev, rIdx = bs.readXOR(rIdx, rPrev, &rWin)
		require.Equal(t, math.Float64bits(want), rPrev)
	}
	require.Equal(t, idx, rIdx)
	require.Equal(t, win, rWin)
}

func TestXOR_ZeroCostsOneBit(t *testing.T) {
	bs := newBitstream(64)

	bs.appendBits(0, 0, 1)
	prev := math.Float64bits(42.0)
	win := xorWindow{}

	got, idx := bs.readXOR(0, prev, &win)
	require.Equal(t, prev, got)
	require.Equal(t, uint64(1), idx)
}
