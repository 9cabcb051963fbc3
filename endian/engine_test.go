package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	result := CheckEndianness()

	// Verify the result matches the actual system endianness
	var testValue uint16 = 0x0102
	testBytes := (*[2]byte)(unsafe.Pointer(&testValue))

	switch testBytes[0] {
	case 0x01:
		require.Equal(t, binary.BigEndian, result, "CheckEndianness() should return BigEndian")
	case 0x02:
		require.Equal(t, binary.LittleEndian, result, "CheckEndianness() should return LittleEndian")
	default:
		require.Failf(t, "Unexpected byte value", "got: %v", testBytes[0])
	}
}

func TestCheckEndiannessConsistency(t *testing.T) {
	first := CheckEndianness()
	for i := range 100 {
		result := CheckEndianness()
		if result != first {
			t.Errorf("CheckEndianness() returned inconsistent results: first=%v, iteration %d=%v", first, i, result)
		}
	}
}

func TestIsNativeHelpers(t *testing.T) {
	require.Equal(t, CheckEndianness() == binary.LittleEndian, IsNativeLittleEndian())
	require.Equal(t, CheckEndianness() == binary.BigEndian, IsNativeBigEndian())
	require.NotEqual(t, IsNativeLittleEndian(), IsNativeBigEndian())
}

func TestGetEngines(t *testing.T) {
	require.Equal(t, EndianEngine(binary.LittleEndian), GetLittleEndianEngine())
	require.Equal(t, EndianEngine(binary.BigEndian), GetBigEndianEngine())
}

func TestCompareNativeEndian(t *testing.T) {
	native := CheckEndianness()

	if native == binary.LittleEndian {
		require.True(t, CompareNativeEndian(GetLittleEndianEngine()))
		require.False(t, CompareNativeEndian(GetBigEndianEngine()))
	} else {
		require.True(t, CompareNativeEndian(GetBigEndianEngine()))
		require.False(t, CompareNativeEndian(GetLittleEndianEngine()))
	}
}

func TestEngine_RoundTrip(t *testing.T) {
	const bin = uint64(0xDEADBEEFCAFEF00D)

	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		buf := engine.AppendUint64(nil, bin)
		require.Len(t, buf, 8)
		require.Equal(t, bin, engine.Uint64(buf))
	}
}
