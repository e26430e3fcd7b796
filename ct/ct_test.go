package ct

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	allOnes  = uint64(math.MaxUint64)
	allZeros = uint64(0)
)

var boundaryValues = []uint64{0, 1, 2, 0x7FFFFFFFFFFFFFFF, 0x8000000000000000, math.MaxUint64 - 1, math.MaxUint64}

func TestMasks(t *testing.T) {

	t.Run("Eq", func(t *testing.T) {
		for _, a := range boundaryValues {
			require.Equal(t, allOnes, Eq(a, a))
			for _, b := range boundaryValues {
				if a != b {
					require.Equal(t, allZeros, Eq(a, b))
				}
			}
		}
	})

	t.Run("Neq", func(t *testing.T) {
		for _, a := range boundaryValues {
			require.Equal(t, allZeros, Neq(a, a))
			for _, b := range boundaryValues {
				if a != b {
					require.Equal(t, allOnes, Neq(a, b))
				}
			}
		}
	})

	t.Run("Lt", func(t *testing.T) {
		for _, a := range boundaryValues {
			for _, b := range boundaryValues {
				want := allZeros
				if a < b {
					want = allOnes
				}
				require.Equal(t, want, Lt(a, b), "Lt(%d, %d)", a, b)
			}
		}
	})

	t.Run("GtLeqGeq", func(t *testing.T) {
		for _, a := range boundaryValues {
			for _, b := range boundaryValues {
				require.Equal(t, Lt(b, a), Gt(a, b))
				require.Equal(t, ^Lt(b, a), Leq(a, b))
				require.Equal(t, ^Lt(a, b), Geq(a, b))
			}
		}
	})

	t.Run("IsZeroMask", func(t *testing.T) {
		require.Equal(t, allOnes, IsZeroMask(0))
		for _, a := range boundaryValues[1:] {
			require.Equal(t, allZeros, IsZeroMask(a))
			require.Equal(t, allOnes, IsNonzeroMask(a))
		}
	})
}

func TestSelectSwap(t *testing.T) {

	const a, b = uint64(0xDEADBEEF), uint64(0xCAFEBABE)

	t.Run("Select", func(t *testing.T) {
		require.Equal(t, a, Select(allOnes, a, b))
		require.Equal(t, b, Select(allZeros, a, b))
	})

	t.Run("Mov", func(t *testing.T) {
		require.Equal(t, b, Mov(allOnes, a, b))
		require.Equal(t, a, Mov(allZeros, a, b))
	})

	t.Run("Swap", func(t *testing.T) {
		x, y := Swap(allOnes, a, b)
		require.Equal(t, b, x)
		require.Equal(t, a, y)

		x, y = Swap(allZeros, a, b)
		require.Equal(t, a, x)
		require.Equal(t, b, y)
	})
}

func TestSlices(t *testing.T) {

	a := []uint64{1, 2, 3, 4}
	b := []uint64{1, 2, 3, 5}

	t.Run("EqSlice", func(t *testing.T) {
		require.Equal(t, allOnes, EqSlice(a, a))
		require.Equal(t, allZeros, EqSlice(a, b))
		require.Equal(t, allZeros, EqSlice(a, a[:3]))
	})

	t.Run("LtSlice", func(t *testing.T) {
		require.Equal(t, allOnes, LtSlice(a, b))
		require.Equal(t, allZeros, LtSlice(b, a))
		require.Equal(t, allZeros, LtSlice(a, a))

		// Differing only in the least significant limb.
		require.Equal(t, allOnes, LtSlice([]uint64{0, 7}, []uint64{1, 7}))
		// Decided by the most significant limb despite the lower ones.
		require.Equal(t, allOnes, LtSlice([]uint64{math.MaxUint64, 1}, []uint64{0, 2}))
	})

	t.Run("GeqSlice", func(t *testing.T) {
		require.Equal(t, allOnes, GeqSlice(a, a))
		require.Equal(t, allOnes, GeqSlice(b, a))
		require.Equal(t, allZeros, GeqSlice(a, b))
	})

	t.Run("SelectSlice", func(t *testing.T) {
		out := make([]uint64, 4)
		SelectSlice(allOnes, out, a, b)
		require.Equal(t, a, out)
		SelectSlice(allZeros, out, a, b)
		require.Equal(t, b, out)
	})

	t.Run("CopySlice", func(t *testing.T) {
		dst := []uint64{9, 9, 9, 9}
		CopySlice(allZeros, dst, a)
		require.Equal(t, []uint64{9, 9, 9, 9}, dst)
		CopySlice(allOnes, dst, a)
		require.Equal(t, a, dst)
	})

	t.Run("SwapSlice", func(t *testing.T) {
		x := []uint64{1, 2}
		y := []uint64{3, 4}
		SwapSlice(allZeros, x, y)
		require.Equal(t, []uint64{1, 2}, x)
		SwapSlice(allOnes, x, y)
		require.Equal(t, []uint64{3, 4}, x)
		require.Equal(t, []uint64{1, 2}, y)
	})
}

func TestBytesAndZero(t *testing.T) {

	t.Run("EqBytes", func(t *testing.T) {
		require.True(t, EqBytes([]byte{1, 2, 3}, []byte{1, 2, 3}))
		require.False(t, EqBytes([]byte{1, 2, 3}, []byte{1, 2, 4}))
		require.False(t, EqBytes([]byte{1, 2, 3}, []byte{1, 2}))
		require.True(t, EqBytes(nil, nil))
	})

	t.Run("Zero", func(t *testing.T) {
		p := []uint64{1, 2, 3}
		Zero(p)
		require.Equal(t, []uint64{0, 0, 0}, p)
	})

	t.Run("ZeroBytes", func(t *testing.T) {
		p := []byte{1, 2, 3}
		ZeroBytes(p)
		require.Equal(t, []byte{0, 0, 0}, p)
	})
}
