package simd

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arxislabs/nucleus/utils/sampling"
)

// Lengths around the unrolling width, including short tails.
var testLengths = []int{0, 1, 2, 3, 7, 8, 9, 15, 16, 17, 64, 100, 1024}

func randSlice(tb testing.TB, prng sampling.PRNG, n int) []uint64 {
	b := make([]byte, 8*n)
	_, err := prng.Read(b)
	require.NoError(tb, err)
	out := make([]uint64, n)
	for i := range out {
		for j := 0; j < 8; j++ {
			out[i] |= uint64(b[8*i+j]) << (8 * j)
		}
	}
	return out
}

func TestDetect(t *testing.T) {
	l := DetectedLevel()
	require.GreaterOrEqual(t, l, LevelScalar)
	require.LessOrEqual(t, l, LevelAVX512)
	require.Contains(t, []int{1, 2, 4, 8}, l.Lanes())
	require.NotEmpty(t, l.String())

	// Detection is cached: repeated queries agree.
	require.Equal(t, l, DetectedLevel())
}

// TestKernelsMatchScalar cross-validates the dispatched kernels against
// the scalar fallback on identical inputs.
func TestKernelsMatchScalar(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG([]byte("simd-test-vectors"))
	require.NoError(t, err)

	kernels := []struct {
		name       string
		dispatched func(out, a, b []uint64)
		scalar     func(out, a, b []uint64)
	}{
		{"Xor", Xor, xorVecScalar},
		{"And", And, andVecScalar},
		{"Or", Or, orVecScalar},
		{"AddLanes", AddLanes, addLanesScalar},
		{"SubLanes", SubLanes, subLanesScalar},
	}

	for _, k := range kernels {
		t.Run(k.name, func(t *testing.T) {
			for _, n := range testLengths {
				t.Run(fmt.Sprintf("len=%d", n), func(t *testing.T) {
					a := randSlice(t, prng, n)
					b := randSlice(t, prng, n)

					got := make([]uint64, n)
					want := make([]uint64, n)

					k.dispatched(got, a, b)
					k.scalar(want, a, b)

					require.Equal(t, want, got)
				})
			}
		})
	}
}

func TestForceScalar(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG([]byte("simd-force-scalar"))
	require.NoError(t, err)

	a := randSlice(t, prng, 33)
	b := randSlice(t, prng, 33)

	wide := make([]uint64, 33)
	Xor(wide, a, b)

	ForceScalar(true)
	defer ForceScalar(false)

	scalar := make([]uint64, 33)
	Xor(scalar, a, b)

	require.Equal(t, wide, scalar)
}

func TestWidePathsBitIdentical(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG([]byte("simd-wide-paths"))
	require.NoError(t, err)

	for _, n := range testLengths {
		a := randSlice(t, prng, n)
		b := randSlice(t, prng, n)

		for _, pair := range []struct {
			wide, scalar func(out, a, b []uint64)
		}{
			{xorVecWide, xorVecScalar},
			{andVecWide, andVecScalar},
			{orVecWide, orVecScalar},
			{addLanesWide, addLanesScalar},
			{subLanesWide, subLanesScalar},
		} {
			got := make([]uint64, n)
			want := make([]uint64, n)
			pair.wide(got, a, b)
			pair.scalar(want, a, b)
			require.Equal(t, want, got)
		}
	}
}
