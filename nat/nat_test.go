package nat

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arxislabs/nucleus/utils/buffer"
	"github.com/arxislabs/nucleus/utils/sampling"
)

var testLimbCounts = []int{1, 2, 3, 4, 8, 16, 24, 32}

func testPRNG(tb testing.TB) sampling.PRNG {
	prng, err := sampling.NewKeyedPRNG([]byte("nat-test-vectors"))
	require.NoError(tb, err)
	return prng
}

func randNat(tb testing.TB, prng sampling.PRNG, limbs int) *Nat {
	b := make([]byte, 8*limbs)
	_, err := prng.Read(b)
	require.NoError(tb, err)
	x := New(limbs)
	require.NoError(tb, x.SetBytes(b))
	return x
}

// widthModulus returns 2^(64*limbs), the wraparound modulus of a width.
func widthModulus(limbs int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(64*limbs))
}

func requireBigEqual(tb testing.TB, want, got *big.Int) {
	require.Zero(tb, want.Cmp(got), "want %s, got %s", want.Text(16), got.Text(16))
}

func TestConversions(t *testing.T) {

	t.Run("BytesRoundTrip", func(t *testing.T) {
		prng := testPRNG(t)
		for _, limbs := range testLimbCounts {
			x := randNat(t, prng, limbs)

			y := New(limbs)
			require.NoError(t, y.SetBytes(x.Bytes()))
			require.True(t, x.Equal(y))

			requireBigEqual(t, x.Big(), NewFromBytesLE(x.BytesLE()).Big())
		}
	})

	t.Run("SetBytesOverflow", func(t *testing.T) {
		x := New(1)
		require.NoError(t, x.SetBytes([]byte{0, 0, 1, 2, 3, 4, 5, 6, 7, 8}))
		require.ErrorIs(t, x.SetBytes([]byte{9, 0, 1, 2, 3, 4, 5, 6, 7, 8}), ErrOverflow)
	})

	t.Run("Hex", func(t *testing.T) {
		x, err := NewFromHex("0xDEADBEEF00112233445566778899AABB")
		require.NoError(t, err)
		require.Equal(t, 2, x.Limbs())
		require.Equal(t, "0xdeadbeef00112233445566778899aabb", x.String())

		_, err = NewFromHex("not hex")
		require.Error(t, err)
	})

	t.Run("Big", func(t *testing.T) {
		prng := testPRNG(t)
		x := randNat(t, prng, 4)
		y := New256()
		require.NoError(t, y.SetBig(x.Big()))
		require.True(t, x.Equal(y))

		require.ErrorIs(t, New(1).SetBig(widthModulus(1)), ErrOverflow)
	})

	t.Run("Uint64", func(t *testing.T) {
		x := NewFromUint64(4, 42)
		require.Equal(t, uint64(42), x.Uint64())
		require.Equal(t, int64(42), x.Big().Int64())
	})
}

func TestAddSub(t *testing.T) {

	prng := testPRNG(t)

	for _, limbs := range testLimbCounts {
		t.Run(fmt.Sprintf("limbs=%d", limbs), func(t *testing.T) {

			mod := widthModulus(limbs)

			for i := 0; i < 32; i++ {
				x := randNat(t, prng, limbs)
				y := randNat(t, prng, limbs)

				sum := new(big.Int).Add(x.Big(), y.Big())

				z := New(limbs)
				carry, err := z.Add(x, y)
				require.NoError(t, err)
				requireBigEqual(t, new(big.Int).Mod(sum, mod), z.Big())

				var wantCarry uint64
				if sum.Cmp(mod) >= 0 {
					wantCarry = 1
				}
				require.Equal(t, wantCarry, carry)

				// Subtraction undoes the addition, borrowing out the carry.
				w := New(limbs)
				borrow, err := w.Sub(z, y)
				require.NoError(t, err)
				require.True(t, w.Equal(x))
				require.Equal(t, carry, borrow)
			}
		})
	}

	t.Run("Checked", func(t *testing.T) {
		max := New(2)
		require.NoError(t, max.SetBig(new(big.Int).Sub(widthModulus(2), big.NewInt(1))))
		one := NewFromUint64(2, 1)

		z := New(2)
		require.ErrorIs(t, z.AddChecked(max, one), ErrOverflow)
		require.NoError(t, z.AddChecked(max, New(2)))

		require.ErrorIs(t, z.SubChecked(one, max), ErrOverflow)
		require.NoError(t, z.SubChecked(max, one))
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		z := New(2)
		_, err := z.Add(New(2), New(3))
		require.ErrorIs(t, err, ErrLengthMismatch)
		_, err = New(3).Sub(New(2), New(2))
		require.ErrorIs(t, err, ErrLengthMismatch)
	})
}

func TestMul(t *testing.T) {

	prng := testPRNG(t)

	for _, limbs := range testLimbCounts {
		t.Run(fmt.Sprintf("limbs=%d", limbs), func(t *testing.T) {

			for i := 0; i < 16; i++ {
				x := randNat(t, prng, limbs)
				y := randNat(t, prng, limbs)

				want := new(big.Int).Mul(x.Big(), y.Big())

				z := New(2 * limbs)
				require.NoError(t, z.Mul(x, y))
				requireBigEqual(t, want, z.Big())

				k := New(2 * limbs)
				require.NoError(t, k.MulKaratsuba(x, y))
				require.True(t, z.Equal(k))

				sq := New(2 * limbs)
				require.NoError(t, sq.Sqr(x))
				requireBigEqual(t, new(big.Int).Mul(x.Big(), x.Big()), sq.Big())
			}
		})
	}

	t.Run("MulWord", func(t *testing.T) {
		x := randNat(t, prng, 4)
		const w = uint64(0x123456789ABCDEF)

		z := New(4)
		carry, err := z.MulWord(x, w)
		require.NoError(t, err)

		want := new(big.Int).Mul(x.Big(), new(big.Int).SetUint64(w))
		got := new(big.Int).Add(z.Big(), new(big.Int).Lsh(new(big.Int).SetUint64(carry), 64*4))
		requireBigEqual(t, want, got)
	})

	t.Run("OutputWidth", func(t *testing.T) {
		x := New(4)
		require.ErrorIs(t, New(4).Mul(x, x), ErrLengthMismatch)
		require.ErrorIs(t, New(4).Sqr(x), ErrLengthMismatch)
	})

	t.Run("Aliasing", func(t *testing.T) {
		buf := make([]uint64, 8)
		z := &Nat{limbs: buf}
		x := &Nat{limbs: buf[:4]}
		require.Error(t, z.Mul(x, New(4)))
		require.Error(t, z.MulKaratsuba(New(4), x))
		require.Error(t, z.Sqr(x))
	})
}

func TestShifts(t *testing.T) {

	prng := testPRNG(t)
	mod := widthModulus(4)

	for _, k := range []int{0, 1, 13, 63, 64, 65, 130, 255, 256, 300} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			x := randNat(t, prng, 4)

			shl := New256()
			require.NoError(t, shl.Shl(x, k))
			requireBigEqual(t, new(big.Int).Mod(new(big.Int).Lsh(x.Big(), uint(k)), mod), shl.Big())

			shr := New256()
			require.NoError(t, shr.Shr(x, k))
			requireBigEqual(t, new(big.Int).Rsh(x.Big(), uint(k)), shr.Big())
		})
	}

	t.Run("Negative", func(t *testing.T) {
		x := New(2)
		require.Error(t, New(2).Shl(x, -1))
		require.Error(t, New(2).Shr(x, -1))
	})
}

func TestCmpAndBits(t *testing.T) {

	prng := testPRNG(t)

	t.Run("Cmp", func(t *testing.T) {
		for i := 0; i < 32; i++ {
			x := randNat(t, prng, 4)
			y := randNat(t, prng, 4)
			got, err := x.Cmp(y)
			require.NoError(t, err)
			require.Equal(t, x.Big().Cmp(y.Big()), got)
		}
		x := randNat(t, prng, 4)
		got, err := x.Cmp(x)
		require.NoError(t, err)
		require.Zero(t, got)
	})

	t.Run("BitLen", func(t *testing.T) {
		require.Equal(t, 0, New(4).BitLen())
		require.Equal(t, 256, New(4).LeadingZeros())
		for i := 0; i < 16; i++ {
			x := randNat(t, prng, 4)
			require.Equal(t, x.Big().BitLen(), x.BitLen())
		}
	})

	t.Run("Bit", func(t *testing.T) {
		x := NewFromUint64(2, 0b1011)
		require.Equal(t, uint64(1), x.Bit(0))
		require.Equal(t, uint64(0), x.Bit(2))
		require.Equal(t, uint64(1), x.Bit(3))
		require.Equal(t, uint64(0), x.Bit(128))
	})

	t.Run("Parity", func(t *testing.T) {
		require.True(t, NewFromUint64(2, 4).IsEven())
		require.False(t, NewFromUint64(2, 5).IsEven())
		require.True(t, New(2).IsZero())
		require.False(t, NewFromUint64(2, 1).IsZero())
	})
}

func TestBitwise(t *testing.T) {

	prng := testPRNG(t)
	x := randNat(t, prng, 9)
	y := randNat(t, prng, 9)

	z := New(9)
	require.NoError(t, z.Xor(x, y))
	requireBigEqual(t, new(big.Int).Xor(x.Big(), y.Big()), z.Big())

	require.NoError(t, z.And(x, y))
	requireBigEqual(t, new(big.Int).And(x.Big(), y.Big()), z.Big())

	require.NoError(t, z.Or(x, y))
	requireBigEqual(t, new(big.Int).Or(x.Big(), y.Big()), z.Big())
}

func TestSerialization(t *testing.T) {

	prng := testPRNG(t)
	x := randNat(t, prng, 8)

	buf := buffer.NewBufferSize(x.BinarySize())

	n, err := x.WriteTo(buf)
	require.NoError(t, err)
	require.Equal(t, int64(x.BinarySize()), n)

	y := New(8)
	n, err = y.ReadFrom(buf)
	require.NoError(t, err)
	require.Equal(t, int64(x.BinarySize()), n)

	require.True(t, x.Equal(y))
}

func TestZeroize(t *testing.T) {
	prng := testPRNG(t)
	x := randNat(t, prng, 4)
	x.Zeroize()
	require.True(t, x.IsZero())
}
