package mod

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arxislabs/nucleus/nat"
	"github.com/arxislabs/nucleus/utils/sampling"
)

// Moduli of several widths: a 64-bit prime, a 256-bit prime, and the
// 2048-bit RFC 3526 group 14 prime.
var testModuliHex = []string{
	"0xFFFFFFFFFFFFFFC5",
	"0xFFFFFFFF00000001000000000000000000000000FFFFFFFFFFFFFFFFFFFFFFFF",
	"0xFFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74" +
		"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437" +
		"4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED" +
		"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05" +
		"98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB" +
		"9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B" +
		"E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718" +
		"3995497CEA956AE515D2261898FA051015728E5A8AACAA68FFFFFFFFFFFFFFFF",
}

func testModuli(tb testing.TB) []*Modulus {
	moduli := make([]*Modulus, len(testModuliHex))
	for i, h := range testModuliHex {
		n, err := nat.NewFromHex(h)
		require.NoError(tb, err)
		m, err := NewModulus(n)
		require.NoError(tb, err)
		moduli[i] = m
	}
	return moduli
}

func testPRNG(tb testing.TB) sampling.PRNG {
	prng, err := sampling.NewKeyedPRNG([]byte("mod-test-vectors"))
	require.NoError(tb, err)
	return prng
}

// iters scales a randomized-test iteration count down under -short.
func iters(full int) int {
	if testing.Short() {
		return full / 8
	}
	return full
}

// randResidue returns a uniform value below the modulus.
func randResidue(tb testing.TB, prng sampling.PRNG, m *Modulus) *nat.Nat {
	b := make([]byte, 8*m.Limbs())
	x := nat.New(m.Limbs())
	for {
		_, err := prng.Read(b)
		require.NoError(tb, err)
		require.NoError(tb, x.SetBytes(b))
		if c, err := x.Cmp(m.N()); err == nil && c < 0 {
			return x
		}
	}
}

func requireBigEqual(tb testing.TB, want, got *big.Int) {
	require.Zero(tb, want.Cmp(got), "want %s, got %s", want.Text(16), got.Text(16))
}

func TestNewModulus(t *testing.T) {

	t.Run("RejectsEven", func(t *testing.T) {
		_, err := NewModulus(nat.NewFromUint64(1, 100))
		require.ErrorIs(t, err, ErrInvalidModulus)
	})

	t.Run("RejectsZero", func(t *testing.T) {
		_, err := NewModulus(nat.New(2))
		require.ErrorIs(t, err, ErrInvalidModulus)
	})

	t.Run("M0Inv", func(t *testing.T) {
		for _, m := range testModuli(t) {
			// m0inv * n[0] = -1 mod 2^64
			require.Equal(t, uint64(0), m.M0Inv()*m.N().Words()[0]+1)
		}
	})
}

func TestMontgomery(t *testing.T) {

	prng := testPRNG(t)

	for _, m := range testModuli(t) {
		t.Run(fmt.Sprintf("bits=%d", m.BitLen()), func(t *testing.T) {

			nBig := m.Big()

			t.Run("RoundTrip", func(t *testing.T) {
				for i := 0; i < iters(128); i++ {
					x := randResidue(t, prng, m)
					z := nat.New(m.Limbs())
					require.NoError(t, m.ToMontgomery(z, x))
					require.NoError(t, m.FromMontgomery(z, z))
					require.True(t, x.Equal(z))
				}
			})

			t.Run("MulMatchesBigInt", func(t *testing.T) {
				for i := 0; i < iters(128); i++ {
					x := randResidue(t, prng, m)
					y := randResidue(t, prng, m)

					want := new(big.Int).Mul(x.Big(), y.Big())
					want.Mod(want, nBig)

					// In-domain multiply preserves the isomorphism.
					xm, ym, zm := nat.New(m.Limbs()), nat.New(m.Limbs()), nat.New(m.Limbs())
					require.NoError(t, m.ToMontgomery(xm, x))
					require.NoError(t, m.ToMontgomery(ym, y))
					require.NoError(t, m.MontgomeryMul(zm, xm, ym))
					require.NoError(t, m.FromMontgomery(zm, zm))
					requireBigEqual(t, want, zm.Big())

					z := nat.New(m.Limbs())
					require.NoError(t, m.Mul(z, x, y))
					requireBigEqual(t, want, z.Big())
				}
			})
		})
	}
}

func TestMontgomeryScenario(t *testing.T) {

	// N = 97, a = 45, b = 76: the full Montgomery round trip must agree
	// with the plain modular product (45*76) mod 97.
	m, err := NewModulus(nat.NewFromUint64(1, 97))
	require.NoError(t, err)

	a := nat.NewFromUint64(1, 45)
	b := nat.NewFromUint64(1, 76)

	z := nat.New(1)
	require.NoError(t, m.Mul(z, a, b))

	want := new(big.Int).Mod(big.NewInt(45*76), big.NewInt(97))
	requireBigEqual(t, want, z.Big())
}

func TestBarrett(t *testing.T) {

	prng := testPRNG(t)

	for _, m := range testModuli(t) {
		t.Run(fmt.Sprintf("bits=%d", m.BitLen()), func(t *testing.T) {

			nBig := m.Big()
			k := m.Limbs()

			reduce := func(x *nat.Nat) *nat.Nat {
				z := nat.New(k)
				require.NoError(t, m.BarrettReduce(z, x))
				return z
			}

			t.Run("Random", func(t *testing.T) {
				for i := 0; i < iters(128); i++ {
					a := randResidue(t, prng, m)
					b := randResidue(t, prng, m)
					x := nat.New(2 * k)
					require.NoError(t, x.Mul(a, b))

					requireBigEqual(t, new(big.Int).Mod(x.Big(), nBig), reduce(x).Big())
				}
			})

			t.Run("Boundaries", func(t *testing.T) {
				// 0, N-1 and N^2-1 are the edges of the valid input range.
				requireBigEqual(t, new(big.Int), reduce(nat.New(2*k)).Big())

				nm1 := new(big.Int).Sub(nBig, big.NewInt(1))
				x := nat.New(2 * k)
				require.NoError(t, x.SetBig(nm1))
				requireBigEqual(t, nm1, reduce(x).Big())

				n2m1 := new(big.Int).Mul(nBig, nBig)
				n2m1.Sub(n2m1, big.NewInt(1))
				require.NoError(t, x.SetBig(n2m1))
				requireBigEqual(t, new(big.Int).Mod(n2m1, nBig), reduce(x).Big())

				// (N-1)^2 is the largest product of two residues.
				sq := new(big.Int).Mul(nm1, nm1)
				require.NoError(t, x.SetBig(sq))
				requireBigEqual(t, new(big.Int).Mod(sq, nBig), reduce(x).Big())
			})

			t.Run("InputWidth", func(t *testing.T) {
				err := m.BarrettReduce(nat.New(k), nat.New(k))
				require.ErrorIs(t, err, nat.ErrLengthMismatch)
			})
		})
	}
}

func TestAddSub(t *testing.T) {

	prng := testPRNG(t)

	for _, m := range testModuli(t) {
		t.Run(fmt.Sprintf("bits=%d", m.BitLen()), func(t *testing.T) {

			nBig := m.Big()

			for i := 0; i < iters(128); i++ {
				x := randResidue(t, prng, m)
				y := randResidue(t, prng, m)

				z := nat.New(m.Limbs())
				require.NoError(t, m.Add(z, x, y))
				want := new(big.Int).Add(x.Big(), y.Big())
				requireBigEqual(t, want.Mod(want, nBig), z.Big())

				require.NoError(t, m.Sub(z, x, y))
				want = new(big.Int).Sub(x.Big(), y.Big())
				requireBigEqual(t, want.Mod(want, nBig), z.Big())
			}
		})
	}
}

func TestExp(t *testing.T) {

	prng := testPRNG(t)

	for _, m := range testModuli(t) {
		t.Run(fmt.Sprintf("bits=%d", m.BitLen()), func(t *testing.T) {

			nBig := m.Big()

			for i := 0; i < iters(8); i++ {
				x := randResidue(t, prng, m)
				e := randResidue(t, prng, m)

				z := nat.New(m.Limbs())
				require.NoError(t, m.Exp(z, x, e))
				requireBigEqual(t, new(big.Int).Exp(x.Big(), e.Big(), nBig), z.Big())
			}

			// Edge exponents.
			x := randResidue(t, prng, m)
			z := nat.New(m.Limbs())

			require.NoError(t, m.Exp(z, x, nat.New(m.Limbs())))
			requireBigEqual(t, big.NewInt(1), z.Big())

			require.NoError(t, m.Exp(z, x, nat.NewFromUint64(m.Limbs(), 1)))
			require.True(t, z.Equal(x))

			// The all-windows-set exponent N-1.
			nm1 := nat.New(m.Limbs())
			require.NoError(t, nm1.SetBig(new(big.Int).Sub(nBig, big.NewInt(1))))
			require.NoError(t, m.Exp(z, x, nm1))
			requireBigEqual(t, new(big.Int).Exp(x.Big(), nm1.Big(), nBig), z.Big())
		})
	}
}

func TestInverse(t *testing.T) {

	prng := testPRNG(t)

	for _, m := range testModuli(t) {
		t.Run(fmt.Sprintf("bits=%d", m.BitLen()), func(t *testing.T) {

			one := big.NewInt(1)
			nBig := m.Big()

			for i := 0; i < iters(8); i++ {
				x := randResidue(t, prng, m)
				if x.IsZero() {
					continue
				}

				z := nat.New(m.Limbs())
				require.NoError(t, m.Inverse(z, x))
				prod := new(big.Int).Mul(x.Big(), z.Big())
				requireBigEqual(t, one, prod.Mod(prod, nBig))

				require.NoError(t, m.InverseVarTime(z, x))
				prod.Mul(x.Big(), z.Big())
				requireBigEqual(t, one, prod.Mod(prod, nBig))
			}

			require.ErrorIs(t, m.Inverse(nat.New(m.Limbs()), nat.New(m.Limbs())), ErrNotInvertible)
		})
	}
}
