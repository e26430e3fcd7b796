package ring

import (
	"math/bits"

	"github.com/arxislabs/nucleus/utils"
)

// The transform cores below use the lazy butterfly arithmetic of Longa
// and Naehrig ("Speeding up the Number Theoretic Transform for Faster
// Ideal Lattice-Based Cryptography"): intermediate values are kept in
// [0, 4q) and only brought back below q at the very end, which removes
// one reduction per butterfly. This is why the modulus is capped at
// MaxModulusBits bits.

// butterfly computes X, Y = U + V*Psi, U - V*Psi mod q with lazy reduction.
func butterfly(U, V, Psi, twoQ, fourQ, Q, MRedConstant uint64) (uint64, uint64) {
	if U >= fourQ {
		U -= fourQ
	}
	V = MRedLazy(V, Psi, Q, MRedConstant)
	return U + V, U + twoQ - V
}

// bitReversePermute applies the bit-reversal permutation of p1 on p2,
// in place when the slices alias.
func bitReversePermute(p1, p2 []uint64, N int) {
	logN := bits.Len64(uint64(N)) - 1
	if &p1[0] != &p2[0] {
		copy(p2, p1)
	}
	for i := 0; i < N; i++ {
		if j := int(utils.BitReverse64(uint64(i), logN)); i < j {
			p2[i], p2[j] = p2[j], p2[i]
		}
	}
}

// nttCoreLazy computes the iterative radix-2 Cooley-Tukey transform of
// p1 on p2: bit-reversal permutation followed by log N butterfly
// stages, where the stage of length l consumes the twiddles w^(j*N/l).
// The inverse transform is this same core run on the w^-1 table, up to
// the final scaling by N^-1. Inputs must be in [0, 2q); outputs are
// left in [0, 6q).
func nttCoreLazy(p1, p2 []uint64, N int, Q, MRedConstant uint64, roots []uint64) {

	bitReversePermute(p1, p2, N)

	twoQ, fourQ := Q<<1, Q<<2

	for l := 2; l <= N; l <<= 1 {
		half := l >> 1
		step := N / l
		for start := 0; start < N; start += l {
			for j := 0; j < half; j++ {
				p2[start+j], p2[start+j+half] = butterfly(p2[start+j], p2[start+j+half], roots[j*step], twoQ, fourQ, Q, MRedConstant)
			}
		}
	}
}

// NTT computes the forward transform of p1 on p2, with outputs fully
// reduced to [0, q). Both slices must have length N and inputs must be
// in [0, q).
func (s *SubRing) NTT(p1, p2 []uint64) {
	s.NTTLazy(p1, p2)
	reducevec(p2, p2, s.Modulus, s.BRedConstant)
}

// NTTLazy computes the forward transform of p1 on p2, with outputs in
// [0, 6q).
func (s *SubRing) NTTLazy(p1, p2 []uint64) {
	nttCoreLazy(p1, p2, s.N, s.Modulus, s.MRedConstant, s.RootsForward)
}

// INTT computes the inverse transform of p1 on p2, scaling by N^-1,
// with outputs fully reduced to [0, q). Inputs must be in [0, q).
func (s *SubRing) INTT(p1, p2 []uint64) {
	nttCoreLazy(p1, p2, s.N, s.Modulus, s.MRedConstant, s.RootsBackward)
	mulscalarmontgomeryvec(p2, s.NInv, p2, s.Modulus, s.MRedConstant)
}

// INTTLazy computes the inverse transform of p1 on p2 with the N^-1
// scaling folded into a lazy multiplication, outputs in [0, 2q).
func (s *SubRing) INTTLazy(p1, p2 []uint64) {
	nttCoreLazy(p1, p2, s.N, s.Modulus, s.MRedConstant, s.RootsBackward)
	mulscalarmontgomerylazyvec(p2, s.NInv, p2, s.Modulus, s.MRedConstant)
}
