package ring

import (
	"math/bits"

	"github.com/arxislabs/nucleus/utils/bignum"
)

// GenMRedConstant computes the constant q^-1 mod 2^64 required for MRed.
// q must be odd.
func GenMRedConstant(q uint64) (qInv uint64) {
	qInv = 1
	x := q
	for i := 0; i < 63; i++ {
		qInv *= x
		x *= x
	}
	return
}

// GenBRedConstant computes the constant floor(2^128 / q) required for BRed.
func GenBRedConstant(q uint64) (constant [2]uint64) {
	bigR := bignum.NewInt(1)
	bigR.Lsh(bigR, 128)
	bigR.Quo(bigR, bignum.NewInt(q))

	limbs := bignum.ToLimbs(bigR, 2)
	return [2]uint64{limbs[1], limbs[0]}
}

// MForm returns a*2^64 mod q.
func MForm(a, q uint64, bredconstant [2]uint64) (r uint64) {
	mhi, _ := bits.Mul64(a, bredconstant[1])
	r = -(a*bredconstant[0] + mhi) * q
	if r >= q {
		r -= q
	}
	return
}

// MFormLazy returns a*2^64 mod q in the range [0, 2q-1].
func MFormLazy(a, q uint64, bredconstant [2]uint64) (r uint64) {
	mhi, _ := bits.Mul64(a, bredconstant[1])
	r = -(a*bredconstant[0] + mhi) * q
	return
}

// IMForm returns a*(2^64)^-1 mod q.
func IMForm(a, q, mredconstant uint64) (r uint64) {
	r, _ = bits.Mul64(a*mredconstant, q)
	r = q - r
	if r >= q {
		r -= q
	}
	return
}

// MRed returns x*y*(2^64)^-1 mod q.
func MRed(x, y, q, mredconstant uint64) (r uint64) {
	mhi, mlo := bits.Mul64(x, y)
	H, _ := bits.Mul64(mlo*mredconstant, q)
	r = mhi - H + q
	if r >= q {
		r -= q
	}
	return
}

// MRedLazy returns x*y*(2^64)^-1 mod q in the range [0, 2q-1].
func MRedLazy(x, y, q, mredconstant uint64) (r uint64) {
	ahi, alo := bits.Mul64(x, y)
	H, _ := bits.Mul64(alo*mredconstant, q)
	r = ahi - H + q
	return
}

// BRed returns x*y mod q.
func BRed(x, y, q uint64, bredconstant [2]uint64) (r uint64) {

	var mhi, mlo, lhi, hhi, hlo, s0, carry uint64

	ahi, alo := bits.Mul64(x, y)

	// (alo*blo)>>64

	lhi, _ = bits.Mul64(alo, bredconstant[1])

	// ((ahi*blo + alo*bhi) + (alo*blo)>>64)>>64

	mhi, mlo = bits.Mul64(alo, bredconstant[0])

	s0, carry = bits.Add64(mlo, lhi, 0)

	s1 := mhi + carry

	hhi, hlo = bits.Mul64(ahi, bredconstant[1])

	_, carry = bits.Add64(hlo, s0, 0)

	lhi = hhi + carry

	// (ahi*bhi) + (((ahi*blo + alo*bhi) + (alo*blo)>>64)>>64)

	s0 = ahi*bredconstant[0] + s1 + lhi

	r = alo - s0*q

	if r >= q {
		r -= q
	}

	return
}

// BRedLazy returns x*y mod q in the range [0, 2q-1].
func BRedLazy(x, y, q uint64, bredconstant [2]uint64) (r uint64) {

	var mhi, mlo, lhi, hhi, hlo, s0, carry uint64

	ahi, alo := bits.Mul64(x, y)

	lhi, _ = bits.Mul64(alo, bredconstant[1])

	mhi, mlo = bits.Mul64(alo, bredconstant[0])

	s0, carry = bits.Add64(mlo, lhi, 0)

	s1 := mhi + carry

	hhi, hlo = bits.Mul64(ahi, bredconstant[1])

	_, carry = bits.Add64(hlo, s0, 0)

	lhi = hhi + carry

	s0 = ahi*bredconstant[0] + s1 + lhi

	r = alo - s0*q

	return
}

// BRedAdd returns a mod q for any 64-bit a.
func BRedAdd(a, q uint64, bredconstant [2]uint64) (r uint64) {
	s0, _ := bits.Mul64(a, bredconstant[0])
	r = a - s0*q
	if r >= q {
		r -= q
	}
	return
}

// BRedAddLazy returns a mod q in the range [0, 2q-1].
func BRedAddLazy(a, q uint64, bredconstant [2]uint64) uint64 {
	s0, _ := bits.Mul64(a, bredconstant[0])
	return a - s0*q
}

// CRed returns a mod q, for a in the range [0, 2q-1].
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}
