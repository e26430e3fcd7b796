// Package bignum provides helpers for arbitrary-precision arithmetic
// built on math/big, used for precomputed constants and as a reference
// implementation in cross-validation tests.
package bignum

import (
	"fmt"
	"math/big"
)

// NewInt allocates a new *big.Int.
// Accepted types are: string, uint, uint64, int64, int, *big.Int.
func NewInt(x interface{}) (y *big.Int) {

	y = new(big.Int)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case string:
		y.SetString(x, 0)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case int64:
		y.SetInt64(x)
	case int:
		y.SetInt64(int64(x))
	case *big.Int:
		y.Set(x)
	default:
		panic(fmt.Sprintf("cannot NewInt: accepted types are string, uint, uint64, int, int64, *big.Int, but is %T", x))
	}

	return
}

// FromLimbs returns the *big.Int represented by the little-endian
// 64-bit limb slice.
func FromLimbs(limbs []uint64) (y *big.Int) {
	y = new(big.Int)
	tmp := new(big.Int)
	for i := len(limbs) - 1; i >= 0; i-- {
		y.Lsh(y, 64)
		y.Add(y, tmp.SetUint64(limbs[i]))
	}
	return
}

// ToLimbs decomposes x into exactly n little-endian 64-bit limbs.
// x must be non-negative and fit in n limbs.
func ToLimbs(x *big.Int, n int) (limbs []uint64) {

	if x.Sign() < 0 {
		panic("cannot ToLimbs: x must be non-negative")
	}

	if x.BitLen() > 64*n {
		panic(fmt.Sprintf("cannot ToLimbs: x has %d bits but %d limbs were requested", x.BitLen(), n))
	}

	limbs = make([]uint64, n)
	tmp := new(big.Int).Set(x)
	mask := new(big.Int).SetUint64(0xFFFFFFFFFFFFFFFF)
	word := new(big.Int)
	for i := 0; i < n; i++ {
		limbs[i] = word.And(tmp, mask).Uint64()
		tmp.Rsh(tmp, 64)
	}
	return
}
