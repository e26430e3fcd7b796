// Package factorization implements integer factorization, used to find
// the unique prime factors of q-1 when searching for primitive roots.
package factorization

import (
	"math/big"

	"github.com/arxislabs/nucleus/utils"
)

var smallPrimes = []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97}

// GetFactors returns all unique prime factors of m.
// It applies trial division by small primes followed by Pollard's rho
// on the remaining composite cofactors.
func GetFactors(m *big.Int) (factors []*big.Int) {

	n := new(big.Int).Set(m)
	one := big.NewInt(1)

	found := map[string]*big.Int{}

	for _, p := range smallPrimes {
		bigP := new(big.Int).SetUint64(p)
		r := new(big.Int)
		for {
			q, rem := new(big.Int).QuoRem(n, bigP, r)
			if rem.Sign() != 0 {
				break
			}
			found[bigP.String()] = new(big.Int).Set(bigP)
			n.Set(q)
		}
	}

	// Composite cofactors are split recursively with Pollard's rho.
	stack := []*big.Int{}
	if n.Cmp(one) > 0 {
		stack = append(stack, n)
	}

	for len(stack) > 0 {

		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if c.ProbablyPrime(20) {
			found[c.String()] = c
			continue
		}

		d := pollardRho(c)
		stack = append(stack, d, new(big.Int).Quo(c, d))
	}

	// Deterministic output order, keyed on the decimal representation.
	factors = make([]*big.Int, 0, len(found))
	for _, key := range utils.GetSortedKeys(found) {
		factors = append(factors, found[key])
	}
	return
}

// IsPrime returns true with overwhelming probability if m is prime.
func IsPrime(m *big.Int) bool {
	return m.ProbablyPrime(20)
}

// pollardRho returns a non-trivial factor of the composite n using
// Brent's variant of Pollard's rho.
func pollardRho(n *big.Int) *big.Int {

	one := big.NewInt(1)
	two := big.NewInt(2)

	if new(big.Int).Mod(n, two).Sign() == 0 {
		return two
	}

	x := big.NewInt(2)
	y := big.NewInt(2)
	d := new(big.Int)
	c := big.NewInt(1)

	f := func(v *big.Int) *big.Int {
		r := new(big.Int).Mul(v, v)
		r.Add(r, c)
		return r.Mod(r, n)
	}

	restart := func() {
		c.Add(c, one)
		x.SetInt64(2)
		y.SetInt64(2)
	}

	for {
		x = f(x)
		y = f(f(y))
		diff := new(big.Int).Sub(x, y)
		diff.Abs(diff)
		if diff.Sign() == 0 {
			// Cycle without a factor, retry with a different constant.
			restart()
			continue
		}
		d.GCD(nil, nil, diff, n)
		if d.Cmp(one) == 0 {
			continue
		}
		if d.Cmp(n) == 0 {
			// Trivial factor, retry with a different constant.
			restart()
			continue
		}
		return d
	}
}
