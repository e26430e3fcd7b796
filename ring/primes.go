package ring

import (
	"fmt"
	"math/bits"

	"github.com/arxislabs/nucleus/utils"
	"github.com/arxislabs/nucleus/utils/bignum"
)

// MaxModulusBits is the largest supported prime bit-size. The lazy
// butterfly arithmetic accumulates values up to 6q, which must fit in
// 64 bits.
const MaxModulusBits = 61

// IsPrime applies Baillie-PSW, which is deterministic for numbers below 2^64.
func IsPrime(x uint64) bool {
	return bignum.NewInt(x).ProbablyPrime(0)
}

// GenerateNTTPrimes generates the n largest primes p with
// bits.Len64(p) == logQ and p = 1 mod NthRoot, scanning downward from
// 2^logQ. Any prime above 2^logQ would carry one more bit, so the scan
// only descends.
func GenerateNTTPrimes(logQ, NthRoot, n int) (primes []uint64, err error) {

	if logQ < 2 || logQ > MaxModulusBits {
		return nil, fmt.Errorf("cannot GenerateNTTPrimes: logQ must be in [2, %d] but is %d", MaxModulusBits, logQ)
	}

	if NthRoot <= 0 || !utils.IsPowerOfTwo(uint64(NthRoot)) {
		return nil, fmt.Errorf("cannot GenerateNTTPrimes: NthRoot must be a positive power of two but is %d", NthRoot)
	}

	candidate := uint64(1)<<logQ + 1

	for {
		if candidate < uint64(NthRoot) {
			return nil, fmt.Errorf("cannot GenerateNTTPrimes: ran out of candidates with %d/%d primes found", len(primes), n)
		}
		candidate -= uint64(NthRoot)

		if bits.Len64(candidate) < logQ {
			return nil, fmt.Errorf("cannot GenerateNTTPrimes: ran out of candidates with %d/%d primes found", len(primes), n)
		}

		if IsPrime(candidate) {
			primes = append(primes, candidate)
			if len(primes) == n {
				return primes, nil
			}
		}
	}
}

// NextNTTPrime returns the smallest prime p > q with p = 1 mod NthRoot.
// q must itself satisfy q = 1 mod NthRoot.
func NextNTTPrime(q uint64, NthRoot int) (qNext uint64, err error) {

	qNext = q + uint64(NthRoot)

	for !IsPrime(qNext) {

		qNext += uint64(NthRoot)

		if bits.Len64(qNext) > MaxModulusBits {
			return 0, fmt.Errorf("cannot NextNTTPrime: next prime exceeds %d bits", MaxModulusBits)
		}
	}

	return qNext, nil
}

// PreviousNTTPrime returns the largest prime p < q with p = 1 mod NthRoot.
// q must itself satisfy q = 1 mod NthRoot.
func PreviousNTTPrime(q uint64, NthRoot int) (qPrev uint64, err error) {

	if q < uint64(NthRoot) {
		return 0, fmt.Errorf("cannot PreviousNTTPrime: candidate is smaller than NthRoot")
	}

	qPrev = q - uint64(NthRoot)

	for !IsPrime(qPrev) {

		if qPrev < uint64(NthRoot) {
			return 0, fmt.Errorf("cannot PreviousNTTPrime: candidate is smaller than NthRoot")
		}

		qPrev -= uint64(NthRoot)
	}

	return qPrev, nil
}
