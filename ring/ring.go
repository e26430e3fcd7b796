// Package ring implements arithmetic in Z_q[X]/(X^N - 1) for 61-bit
// NTT-friendly primes q: scalar Montgomery and Barrett reduction
// kernels, number-theoretic transforms with lazy reduction, polynomial
// operations and generation of NTT-friendly primes and their primitive
// roots.
package ring

import "github.com/arxislabs/nucleus/utils/sampling"

// SampleUniform fills p with coefficients drawn uniformly in [0, q)
// from the given PRNG, by rejection on the bit-masked candidate.
func (s *SubRing) SampleUniform(prng sampling.PRNG, p Poly) error {

	buf := make([]byte, 8)

	for i := range p.Coeffs {
		for {
			if _, err := prng.Read(buf); err != nil {
				return err
			}
			c := uint64(buf[0]) | uint64(buf[1])<<8 | uint64(buf[2])<<16 | uint64(buf[3])<<24 |
				uint64(buf[4])<<32 | uint64(buf[5])<<40 | uint64(buf[6])<<48 | uint64(buf[7])<<56
			if c &= s.Mask; c < s.Modulus {
				p.Coeffs[i] = c
				break
			}
		}
	}

	return nil
}
