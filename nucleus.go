// Package nucleus provides the arithmetic foundation for the Arxis
// cryptographic stack: fixed-width multi-limb integers, constant-time
// primitives, Montgomery and Barrett modular reduction, and a Number
// Theoretic Transform engine for fast polynomial multiplication.
//
// The sub-packages are layered bottom-up:
//
//   - nat:  fixed-width unsigned integers built from 64-bit limbs
//   - ct:   constant-time comparison, selection and swapping
//   - mod:  modular contexts (Montgomery, Barrett, exponentiation, inverse)
//   - ring: NTT over 64-bit prime fields and polynomial arithmetic
//   - simd: runtime-dispatched batched word kernels with scalar fallback
//
// All contexts are immutable after construction and safe for concurrent
// read-only use. Arithmetic on validated contexts never fails; malformed
// parameters are rejected at construction time with typed errors.
package nucleus
