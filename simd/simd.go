// Package simd provides batched kernels over slices of 64-bit words,
// dispatched once at startup according to the detected hardware vector
// width. The wide paths are loop-unrolled to the lane count the hardware
// can sustain; the scalar fallback is always available and always
// produces bit-identical results, so the dispatch is purely a
// performance decision.
package simd

import (
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Level describes the widest vector capability detected on the host.
type Level int

const (
	// LevelScalar processes one word per operation.
	LevelScalar Level = iota
	// LevelNEON processes 2 words per operation (128-bit vectors).
	LevelNEON
	// LevelAVX2 processes 4 words per operation (256-bit vectors).
	LevelAVX2
	// LevelAVX512 processes 8 words per operation (512-bit vectors).
	LevelAVX512
)

// Lanes returns the number of 64-bit lanes per operation at this level.
func (l Level) Lanes() int {
	switch l {
	case LevelNEON:
		return 2
	case LevelAVX2:
		return 4
	case LevelAVX512:
		return 8
	default:
		return 1
	}
}

func (l Level) String() string {
	switch l {
	case LevelNEON:
		return "neon"
	case LevelAVX2:
		return "avx2"
	case LevelAVX512:
		return "avx512"
	default:
		return "scalar"
	}
}

var (
	detectOnce    sync.Once
	detectedLevel Level

	xorKernel, andKernel, orKernel, addKernel, subKernel func(out, a, b []uint64)
)

// detect queries the hardware capability once. Detection is a pure
// hardware query, so concurrent first callers converge to the same value.
func detect() {
	detectOnce.Do(func() {
		switch {
		case cpuid.CPU.Supports(cpuid.AVX512F):
			detectedLevel = LevelAVX512
		case cpuid.CPU.Supports(cpuid.AVX2):
			detectedLevel = LevelAVX2
		case cpuid.CPU.Supports(cpuid.ASIMD):
			detectedLevel = LevelNEON
		default:
			detectedLevel = LevelScalar
		}
		bind(detectedLevel)
	})
}

// bind resolves the kernel table for the given level. Called once from
// detect, and from tests that force the scalar path.
func bind(l Level) {
	if l == LevelScalar {
		xorKernel = xorVecScalar
		andKernel = andVecScalar
		orKernel = orVecScalar
		addKernel = addLanesScalar
		subKernel = subLanesScalar
		return
	}
	xorKernel = xorVecWide
	andKernel = andVecWide
	orKernel = orVecWide
	addKernel = addLanesWide
	subKernel = subLanesWide
}

// DetectedLevel returns the cached hardware capability level.
func DetectedLevel() Level {
	detect()
	return detectedLevel
}

// ForceScalar rebinds all kernels to the scalar fallback (force=true) or
// back to the detected level (force=false). Intended for tests that
// cross-validate the wide paths against the fallback.
func ForceScalar(force bool) {
	detect()
	if force {
		bind(LevelScalar)
	} else {
		bind(detectedLevel)
	}
}

// Xor writes a[i] ^ b[i] on out. All slices must have the same length.
func Xor(out, a, b []uint64) {
	detect()
	xorKernel(out, a, b)
}

// And writes a[i] & b[i] on out. All slices must have the same length.
func And(out, a, b []uint64) {
	detect()
	andKernel(out, a, b)
}

// Or writes a[i] | b[i] on out. All slices must have the same length.
func Or(out, a, b []uint64) {
	detect()
	orKernel(out, a, b)
}

// AddLanes writes a[i] + b[i] on out, lane-wise with no carry
// propagation between lanes. All slices must have the same length.
func AddLanes(out, a, b []uint64) {
	detect()
	addKernel(out, a, b)
}

// SubLanes writes a[i] - b[i] on out, lane-wise with no borrow
// propagation between lanes. All slices must have the same length.
func SubLanes(out, a, b []uint64) {
	detect()
	subKernel(out, a, b)
}
