package simd

// Scalar fallbacks. These are the reference semantics for every kernel:
// the wide paths must be bit-identical.

func xorVecScalar(out, a, b []uint64) {
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
}

func andVecScalar(out, a, b []uint64) {
	for i := range out {
		out[i] = a[i] & b[i]
	}
}

func orVecScalar(out, a, b []uint64) {
	for i := range out {
		out[i] = a[i] | b[i]
	}
}

func addLanesScalar(out, a, b []uint64) {
	for i := range out {
		out[i] = a[i] + b[i]
	}
}

func subLanesScalar(out, a, b []uint64) {
	for i := range out {
		out[i] = a[i] - b[i]
	}
}

// Wide paths, unrolled by 8 so the compiler can keep the loop body in
// vector registers on targets where it auto-vectorizes. Tails shorter
// than 8 words fall through to the scalar loop.

func xorVecWide(out, a, b []uint64) {
	n := len(out) &^ 7
	for i := 0; i < n; i += 8 {
		x := a[i : i+8 : i+8]
		y := b[i : i+8 : i+8]
		z := out[i : i+8 : i+8]
		z[0] = x[0] ^ y[0]
		z[1] = x[1] ^ y[1]
		z[2] = x[2] ^ y[2]
		z[3] = x[3] ^ y[3]
		z[4] = x[4] ^ y[4]
		z[5] = x[5] ^ y[5]
		z[6] = x[6] ^ y[6]
		z[7] = x[7] ^ y[7]
	}
	xorVecScalar(out[n:], a[n:], b[n:])
}

func andVecWide(out, a, b []uint64) {
	n := len(out) &^ 7
	for i := 0; i < n; i += 8 {
		x := a[i : i+8 : i+8]
		y := b[i : i+8 : i+8]
		z := out[i : i+8 : i+8]
		z[0] = x[0] & y[0]
		z[1] = x[1] & y[1]
		z[2] = x[2] & y[2]
		z[3] = x[3] & y[3]
		z[4] = x[4] & y[4]
		z[5] = x[5] & y[5]
		z[6] = x[6] & y[6]
		z[7] = x[7] & y[7]
	}
	andVecScalar(out[n:], a[n:], b[n:])
}

func orVecWide(out, a, b []uint64) {
	n := len(out) &^ 7
	for i := 0; i < n; i += 8 {
		x := a[i : i+8 : i+8]
		y := b[i : i+8 : i+8]
		z := out[i : i+8 : i+8]
		z[0] = x[0] | y[0]
		z[1] = x[1] | y[1]
		z[2] = x[2] | y[2]
		z[3] = x[3] | y[3]
		z[4] = x[4] | y[4]
		z[5] = x[5] | y[5]
		z[6] = x[6] | y[6]
		z[7] = x[7] | y[7]
	}
	orVecScalar(out[n:], a[n:], b[n:])
}

func addLanesWide(out, a, b []uint64) {
	n := len(out) &^ 7
	for i := 0; i < n; i += 8 {
		x := a[i : i+8 : i+8]
		y := b[i : i+8 : i+8]
		z := out[i : i+8 : i+8]
		z[0] = x[0] + y[0]
		z[1] = x[1] + y[1]
		z[2] = x[2] + y[2]
		z[3] = x[3] + y[3]
		z[4] = x[4] + y[4]
		z[5] = x[5] + y[5]
		z[6] = x[6] + y[6]
		z[7] = x[7] + y[7]
	}
	addLanesScalar(out[n:], a[n:], b[n:])
}

func subLanesWide(out, a, b []uint64) {
	n := len(out) &^ 7
	for i := 0; i < n; i += 8 {
		x := a[i : i+8 : i+8]
		y := b[i : i+8 : i+8]
		z := out[i : i+8 : i+8]
		z[0] = x[0] - y[0]
		z[1] = x[1] - y[1]
		z[2] = x[2] - y[2]
		z[3] = x[3] - y[3]
		z[4] = x[4] - y[4]
		z[5] = x[5] - y[5]
		z[6] = x[6] - y[6]
		z[7] = x[7] - y[7]
	}
	subLanesScalar(out[n:], a[n:], b[n:])
}
