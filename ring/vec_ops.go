package ring

// Coefficient-wise kernels over []uint64, unrolled by 8 with a scalar
// tail so that any transform length down to MinimumTransformLength is
// supported.

func addvec(p1, p2, p3 []uint64, Q uint64) {
	n := len(p3) &^ 7
	for i := 0; i < n; i += 8 {
		x := p1[i : i+8 : i+8]
		y := p2[i : i+8 : i+8]
		z := p3[i : i+8 : i+8]
		z[0] = CRed(x[0]+y[0], Q)
		z[1] = CRed(x[1]+y[1], Q)
		z[2] = CRed(x[2]+y[2], Q)
		z[3] = CRed(x[3]+y[3], Q)
		z[4] = CRed(x[4]+y[4], Q)
		z[5] = CRed(x[5]+y[5], Q)
		z[6] = CRed(x[6]+y[6], Q)
		z[7] = CRed(x[7]+y[7], Q)
	}
	for i := n; i < len(p3); i++ {
		p3[i] = CRed(p1[i]+p2[i], Q)
	}
}

func subvec(p1, p2, p3 []uint64, Q uint64) {
	n := len(p3) &^ 7
	for i := 0; i < n; i += 8 {
		x := p1[i : i+8 : i+8]
		y := p2[i : i+8 : i+8]
		z := p3[i : i+8 : i+8]
		z[0] = CRed(x[0]+Q-y[0], Q)
		z[1] = CRed(x[1]+Q-y[1], Q)
		z[2] = CRed(x[2]+Q-y[2], Q)
		z[3] = CRed(x[3]+Q-y[3], Q)
		z[4] = CRed(x[4]+Q-y[4], Q)
		z[5] = CRed(x[5]+Q-y[5], Q)
		z[6] = CRed(x[6]+Q-y[6], Q)
		z[7] = CRed(x[7]+Q-y[7], Q)
	}
	for i := n; i < len(p3); i++ {
		p3[i] = CRed(p1[i]+Q-p2[i], Q)
	}
}

func negvec(p1, p2 []uint64, Q uint64) {
	n := len(p2) &^ 7
	for i := 0; i < n; i += 8 {
		x := p1[i : i+8 : i+8]
		z := p2[i : i+8 : i+8]
		z[0] = CRed(Q-x[0], Q)
		z[1] = CRed(Q-x[1], Q)
		z[2] = CRed(Q-x[2], Q)
		z[3] = CRed(Q-x[3], Q)
		z[4] = CRed(Q-x[4], Q)
		z[5] = CRed(Q-x[5], Q)
		z[6] = CRed(Q-x[6], Q)
		z[7] = CRed(Q-x[7], Q)
	}
	for i := n; i < len(p2); i++ {
		p2[i] = CRed(Q-p1[i], Q)
	}
}

func reducevec(p1, p2 []uint64, Q uint64, bredconstant [2]uint64) {
	n := len(p2) &^ 7
	for i := 0; i < n; i += 8 {
		x := p1[i : i+8 : i+8]
		z := p2[i : i+8 : i+8]
		z[0] = BRedAdd(x[0], Q, bredconstant)
		z[1] = BRedAdd(x[1], Q, bredconstant)
		z[2] = BRedAdd(x[2], Q, bredconstant)
		z[3] = BRedAdd(x[3], Q, bredconstant)
		z[4] = BRedAdd(x[4], Q, bredconstant)
		z[5] = BRedAdd(x[5], Q, bredconstant)
		z[6] = BRedAdd(x[6], Q, bredconstant)
		z[7] = BRedAdd(x[7], Q, bredconstant)
	}
	for i := n; i < len(p2); i++ {
		p2[i] = BRedAdd(p1[i], Q, bredconstant)
	}
}

func mformvec(p1, p2 []uint64, Q uint64, bredconstant [2]uint64) {
	n := len(p2) &^ 7
	for i := 0; i < n; i += 8 {
		x := p1[i : i+8 : i+8]
		z := p2[i : i+8 : i+8]
		z[0] = MForm(x[0], Q, bredconstant)
		z[1] = MForm(x[1], Q, bredconstant)
		z[2] = MForm(x[2], Q, bredconstant)
		z[3] = MForm(x[3], Q, bredconstant)
		z[4] = MForm(x[4], Q, bredconstant)
		z[5] = MForm(x[5], Q, bredconstant)
		z[6] = MForm(x[6], Q, bredconstant)
		z[7] = MForm(x[7], Q, bredconstant)
	}
	for i := n; i < len(p2); i++ {
		p2[i] = MForm(p1[i], Q, bredconstant)
	}
}

func imformvec(p1, p2 []uint64, Q, mredconstant uint64) {
	n := len(p2) &^ 7
	for i := 0; i < n; i += 8 {
		x := p1[i : i+8 : i+8]
		z := p2[i : i+8 : i+8]
		z[0] = IMForm(x[0], Q, mredconstant)
		z[1] = IMForm(x[1], Q, mredconstant)
		z[2] = IMForm(x[2], Q, mredconstant)
		z[3] = IMForm(x[3], Q, mredconstant)
		z[4] = IMForm(x[4], Q, mredconstant)
		z[5] = IMForm(x[5], Q, mredconstant)
		z[6] = IMForm(x[6], Q, mredconstant)
		z[7] = IMForm(x[7], Q, mredconstant)
	}
	for i := n; i < len(p2); i++ {
		p2[i] = IMForm(p1[i], Q, mredconstant)
	}
}

func mulcoeffsmontgomeryvec(p1, p2, p3 []uint64, Q, mredconstant uint64) {
	n := len(p3) &^ 7
	for i := 0; i < n; i += 8 {
		x := p1[i : i+8 : i+8]
		y := p2[i : i+8 : i+8]
		z := p3[i : i+8 : i+8]
		z[0] = MRed(x[0], y[0], Q, mredconstant)
		z[1] = MRed(x[1], y[1], Q, mredconstant)
		z[2] = MRed(x[2], y[2], Q, mredconstant)
		z[3] = MRed(x[3], y[3], Q, mredconstant)
		z[4] = MRed(x[4], y[4], Q, mredconstant)
		z[5] = MRed(x[5], y[5], Q, mredconstant)
		z[6] = MRed(x[6], y[6], Q, mredconstant)
		z[7] = MRed(x[7], y[7], Q, mredconstant)
	}
	for i := n; i < len(p3); i++ {
		p3[i] = MRed(p1[i], p2[i], Q, mredconstant)
	}
}

func mulcoeffsbarrettvec(p1, p2, p3 []uint64, Q uint64, bredconstant [2]uint64) {
	n := len(p3) &^ 7
	for i := 0; i < n; i += 8 {
		x := p1[i : i+8 : i+8]
		y := p2[i : i+8 : i+8]
		z := p3[i : i+8 : i+8]
		z[0] = BRed(x[0], y[0], Q, bredconstant)
		z[1] = BRed(x[1], y[1], Q, bredconstant)
		z[2] = BRed(x[2], y[2], Q, bredconstant)
		z[3] = BRed(x[3], y[3], Q, bredconstant)
		z[4] = BRed(x[4], y[4], Q, bredconstant)
		z[5] = BRed(x[5], y[5], Q, bredconstant)
		z[6] = BRed(x[6], y[6], Q, bredconstant)
		z[7] = BRed(x[7], y[7], Q, bredconstant)
	}
	for i := n; i < len(p3); i++ {
		p3[i] = BRed(p1[i], p2[i], Q, bredconstant)
	}
}

func mulscalarmontgomeryvec(p1 []uint64, scalarMont uint64, p2 []uint64, Q, mredconstant uint64) {
	n := len(p2) &^ 7
	for i := 0; i < n; i += 8 {
		x := p1[i : i+8 : i+8]
		z := p2[i : i+8 : i+8]
		z[0] = MRed(x[0], scalarMont, Q, mredconstant)
		z[1] = MRed(x[1], scalarMont, Q, mredconstant)
		z[2] = MRed(x[2], scalarMont, Q, mredconstant)
		z[3] = MRed(x[3], scalarMont, Q, mredconstant)
		z[4] = MRed(x[4], scalarMont, Q, mredconstant)
		z[5] = MRed(x[5], scalarMont, Q, mredconstant)
		z[6] = MRed(x[6], scalarMont, Q, mredconstant)
		z[7] = MRed(x[7], scalarMont, Q, mredconstant)
	}
	for i := n; i < len(p2); i++ {
		p2[i] = MRed(p1[i], scalarMont, Q, mredconstant)
	}
}

func mulscalarmontgomerylazyvec(p1 []uint64, scalarMont uint64, p2 []uint64, Q, mredconstant uint64) {
	n := len(p2) &^ 7
	for i := 0; i < n; i += 8 {
		x := p1[i : i+8 : i+8]
		z := p2[i : i+8 : i+8]
		z[0] = MRedLazy(x[0], scalarMont, Q, mredconstant)
		z[1] = MRedLazy(x[1], scalarMont, Q, mredconstant)
		z[2] = MRedLazy(x[2], scalarMont, Q, mredconstant)
		z[3] = MRedLazy(x[3], scalarMont, Q, mredconstant)
		z[4] = MRedLazy(x[4], scalarMont, Q, mredconstant)
		z[5] = MRedLazy(x[5], scalarMont, Q, mredconstant)
		z[6] = MRedLazy(x[6], scalarMont, Q, mredconstant)
		z[7] = MRedLazy(x[7], scalarMont, Q, mredconstant)
	}
	for i := n; i < len(p2); i++ {
		p2[i] = MRedLazy(p1[i], scalarMont, Q, mredconstant)
	}
}
