package ring

// ModExp computes x^e mod q by square-and-multiply with Barrett
// reduction. Variable-time; used for precomputed constants only.
func ModExp(x, e, q uint64) (result uint64) {
	bredconstant := GenBRedConstant(q)
	result = 1
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = BRed(result, x, q, bredconstant)
		}
		x = BRed(x, x, q, bredconstant)
	}
	return result
}

// ModExpPow2 computes x^(2^e) mod q.
func ModExpPow2(x, e, q uint64) (result uint64) {
	bredconstant := GenBRedConstant(q)
	result = x
	for i := uint64(0); i < e; i++ {
		result = BRed(result, result, q, bredconstant)
	}
	return result
}
