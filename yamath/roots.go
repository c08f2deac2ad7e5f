package yamath

import "math/big"

// NthRoot returns ⌊x^(1/root)⌋.
//
// Newton's step for f(r) = r^root − x in integers is
//
//	r ← ((root−1)·r + x / r^(root−1)) / root
//
// Starting above the true root, the sequence strictly decreases until it
// reaches the floor root; the first step that does not decrease marks the
// fixed point.
//
// It panics if x is negative or root is zero.
func NthRoot(x *big.Int, root uint) *big.Int {
	if x.Sign() < 0 {
		panic("yamath: NthRoot of a negative number")
	}

	if root == 0 {
		panic("yamath: NthRoot with zero root")
	}

	if x.Sign() == 0 || root == 1 {
		return new(big.Int).Set(x)
	}

	k := big.NewInt(int64(root))
	km1 := big.NewInt(int64(root) - 1)

	// 2^⌈bits/root⌉ is always ≥ the real root.
	shift := (uint(x.BitLen()) + root - 1) / root
	cur := new(big.Int).Lsh(bigOne, shift)

	next := new(big.Int)
	pow := new(big.Int)

	for {
		pow.Exp(cur, km1, nil)
		next.Quo(x, pow)
		pow.Mul(cur, km1)
		next.Add(next, pow)
		next.Quo(next, k)

		if next.Cmp(cur) >= 0 {
			return cur
		}

		cur.Set(next)
	}
}

// Sqrt returns ⌊√x⌋.
func Sqrt(x *big.Int) *big.Int {
	return NthRoot(x, 2)
}

// Cbrt returns ⌊∛x⌋.
func Cbrt(x *big.Int) *big.Int {
	return NthRoot(x, 3)
}

// ExactRoot returns r with r^root == x, or ok == false when x is not a
// perfect power of that degree.
func ExactRoot(x *big.Int, root uint) (*big.Int, bool) {
	if x.Sign() < 0 {
		return nil, false
	}

	r := NthRoot(x, root)

	if new(big.Int).Exp(r, big.NewInt(int64(root)), nil).Cmp(x) != 0 {
		return nil, false
	}

	return r, true
}
