// Package yamath is the number-theoretic engine behind the toy RSA system.
//
// Everything works on *big.Int and never mutates its arguments:
//
//   - IsPrime: deterministic 6k±1 trial division.
//   - GCD: Euclid's remainder loop.
//   - ModInverse: extended Euclid with an explicit gcd check.
//   - NthRoot / Sqrt / Cbrt: floor integer roots by Newton's iteration.
//   - TrialDivide: bounded search for the smallest factor.
//
// None of these are meant for real key sizes: IsPrime and TrialDivide are
// O(√n) and only practical for moduli of a few dozen bits.
package yamath

import "math/big"

var (
	bigZero  = big.NewInt(0)
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
	bigFive  = big.NewInt(5)
	bigSix   = big.NewInt(6)
)

// IsPrime reports whether num is prime. Numbers ≤ 1 are not prime.
//
// After ruling out multiples of 2 and 3 only candidates of the form 6k±1 are
// tried, up to √num.
//
// Example:
//
//	yamath.IsPrime(big.NewInt(61)) // true
//	yamath.IsPrime(big.NewInt(9))  // false
func IsPrime(num *big.Int) bool {
	if num.Cmp(bigOne) <= 0 {
		return false
	}

	if num.Cmp(bigTwo) == 0 || num.Cmp(bigThree) == 0 {
		return true
	}

	rem := new(big.Int)

	if rem.Mod(num, bigTwo).Sign() == 0 || rem.Mod(num, bigThree).Sign() == 0 {
		return false
	}

	i := new(big.Int).Set(bigFive)
	j := new(big.Int)
	square := new(big.Int)

	for square.Mul(i, i).Cmp(num) <= 0 {
		if rem.Mod(num, i).Sign() == 0 {
			return false
		}

		if rem.Mod(num, j.Add(i, bigTwo)).Sign() == 0 {
			return false
		}

		i.Add(i, bigSix)
	}

	return true
}

// GCD returns the greatest common divisor of |a| and |b|. GCD(0, 0) is 0.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)

	for y.Sign() != 0 {
		x.Mod(x, y)
		x, y = y, x
	}

	return x
}

// ModInverse returns d in [0, m) with a·d ≡ 1 (mod m).
//
// The Bézout coefficient is derived with the extended Euclidean algorithm over
// signed integers. The final remainder is checked explicitly: when
// gcd(a, m) ≠ 1 (or m ≤ 1) there is no inverse and ok is false.
//
// Example:
//
//	d, ok := yamath.ModInverse(big.NewInt(7), big.NewInt(11)) // 8, true
//	_, ok = yamath.ModInverse(big.NewInt(2), big.NewInt(4))   // false
func ModInverse(a, m *big.Int) (*big.Int, bool) {
	if m.Cmp(bigOne) <= 0 {
		return nil, false
	}

	// (r0, r1) walk the remainder sequence, (t0, t1) the coefficients of a.
	r0 := new(big.Int).Set(m)
	r1 := new(big.Int).Mod(a, m)
	t0 := new(big.Int)
	t1 := big.NewInt(1)

	quo := new(big.Int)
	tmp := new(big.Int)

	for r1.Sign() != 0 {
		quo.Quo(r0, r1)

		tmp.Mul(quo, r1)
		r0.Sub(r0, tmp)
		r0, r1 = r1, r0

		tmp.Mul(quo, t1)
		t0.Sub(t0, tmp)
		t0, t1 = t1, t0
	}

	if r0.Cmp(bigOne) != 0 {
		return nil, false
	}

	// Mod is Euclidean in math/big, so the result is already in [0, m).
	return t0.Mod(t0, m), true
}
