package yamath

import "math/big"

// TrialDivide looks for the smallest divisor i of n with 2 ≤ i ≤ bound and
// i² ≤ n. On success it returns (i, n/i, true).
//
// The bound caps the running time: moduli whose smallest prime factor exceeds
// it are reported as not factored even though they are composite. A nil bound
// leaves only the √n limit.
//
// Example:
//
//	p, q, ok := yamath.TrialDivide(big.NewInt(3233), big.NewInt(1_000_000)) // 53, 61, true
func TrialDivide(n, bound *big.Int) (*big.Int, *big.Int, bool) {
	if n.Cmp(bigThree) <= 0 {
		return nil, nil, false
	}

	i := new(big.Int).Set(bigTwo)
	square := new(big.Int)
	quo := new(big.Int)
	rem := new(big.Int)

	for square.Mul(i, i).Cmp(n) <= 0 {
		if bound != nil && i.Cmp(bound) > 0 {
			break
		}

		quo.QuoRem(n, i, rem)

		if rem.Sign() == 0 {
			return i, quo, true
		}

		i.Add(i, bigOne)
	}

	return nil, nil, false
}

// Totient returns (p−1)(q−1).
func Totient(p, q *big.Int) *big.Int {
	pm1 := new(big.Int).Sub(p, bigOne)
	qm1 := new(big.Int).Sub(q, bigOne)

	return pm1.Mul(pm1, qm1)
}
