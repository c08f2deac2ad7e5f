package yamath_test

import (
	"errors"
	"math/big"
	"net/http"
	"testing"

	"github.com/YaCodeDev/GoYaToyRSA/yamath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPrime_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    int64
		want bool
	}{
		{-7, false},
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
		{9, false},
		{25, false},
		{49, false},
		{53, true},
		{61, true},
		{91, false},
		{102871, true},
		{102881, true},
		{1000037, true},
		{1000121, true},
		{1000037 * 1000121, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, yamath.IsPrime(big.NewInt(tc.n)), "IsPrime(%d)", tc.n)
	}
}

func TestIsPrime_MatchesProbablyPrime(t *testing.T) {
	t.Parallel()

	for n := int64(0); n < 2000; n++ {
		x := big.NewInt(n)
		require.Equal(t, x.ProbablyPrime(20), yamath.IsPrime(x), "IsPrime(%d)", n)
	}
}

func TestGCD(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(6), yamath.GCD(big.NewInt(54), big.NewInt(24)).Int64())
	assert.Equal(t, int64(1), yamath.GCD(big.NewInt(17), big.NewInt(3120)).Int64())
	assert.Equal(t, int64(5), yamath.GCD(big.NewInt(-5), big.NewInt(0)).Int64())
	assert.Equal(t, int64(0), yamath.GCD(big.NewInt(0), big.NewInt(0)).Int64())
}

func TestGCD_DoesNotMutateArguments(t *testing.T) {
	t.Parallel()

	a, b := big.NewInt(54), big.NewInt(24)

	_ = yamath.GCD(a, b)

	assert.Equal(t, int64(54), a.Int64())
	assert.Equal(t, int64(24), b.Int64())
}

func TestModInverse_Concrete(t *testing.T) {
	t.Parallel()

	d, ok := yamath.ModInverse(big.NewInt(7), big.NewInt(11))
	require.True(t, ok)
	assert.Equal(t, int64(8), d.Int64())

	d, ok = yamath.ModInverse(big.NewInt(17), big.NewInt(3120))
	require.True(t, ok)
	assert.Equal(t, int64(2753), d.Int64())
}

func TestModInverse_NoInverse(t *testing.T) {
	t.Parallel()

	cases := [][2]int64{
		{2, 4},
		{6, 9},
		{0, 7},
		{3, 3120},
		{5, 1},
		{5, 0},
	}

	for _, tc := range cases {
		d, ok := yamath.ModInverse(big.NewInt(tc[0]), big.NewInt(tc[1]))
		assert.False(t, ok, "ModInverse(%d, %d)", tc[0], tc[1])
		assert.Nil(t, d)
	}
}

func TestModInverse_PropertyAgainstGCD(t *testing.T) {
	t.Parallel()

	one := big.NewInt(1)

	for m := int64(2); m < 120; m++ {
		for a := int64(-10); a < 2*m; a++ {
			ab, mb := big.NewInt(a), big.NewInt(m)

			d, ok := yamath.ModInverse(ab, mb)

			coprime := yamath.GCD(ab, mb).Cmp(one) == 0
			require.Equal(t, coprime, ok, "ModInverse(%d, %d)", a, m)

			if !ok {
				continue
			}

			require.True(t, d.Sign() >= 0 && d.Cmp(mb) < 0, "result out of range")

			check := new(big.Int).Mul(ab, d)
			check.Mod(check, mb)
			require.Equal(t, int64(1), check.Int64(), "(%d * %s) mod %d", a, d, m)
		}
	}
}

func TestNthRoot_FloorRoots(t *testing.T) {
	t.Parallel()

	for x := int64(0); x < 5000; x++ {
		xb := big.NewInt(x)

		s := yamath.Sqrt(xb).Int64()
		require.True(t, s*s <= x && (s+1)*(s+1) > x, "Sqrt(%d) = %d", x, s)

		c := yamath.Cbrt(xb).Int64()
		require.True(t, c*c*c <= x && (c+1)*(c+1)*(c+1) > x, "Cbrt(%d) = %d", x, c)
	}
}

func TestNthRoot_LargePerfectCube(t *testing.T) {
	t.Parallel()

	m, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	cube := new(big.Int).Exp(m, big.NewInt(3), nil)

	root, ok := yamath.ExactRoot(cube, 3)
	require.True(t, ok)
	assert.Equal(t, 0, root.Cmp(m))

	_, ok = yamath.ExactRoot(new(big.Int).Add(cube, big.NewInt(1)), 3)
	assert.False(t, ok)
}

func TestNthRoot_PanicsOnNegative(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { yamath.NthRoot(big.NewInt(-8), 3) })
	assert.Panics(t, func() { yamath.NthRoot(big.NewInt(8), 0) })
}

func TestTrialDivide(t *testing.T) {
	t.Parallel()

	p, q, ok := yamath.TrialDivide(big.NewInt(3233), big.NewInt(1_000_000))
	require.True(t, ok)
	assert.Equal(t, int64(53), p.Int64())
	assert.Equal(t, int64(61), q.Int64())

	_, _, ok = yamath.TrialDivide(big.NewInt(3233), big.NewInt(50))
	assert.False(t, ok, "smallest factor is above the bound")

	_, _, ok = yamath.TrialDivide(big.NewInt(61), nil)
	assert.False(t, ok, "primes have no proper divisor")

	p, q, ok = yamath.TrialDivide(big.NewInt(4), nil)
	require.True(t, ok)
	assert.Equal(t, int64(2), p.Int64())
	assert.Equal(t, int64(2), q.Int64())
}

func TestTotient(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(3120), yamath.Totient(big.NewInt(61), big.NewInt(53)).Int64())
}

func TestParseInt(t *testing.T) {
	t.Parallel()

	v, err := yamath.ParseInt(" 170141183460469231731687303715884105727 ")
	require.Nil(t, err)
	assert.Equal(t, 127, v.BitLen())

	v, err = yamath.ParseInt("102_871")
	require.Nil(t, err)
	assert.Equal(t, int64(102871), v.Int64())

	_, err = yamath.ParseInt("0x10")
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, yamath.ErrInvalidDecimal))
	assert.Equal(t, http.StatusBadRequest, err.Code())

	_, err = yamath.ParseInt("-3")
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, yamath.ErrNegativeValue))
}

func TestToBytes_FixedWidthKeepsLeadingZeros(t *testing.T) {
	t.Parallel()

	x := yamath.FromBytes([]byte{0x00, 0x00, 0x41})
	assert.Equal(t, int64(0x41), x.Int64())

	minimal, err := yamath.ToBytes(x, 0)
	require.Nil(t, err)
	assert.Equal(t, []byte{0x41}, minimal)

	padded, err := yamath.ToBytes(x, 3)
	require.Nil(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x41}, padded)

	_, err = yamath.ToBytes(big.NewInt(0x1234), 1)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, yamath.ErrValueTooWide))

	assert.Equal(t, 2, yamath.ByteLen(big.NewInt(3233)))
	assert.Equal(t, 0, yamath.ByteLen(big.NewInt(0)))
}
