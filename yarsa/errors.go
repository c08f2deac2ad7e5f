package yarsa

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPrimePair = errors.New("[RSA] invalid prime pair")
	ErrDuplicatePrimes  = fmt.Errorf("%w: p and q must be distinct", ErrInvalidPrimePair)
	ErrNotPrime         = fmt.Errorf("%w: p and q must both be prime", ErrInvalidPrimePair)

	ErrExponentDerivationFailed = errors.New("[RSA] failed to derive the private exponent")
	ErrExponentRetriesExhausted = errors.New("[RSA] no coprime public exponent found within the retry budget")
	ErrInvalidExponent          = errors.New("[RSA] public exponent must satisfy 1 < e < φ(n) and gcd(e, φ(n)) = 1")

	ErrModulusTooSmall     = errors.New("[RSA] modulus too small to carry a message block")
	ErrInvalidBlockSize    = errors.New("[RSA] invalid block size")
	ErrMalformedCiphertext = errors.New("[RSA] malformed ciphertext")
	ErrBlockOverflow       = errors.New("[RSA] decrypted block does not fit its slot")
)
