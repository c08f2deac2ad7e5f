// Package yarsa implements textbook RSA over caller-supplied primes: key
// generation, block encryption and block decryption.
//
// It is a teaching tool. There is no padding, the primality test is trial
// division and the public exponent is sampled from whatever io.Reader the
// caller injects. Do not use it to protect anything.
//
// Example:
//
//	keys, err := yarsa.GenerateKeys(big.NewInt(61), big.NewInt(53), yarsa.KeyOpts{})
//	if err != nil {
//	    return err.Wrap("demo")
//	}
//
//	ct, err := yarsa.EncryptText("hi", keys.Public(), yarsa.EncryptOpts{})
//	...
//	text, err := keys.DecryptText(ct)
package yarsa

import (
	"fmt"
	"io"
	"math/big"
	"net/http"

	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
	"github.com/YaCodeDev/GoYaToyRSA/yalogger"
	"github.com/YaCodeDev/GoYaToyRSA/yamath"
)

const (
	// DefaultSampleBytes is how many random bytes feed each exponent candidate.
	DefaultSampleBytes = 16
	// DefaultMaxExponentAttempts bounds the resampling loop of GenerateKeys.
	DefaultMaxExponentAttempts = 10_000
)

var bigOne = big.NewInt(1)

// KeyOpts tunes GenerateKeys. The zero value samples e from crypto/rand.
//   - Entropy: source for exponent candidates (crypto/rand.Reader if nil).
//   - Exponent: fixed public exponent (e.g. 3); skips sampling but is still
//     checked for 1 < e < φ(n) and gcd(e, φ(n)) = 1.
//   - SampleBytes: bytes per candidate (DefaultSampleBytes if ≤ 0).
//   - MaxExponentAttempts: candidates tried before giving up
//     (DefaultMaxExponentAttempts if ≤ 0).
//   - Logger: receives debug output about rejected candidates.
type KeyOpts struct {
	Entropy             io.Reader
	Exponent            *big.Int
	SampleBytes         int
	MaxExponentAttempts int
	Logger              yalogger.Logger
}

// PublicKey is the part of a key pair that may be handed to anyone,
// including yaattack.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

func (k PublicKey) String() string {
	return fmt.Sprintf("(n=%s, e=%s)", k.N, k.E)
}

// KeyPair owns the full key material. Only n and e are reachable from the
// outside; d, p and q stay inside and are used through the decrypt methods.
type KeyPair struct {
	n *big.Int
	e *big.Int
	d *big.Int
	p *big.Int
	q *big.Int
}

// GenerateKeys derives an RSA key pair from two distinct primes.
//
// n = p·q and φ = (p−1)(q−1). Unless opts.Exponent is set, e is drawn as
// opts.SampleBytes random bytes reduced mod φ, and redrawn until e > 1 and
// gcd(e, φ) = 1. d is the inverse of e mod φ. φ is not kept.
//
// Errors (match with errors.Is):
//   - ErrDuplicatePrimes / ErrNotPrime, both ErrInvalidPrimePair (400);
//   - ErrInvalidExponent when a fixed exponent is unusable (400);
//   - ErrExponentRetriesExhausted when sampling never succeeds (500);
//   - ErrExponentDerivationFailed when no inverse exists (500).
func GenerateKeys(p, q *big.Int, opts KeyOpts) (*KeyPair, yaerrors.Error) {
	log := opts.Logger
	if log == nil {
		log = yalogger.NewNopLogger()
	}

	if p == nil || q == nil {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrNotPrime,
			"[RSA] generate keys: missing prime",
		)
	}

	if p.Cmp(q) == 0 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrDuplicatePrimes,
			fmt.Sprintf("[RSA] generate keys: p = q = %s", p),
		)
	}

	for _, candidate := range []*big.Int{p, q} {
		if !yamath.IsPrime(candidate) {
			return nil, yaerrors.FromError(
				http.StatusBadRequest,
				ErrNotPrime,
				fmt.Sprintf("[RSA] generate keys: %s", candidate),
			)
		}
	}

	n := new(big.Int).Mul(p, q)
	phi := yamath.Totient(p, q)

	var (
		e   *big.Int
		err yaerrors.Error
	)

	if opts.Exponent != nil {
		e, err = checkFixedExponent(opts.Exponent, phi)
	} else {
		e, err = sampleExponent(phi, opts, log)
	}

	if err != nil {
		return nil, err.Wrap("[RSA] generate keys")
	}

	d, ok := yamath.ModInverse(e, phi)
	if !ok {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			ErrExponentDerivationFailed,
			fmt.Sprintf("[RSA] generate keys: e = %s", e),
		)
	}

	log.WithPublicKey(n, e).Debug("Key pair generated")

	return &KeyPair{
		n: n,
		e: e,
		d: d,
		p: new(big.Int).Set(p),
		q: new(big.Int).Set(q),
	}, nil
}

func checkFixedExponent(e, phi *big.Int) (*big.Int, yaerrors.Error) {
	if e.Cmp(bigOne) <= 0 || e.Cmp(phi) >= 0 || yamath.GCD(e, phi).Cmp(bigOne) != 0 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidExponent,
			fmt.Sprintf("[RSA] fixed exponent %s with φ = %s", e, phi),
		)
	}

	return new(big.Int).Set(e), nil
}

func sampleExponent(phi *big.Int, opts KeyOpts, log yalogger.Logger) (*big.Int, yaerrors.Error) {
	entropy := entropyOrDefault(opts.Entropy)

	sampleBytes := opts.SampleBytes
	if sampleBytes <= 0 {
		sampleBytes = DefaultSampleBytes
	}

	attempts := opts.MaxExponentAttempts
	if attempts <= 0 {
		attempts = DefaultMaxExponentAttempts
	}

	buf := make([]byte, sampleBytes)

	for attempt := range attempts {
		if _, err := io.ReadFull(entropy, buf); err != nil {
			return nil, yaerrors.FromError(
				http.StatusInternalServerError,
				err,
				"[RSA] failed to read entropy for the public exponent",
			)
		}

		e := new(big.Int).SetBytes(buf)
		e.Mod(e, phi)

		if e.Cmp(bigOne) > 0 && yamath.GCD(e, phi).Cmp(bigOne) == 0 {
			return e, nil
		}

		log.Debugf("Exponent candidate %s rejected (attempt %d), resampling", e, attempt+1)
	}

	return nil, yaerrors.FromError(
		http.StatusInternalServerError,
		ErrExponentRetriesExhausted,
		fmt.Sprintf("[RSA] %d candidates tried against φ = %s", attempts, phi),
	)
}

// N returns a copy of the modulus.
func (k *KeyPair) N() *big.Int {
	return new(big.Int).Set(k.n)
}

// E returns a copy of the public exponent.
func (k *KeyPair) E() *big.Int {
	return new(big.Int).Set(k.e)
}

// Public returns the public half of the key pair.
func (k *KeyPair) Public() PublicKey {
	return PublicKey{N: k.N(), E: k.E()}
}

// Decrypt returns c^d mod n for a single block.
func (k *KeyPair) Decrypt(c *big.Int) *big.Int {
	return DecryptBlock(c, k.d, k.n)
}

// DecryptMessage reverses EncryptMessage byte for byte.
func (k *KeyPair) DecryptMessage(ct *Ciphertext) ([]byte, yaerrors.Error) {
	plain, err := DecryptMessage(ct, k.d, k.n)
	if err != nil {
		return nil, err.Wrap("[RSA] key pair decrypt")
	}

	return plain, nil
}

// DecryptText is DecryptMessage followed by permissive UTF-8 decoding.
func (k *KeyPair) DecryptText(ct *Ciphertext) (string, yaerrors.Error) {
	plain, err := k.DecryptMessage(ct)
	if err != nil {
		return "", err
	}

	return DecodeText(plain), nil
}

// String prints only the public half so private values never reach logs.
func (k *KeyPair) String() string {
	return "KeyPair" + k.Public().String()
}

// GoString keeps %#v from dumping the private fields.
func (k *KeyPair) GoString() string {
	return k.String()
}
