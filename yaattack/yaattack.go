// Package yaattack recovers yarsa plaintexts from the public key and the
// ciphertext alone.
//
// Two techniques are tried in order:
//
//  1. Factorization: trial division of n up to a search bound. Once p and q
//     are known, d follows from φ(n) exactly as in key generation.
//  2. Direct root: with e = 3 (or 2) and no padding, a block m with mᵉ < n is
//     never reduced mod n, so the integer e-th root of the block is m.
//
// Factors found for a modulus can be kept in a yacache.Cache so a later
// attack on the same n skips the search.
//
// Example:
//
//	attacker := yaattack.NewAttacker(yaattack.Options{Logger: log})
//
//	result, err := attacker.Recover(ctx, ct, keys.Public())
//	if err != nil {
//	    return err.Wrap("attack")
//	}
//
//	fmt.Println(result.Method, result.Text)
package yaattack

import (
	"math/big"
	"time"

	"github.com/YaCodeDev/GoYaToyRSA/yacache"
	"github.com/YaCodeDev/GoYaToyRSA/yalogger"
)

// DefaultFactorSearchBound is the largest trial divisor tried when
// Options.FactorSearchBound is nil.
const DefaultFactorSearchBound = 1_000_000

// Method names the technique that produced a Result.
type Method string

const (
	MethodFactorization Method = "factorization"
	MethodDirectRoot    Method = "direct-root"
)

// Options configures an Attacker. Every field is optional.
type Options struct {
	FactorSearchBound *big.Int
	Cache             yacache.Cache
	CacheTTL          time.Duration
	Logger            yalogger.Logger
}

// Result is what an attack recovered.
//
// Factors and PrivateExponent are set on the factorization path only.
// On the direct-root path Plaintext is the in-order concatenation of the
// blocks whose root verified; Partial reports that some blocks did not.
type Result struct {
	Method          Method
	Plaintext       []byte
	Text            string
	Factors         [2]*big.Int
	PrivateExponent *big.Int
	RecoveredBlocks int
	TotalBlocks     int
	Partial         bool
}

// Attacker runs public-key-only attacks. It holds no per-call state and may
// be shared between goroutines when its cache may.
type Attacker struct {
	bound    *big.Int
	cache    yacache.Cache
	cacheTTL time.Duration
	log      yalogger.Logger
}

// NewAttacker builds an Attacker from opts.
func NewAttacker(opts Options) *Attacker {
	bound := big.NewInt(DefaultFactorSearchBound)
	if opts.FactorSearchBound != nil {
		bound = new(big.Int).Set(opts.FactorSearchBound)
	}

	log := opts.Logger
	if log == nil {
		log = yalogger.NewNopLogger()
	}

	return &Attacker{
		bound:    bound,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		log:      log,
	}
}
