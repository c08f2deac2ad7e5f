package yaattack

import (
	"context"
	"errors"
	"math/big"

	"github.com/YaCodeDev/GoYaToyRSA/yacache"
	"github.com/YaCodeDev/GoYaToyRSA/yalogger"
	"github.com/YaCodeDev/GoYaToyRSA/yamath"
)

const factorCacheKeyPrefix = "yaattack:factor:"

// FactorCacheKey is the cache key under which the smaller factor of n is kept.
func FactorCacheKey(n *big.Int) string {
	return factorCacheKeyPrefix + n.String()
}

// factor returns p ≤ q with p·q = n, from the cache when possible.
func (a *Attacker) factor(ctx context.Context, n *big.Int, log yalogger.Logger) (*big.Int, *big.Int, bool) {
	if p, q, ok := a.cachedFactor(ctx, n, log); ok {
		return p, q, true
	}

	p, q, ok := yamath.TrialDivide(n, a.bound)
	if !ok {
		return nil, nil, false
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, FactorCacheKey(n), p.String(), a.cacheTTL); err != nil {
			log.Warnf("Failed to cache factor: %v", err)
		}
	}

	return p, q, true
}

func (a *Attacker) cachedFactor(ctx context.Context, n *big.Int, log yalogger.Logger) (*big.Int, *big.Int, bool) {
	if a.cache == nil {
		return nil, nil, false
	}

	value, err := a.cache.Get(ctx, FactorCacheKey(n))
	if err != nil {
		if !errors.Is(err, yacache.ErrKeyNotFound) {
			log.Warnf("Factor cache lookup failed: %v", err)
		}

		return nil, nil, false
	}

	p, err := yamath.ParseInt(value)
	if err != nil || p.Cmp(big.NewInt(1)) <= 0 || p.Cmp(n) >= 0 {
		log.Warnf("Ignoring unusable cached factor %q", value)

		return nil, nil, false
	}

	q, rem := new(big.Int).QuoRem(n, p, new(big.Int))
	if rem.Sign() != 0 {
		log.Warnf("Ignoring cached factor %s, it does not divide n", p)

		return nil, nil, false
	}

	if p.Cmp(q) > 0 {
		p, q = q, p
	}

	log.Debugf("Factor cache hit: %s", p)

	return p, q, true
}
