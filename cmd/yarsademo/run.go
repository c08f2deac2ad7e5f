package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/YaCodeDev/GoYaToyRSA/yaattack"
	"github.com/YaCodeDev/GoYaToyRSA/yacache"
	"github.com/YaCodeDev/GoYaToyRSA/yaencoding"
	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
	"github.com/YaCodeDev/GoYaToyRSA/yalogger"
	"github.com/YaCodeDev/GoYaToyRSA/yarsa"
)

func run(ctx context.Context, cfg Config, log yalogger.Logger, out io.Writer) yaerrors.Error {
	var entropy io.Reader = rand.Reader

	if cfg.Seed != "" {
		log.Warn("SEED is set, every random choice is reproducible")

		entropy = yarsa.NewDeterministicReader([]byte(cfg.Seed))
	}

	p, q, err := pickPrimes(cfg.Primes, entropy)
	if err != nil {
		return err.Wrap("pick primes")
	}

	log.Infof("Primes p = %s, q = %s", p, q)

	keys, err := yarsa.GenerateKeys(p, q, yarsa.KeyOpts{
		Entropy:  entropy,
		Exponent: cfg.FixedExponent,
		Logger:   log,
	})
	if err != nil {
		return err.Wrap("generate keys")
	}

	log = log.WithPublicKey(keys.N(), keys.E())

	fmt.Fprintf(out, "public key: %s\n", keys.Public())

	ct, err := yarsa.EncryptText(cfg.Message, keys.Public(), yarsa.EncryptOpts{
		BlockSize: cfg.BlockSize,
		Entropy:   entropy,
		Logger:    log,
	})
	if err != nil {
		return err.Wrap("encrypt")
	}

	envelope, err := ct.Encode()
	if err != nil {
		return err.Wrap("encode ciphertext")
	}

	fmt.Fprintf(out, "ciphertext (block size %d): %s\n", ct.BlockSize, strings.Join(ct.Strings(), " "))
	fmt.Fprintf(out, "envelope: %s\n", yaencoding.ToString(envelope))

	received, err := yarsa.DecodeCiphertext(envelope)
	if err != nil {
		return err.Wrap("decode ciphertext")
	}

	text, err := keys.DecryptText(received)
	if err != nil {
		return err.Wrap("decrypt")
	}

	fmt.Fprintf(out, "decrypted: %s\n", text)

	cache, err := openCache(ctx, cfg.Attack, log)
	if err != nil {
		return err.Wrap("open factor cache")
	}

	defer func() {
		if err := cache.Close(); err != nil {
			log.Warnf("Failed to close factor cache: %v", err)
		}
	}()

	attacker := yaattack.NewAttacker(yaattack.Options{
		FactorSearchBound: cfg.Attack.FactorSearchBound,
		Cache:             cache,
		CacheTTL:          cfg.Attack.CacheTTL,
		Logger:            log,
	})

	started := time.Now()

	result, err := attacker.Recover(ctx, received, keys.Public())
	if errors.Is(err, yaattack.ErrAttackInconclusive) {
		log.Warnf("Attack gave up after %s", time.Since(started))
		fmt.Fprintln(out, "attack: inconclusive")

		return nil
	}

	if err != nil {
		return err.Wrap("attack")
	}

	log.Infof("Attack finished in %s", time.Since(started))

	if result.Partial {
		fmt.Fprintf(out, "attack (%s, %d of %d blocks): %s\n",
			result.Method, result.RecoveredBlocks, result.TotalBlocks, result.Text)

		return nil
	}

	fmt.Fprintf(out, "attack (%s): %s\n", result.Method, result.Text)

	return nil
}

// pickPrimes draws two different positions of primes.
func pickPrimes(primes []*big.Int, entropy io.Reader) (*big.Int, *big.Int, yaerrors.Error) {
	if len(primes) < 2 {
		return nil, nil, yaerrors.FromError(
			http.StatusBadRequest,
			yarsa.ErrInvalidPrimePair,
			fmt.Sprintf("need at least two candidate primes, got %d", len(primes)),
		)
	}

	i, err := yarsa.RandomIndex(entropy, len(primes))
	if err != nil {
		return nil, nil, err
	}

	j, err := yarsa.RandomIndex(entropy, len(primes)-1)
	if err != nil {
		return nil, nil, err
	}

	if j >= i {
		j++
	}

	return primes[i], primes[j], nil
}

func openCache(ctx context.Context, cfg AttackConfig, log yalogger.Logger) (yacache.Cache, yaerrors.Error) {
	if cfg.RedisAddr != "" {
		client, err := yacache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			return nil, err
		}

		return yacache.NewRedis(client), nil
	}

	if cfg.SqlitePath != "" {
		log.Infof("Factor cache in SQLite at %s", cfg.SqlitePath)

		poolDB, err := yacache.OpenSQLite(cfg.SqlitePath)
		if err != nil {
			return nil, err
		}

		cache, err := yacache.NewGorm(poolDB)
		if err != nil {
			return nil, err
		}

		return cache, nil
	}

	return yacache.NewMemory(time.Minute), nil
}
