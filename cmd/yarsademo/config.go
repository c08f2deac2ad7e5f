package main

import (
	"math/big"
	"time"

	"github.com/YaCodeDev/GoYaToyRSA/yalogger"
)

// Config is read from the environment (and .env) by config.LoadConfigStructFromEnv.
//
//	LOG_LEVEL                   logrus level name or number
//	PRIMES                      comma separated candidates, two are drawn
//	MESSAGE                     plaintext to encrypt
//	FIXED_EXPONENT              e.g. 3; empty samples e at random
//	SEED                        makes every random choice reproducible
//	BLOCK_SIZE                  0 lets the cipher choose
//	ATTACK_FACTOR_SEARCH_BOUND  largest trial divisor
//	ATTACK_REDIS_ADDR           factor cache in Redis
//	ATTACK_SQLITE_PATH          factor cache in SQLite when no Redis is set;
//	                            with neither the cache lives in memory
type Config struct {
	LogLevel      yalogger.Level `default:"info"`
	Primes        []*big.Int     `default:"102871,102877,102881,102911,102913,102929"`
	Message       string         `default:"Rust is great"`
	FixedExponent *big.Int       `default:""`
	Seed          string         `default:""`
	BlockSize     int            `default:"0"`
	Attack        AttackConfig
}

type AttackConfig struct {
	FactorSearchBound *big.Int      `default:"1000000"`
	RedisAddr         string        `default:""`
	RedisPassword     string        `default:""`
	RedisDB           int           `default:"0"`
	SqlitePath        string        `default:""`
	CacheTTL          time.Duration `default:"24h"`
}
