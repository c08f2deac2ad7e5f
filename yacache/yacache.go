// Package yacache is a small string key–value cache with a TTL per entry and
// three interchangeable back‑ends: an in‑memory map guarded by a RW‑mutex, a
// thin wrapper over go‑redis, and a gorm table that OpenSQLite backs with a
// SQLite file.
//
// yaattack uses it to remember factorizations of moduli it has already broken,
// so the same public key is never trial‑divided twice across runs that share
// a Redis instance or a SQLite file.
//
// # Quick start (in-memory)
//
//	memory := yacache.NewMemory(time.Minute)
//	defer memory.Close()
//
//	_ = memory.Set(ctx, "yaattack:factor:3233", "61", time.Hour)
//	value, _ := memory.Get(ctx, "yaattack:factor:3233")
//	fmt.Println(value) // "61"
//
// # Quick start (Redis)
//
//	client, err := yacache.NewRedisClient(ctx, "localhost:6379", "", 0, log)
//	if err != nil { … }
//	redis := yacache.NewRedis(client)
//
// A missing or expired key is reported as [ErrKeyNotFound] with HTTP 404 by
// both back‑ends.
package yacache

import (
	"context"
	"time"

	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
)

// Cache is the back‑end agnostic API.
type Cache interface {
	// Get returns the value stored under key.
	Get(ctx context.Context, key string) (string, yaerrors.Error)

	// Set stores value under key. A ttl <= 0 keeps the entry forever.
	Set(ctx context.Context, key string, value string, ttl time.Duration) yaerrors.Error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) yaerrors.Error

	// Ping checks that the back‑end is reachable.
	Ping(ctx context.Context) yaerrors.Error

	// Close releases the back‑end.
	Close() yaerrors.Error
}
