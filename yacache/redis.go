package yacache

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaToyRSA/yabackoff"
	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
	"github.com/YaCodeDev/GoYaToyRSA/yalogger"
	"github.com/redis/go-redis/v9"
)

// Redis wraps a *redis.Client and implements [Cache].
type Redis struct {
	client *redis.Client
}

// NewRedis turns an already configured client into a [Redis] cache.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// RedisConnectAttempts is how many PINGs NewRedisClient sends before it
// gives up on a server.
const RedisConnectAttempts = 3

// NewRedisClient dials addr and PINGs it, retrying with an exponential
// back-off, so an unreachable server is reported here rather than on first
// use.
//
// Example:
//
//	client, err := yacache.NewRedisClient(ctx, "127.0.0.1:6379", "", 0, log)
func NewRedisClient(
	ctx context.Context,
	addr string,
	password string,
	db int,
	log yalogger.Logger,
) (*redis.Client, yaerrors.Error) {
	if log == nil {
		log = yalogger.NewNopLogger()
	}

	log.Infof("Redis connecting to addr %s", addr)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	backoff := yabackoff.NewExponential(100*time.Millisecond, 2, time.Second)

	var err error

	for attempt := 1; ; attempt++ {
		if err = client.Ping(ctx).Err(); err == nil {
			break
		}

		if attempt == RedisConnectAttempts {
			break
		}

		log.Warnf("Redis PING %d/%d failed: %v", attempt, RedisConnectAttempts, err)

		if waitErr := backoff.WaitContext(ctx); waitErr != nil {
			err = waitErr

			break
		}
	}

	if err != nil {
		_ = client.Close()

		return nil, yaerrors.FromErrorWithLog(
			http.StatusServiceUnavailable,
			errors.Join(err, ErrFailedToPing),
			fmt.Sprintf("[REDIS] failed to connect to %s", addr),
			log,
		)
	}

	log.Infof("Redis connected to addr %s", addr)

	return client, nil
}

// Raw exposes the underlying client.
func (r *Redis) Raw() *redis.Client {
	return r.client
}

// Get implementation for Redis. redis.Nil becomes [ErrKeyNotFound].
func (r *Redis) Get(ctx context.Context, key string) (string, yaerrors.Error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", yaerrors.FromError(
			http.StatusNotFound,
			ErrKeyNotFound,
			fmt.Sprintf("[REDIS] `%s`", key),
		)
	}

	if err != nil {
		return "", yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToGet),
			fmt.Sprintf("[REDIS] failed `GET` by `%s`", key),
		)
	}

	return value, nil
}

// Set implementation for Redis. A ttl <= 0 stores without EX.
func (r *Redis) Set(ctx context.Context, key string, value string, ttl time.Duration) yaerrors.Error {
	if ttl < 0 {
		ttl = 0
	}

	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToSet),
			fmt.Sprintf("[REDIS] failed `SET` by `%s`", key),
		)
	}

	return nil
}

// Delete implementation for Redis.
func (r *Redis) Delete(ctx context.Context, key string) yaerrors.Error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToDelete),
			fmt.Sprintf("[REDIS] failed `DEL` by `%s`", key),
		)
	}

	return nil
}

// Ping implementation for Redis.
func (r *Redis) Ping(ctx context.Context) yaerrors.Error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return yaerrors.FromError(
			http.StatusServiceUnavailable,
			errors.Join(err, ErrFailedToPing),
			"[REDIS] failed `PING`",
		)
	}

	return nil
}

// Close closes the underlying client.
func (r *Redis) Close() yaerrors.Error {
	if err := r.client.Close(); err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToClose),
			"[REDIS] failed to close client",
		)
	}

	return nil
}
