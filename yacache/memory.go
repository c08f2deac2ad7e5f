package yacache

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
	"weak"

	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
)

// Memory is a threadsafe, TTL‑aware map‑backed cache. A background goroutine
// evicts expired entries every tickToClean; Get never returns an expired entry
// even if the sweeper has not reached it yet.
type Memory struct {
	inner     map[string]memoryCacheItem
	mutex     sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemory builds an empty [Memory] and starts the sweeper.
//
// Example:
//
//	memory := yacache.NewMemory(30 * time.Second)
//	defer memory.Close()
func NewMemory(tickToClean time.Duration) *Memory {
	cache := &Memory{
		inner: make(map[string]memoryCacheItem),
		done:  make(chan struct{}),
	}

	go cleanup(weak.Make(cache), tickToClean, cache.done)

	return cache
}

// cleanup exits once the cache is closed or garbage collected.
func cleanup(
	pointer weak.Pointer[Memory],
	tickToClean time.Duration,
	done <-chan struct{},
) {
	ticker := time.NewTicker(tickToClean)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			memory := pointer.Value()
			if memory == nil {
				return
			}

			memory.sweep(time.Now())
		case <-done:
			return
		}
	}
}

func (m *Memory) sweep(now time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for key, item := range m.inner {
		if item.isExpiredAt(now) {
			delete(m.inner, key)
		}
	}
}

// Get implementation for Memory.
func (m *Memory) Get(_ context.Context, key string) (string, yaerrors.Error) {
	m.mutex.RLock()
	item, ok := m.inner[key]
	m.mutex.RUnlock()

	if !ok || item.isExpiredAt(time.Now()) {
		return "", yaerrors.FromError(
			http.StatusNotFound,
			ErrKeyNotFound,
			fmt.Sprintf("[MEMORY] `%s`", key),
		)
	}

	return item.value, nil
}

// Set implementation for Memory.
func (m *Memory) Set(_ context.Context, key string, value string, ttl time.Duration) yaerrors.Error {
	item := memoryCacheItem{value: value}
	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	}

	m.mutex.Lock()
	m.inner[key] = item
	m.mutex.Unlock()

	return nil
}

// Delete implementation for Memory.
func (m *Memory) Delete(_ context.Context, key string) yaerrors.Error {
	m.mutex.Lock()
	delete(m.inner, key)
	m.mutex.Unlock()

	return nil
}

// Ping always succeeds for Memory.
func (m *Memory) Ping(_ context.Context) yaerrors.Error {
	return nil
}

// Len reports how many entries are held, expired ones included until swept.
func (m *Memory) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.inner)
}

// Close stops the sweeper. It is safe to call more than once.
func (m *Memory) Close() yaerrors.Error {
	m.closeOnce.Do(func() { close(m.done) })

	return nil
}

// memoryCacheItem has a zero expiresAt when it never expires.
type memoryCacheItem struct {
	value     string
	expiresAt time.Time
}

func (i memoryCacheItem) isExpiredAt(now time.Time) bool {
	return !i.expiresAt.IsZero() && !now.Before(i.expiresAt)
}
