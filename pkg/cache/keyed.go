package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads the value for a key from its origin.
// A fetcher may return ErrFetchDisabled to signal that fetching is
// currently not permitted (e.g. the current-user fetcher when no session
// token exists); the cache then resolves the key as absent without
// caching anything.
type FetchFunc[V any] func(ctx context.Context) (V, error)

// KeyedCache is a keyed read-through cache with a single-in-flight
// guarantee per key: concurrent callers of the same key share one fetch
// instead of issuing duplicates.
//
// A cached value is served without fetching while it is inside the
// freshness window. Once stale, callers wait for a fresh fetch; stale
// values are never served while revalidating. Invalidate discards the
// cached value and disowns any in-flight fetch, so a late-arriving
// result cannot repopulate the key.
type KeyedCache[V any] struct {
	entries  *LRU[string, *keyedEntry[V]]
	fetchers map[string]FetchFunc[V]
	gens     map[string]uint64
	group    singleflight.Group
	ttl      time.Duration
	mu       sync.Mutex
}

type keyedEntry[V any] struct {
	value     V
	fetchedAt time.Time
}

// KeyedOption configures a KeyedCache.
type KeyedOption func(*keyedConfig)

type keyedConfig struct {
	capacity int
	ttl      time.Duration
}

// WithCapacity bounds the number of cached keys. Defaults to 128.
func WithCapacity(n int) KeyedOption {
	return func(c *keyedConfig) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithTTL sets the freshness window. Zero disables expiry: cached values
// stay fresh until invalidated. Defaults to 5 minutes.
func WithTTL(ttl time.Duration) KeyedOption {
	return func(c *keyedConfig) {
		c.ttl = ttl
	}
}

// NewKeyed creates a keyed cache.
func NewKeyed[V any](opts ...KeyedOption) *KeyedCache[V] {
	cfg := keyedConfig{
		capacity: 128,
		ttl:      5 * time.Minute,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &KeyedCache[V]{
		entries:  NewLRU[string, *keyedEntry[V]](cfg.capacity),
		fetchers: make(map[string]FetchFunc[V]),
		gens:     make(map[string]uint64),
		ttl:      cfg.ttl,
	}
}

// Register binds a fetcher to a key, replacing any prior binding.
func (c *KeyedCache[V]) Register(key string, fetch FetchFunc[V]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchers[key] = fetch
}

// Get returns the value for a key, fetching it when absent or stale.
// Concurrent callers share a single in-flight fetch per key.
func (c *KeyedCache[V]) Get(ctx context.Context, key string) (V, error) {
	c.mu.Lock()
	if entry, ok := c.entries.Get(key); ok && c.fresh(entry) {
		value := entry.value
		c.mu.Unlock()
		return value, nil
	}
	fetch := c.fetchers[key]
	c.mu.Unlock()

	var zero V
	if fetch == nil {
		return zero, ErrNoFetcher
	}

	return c.fetchOnce(ctx, key, fetch)
}

// Refresh discards the cached value and issues an immediate fetch,
// superseding any fetch already in flight for the key.
func (c *KeyedCache[V]) Refresh(ctx context.Context, key string) (V, error) {
	c.Invalidate(key)

	c.mu.Lock()
	fetch := c.fetchers[key]
	c.mu.Unlock()

	var zero V
	if fetch == nil {
		return zero, ErrNoFetcher
	}

	return c.fetchOnce(ctx, key, fetch)
}

// Invalidate removes the cached value and disowns any in-flight fetch:
// a result that arrives after invalidation is returned to its waiters
// but never stored.
func (c *KeyedCache[V]) Invalidate(key string) {
	c.mu.Lock()
	c.gens[key]++
	c.entries.Remove(key)
	c.mu.Unlock()

	// Forget so the next Get starts a fresh call instead of joining the
	// disowned one.
	c.group.Forget(key)
}

// Peek returns the cached value without fetching or freshness checks.
func (c *KeyedCache[V]) Peek(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries.Get(key); ok {
		return entry.value, true
	}
	var zero V
	return zero, false
}

// Len returns the number of cached keys.
func (c *KeyedCache[V]) Len() int {
	return c.entries.Len()
}

func (c *KeyedCache[V]) fetchOnce(ctx context.Context, key string, fetch FetchFunc[V]) (V, error) {
	c.mu.Lock()
	gen := c.gens[key]
	c.mu.Unlock()

	result, err, _ := c.group.Do(key, func() (any, error) {
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		// Store only if the key was not invalidated while the fetch ran.
		if c.gens[key] == gen {
			c.entries.Put(key, &keyedEntry[V]{value: value, fetchedAt: time.Now()})
		}
		c.mu.Unlock()

		return value, nil
	})
	if err != nil {
		var zero V
		if errors.Is(err, ErrFetchDisabled) {
			return zero, ErrFetchDisabled
		}
		return zero, err
	}

	return result.(V), nil
}

func (c *KeyedCache[V]) fresh(entry *keyedEntry[V]) bool {
	return c.ttl <= 0 || time.Since(entry.fetchedAt) < c.ttl
}
