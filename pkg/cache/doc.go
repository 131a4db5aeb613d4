// Package cache provides the keyed read-through cache shared by the whole
// SDK: identity, catalog listings and other remote reads all go through
// the same mechanism.
//
// # Architecture
//
// KeyedCache binds a fetcher to each key and guarantees at most one fetch
// in flight per key: concurrent callers await the same result instead of
// issuing duplicate network calls (golang.org/x/sync/singleflight). Values
// are served without fetching while inside the configured freshness
// window; once stale, callers wait for a fresh fetch. The cache
// deliberately does not serve stale values while revalidating — for
// identity data, correctness beats latency.
//
// Invalidate removes the cached value and disowns any in-flight fetch for
// the key. The disowned fetch still resolves for callers already awaiting
// it, but its result is never stored, so a response that arrives after an
// invalidation (say, a logout) cannot repopulate the key.
//
// Entries are held in a bounded LRU so unbounded key sets (catalog pages,
// search results) cannot grow memory without limit.
//
// # Usage
//
//	users := cache.NewKeyed[*apiclient.User](
//		cache.WithTTL(5*time.Minute),
//	)
//	users.Register("current-user", func(ctx context.Context) (*apiclient.User, error) {
//		token, err := store.Read(ctx)
//		if err != nil {
//			return nil, cache.ErrFetchDisabled
//		}
//		return client.Me(ctx, token)
//	})
//
//	user, err := users.Get(ctx, "current-user")
//
// A fetcher returning ErrFetchDisabled marks the key as currently
// unfetched: nothing is cached and the caller decides what absence means.
package cache
