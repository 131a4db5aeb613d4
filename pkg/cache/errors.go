package cache

import "errors"

var (
	// ErrNoFetcher indicates a key has no fetcher registered.
	ErrNoFetcher = errors.New("cache.no_fetcher")

	// ErrFetchDisabled is returned by fetchers to signal that fetching the
	// key is currently not permitted. The cache treats the key as absent
	// and caches nothing.
	ErrFetchDisabled = errors.New("cache.fetch_disabled")
)
