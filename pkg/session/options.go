package session

import (
	"log/slog"
	"time"

	"github.com/skillhub/learnkit/pkg/apiclient"
	"github.com/skillhub/learnkit/pkg/cache"
	"github.com/skillhub/learnkit/pkg/tokenstore"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithStore sets the token store. Defaults to a FileStore at the
// conventional path.
func WithStore(store tokenstore.Store) Option {
	return func(m *Manager) {
		if store != nil {
			m.store = store
		}
	}
}

// WithCache injects the application's shared keyed cache so identity and
// other SDK consumers reuse one mechanism. The manager registers its own
// fetcher under CurrentUserKey; any prior binding for that key is
// replaced.
func WithCache(c *cache.KeyedCache[*apiclient.User]) Option {
	return func(m *Manager) {
		if c != nil {
			m.cache = c
		}
	}
}

// WithConfig sets the full configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.config = cfg
	}
}

// WithProfileFreshness overrides the profile freshness window.
func WithProfileFreshness(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.config.ProfileFreshness = d
		}
	}
}

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}
