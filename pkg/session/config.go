package session

import "time"

// Config defines the session manager's tunables. Fields can be populated
// from environment variables via pkg/config.
type Config struct {
	// APIBaseURL is the remote platform API root.
	APIBaseURL string `env:"LEARNKIT_API_BASE_URL"`

	// TokenPath overrides the token file location. Empty means the
	// conventional path under the user config directory.
	TokenPath string `env:"LEARNKIT_TOKEN_PATH"`

	// ProfileFreshness is the window during which a cached profile is
	// served without re-fetching.
	ProfileFreshness time.Duration `env:"LEARNKIT_PROFILE_FRESHNESS" envDefault:"5m"`

	// InitTimeout bounds the startup token validation fetch.
	InitTimeout time.Duration `env:"LEARNKIT_INIT_TIMEOUT" envDefault:"15s"`

	// LogoutTimeout bounds the best-effort remote logout call.
	LogoutTimeout time.Duration `env:"LEARNKIT_LOGOUT_TIMEOUT" envDefault:"5s"`
}

// DefaultConfig returns the defaults used when no configuration is given.
func DefaultConfig() Config {
	return Config{
		ProfileFreshness: 5 * time.Minute,
		InitTimeout:      15 * time.Second,
		LogoutTimeout:    5 * time.Second,
	}
}
