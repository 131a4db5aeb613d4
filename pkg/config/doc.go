// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
// values come from optional .env files plus the process environment, and
// are parsed into any annotated struct. Each configuration type is parsed
// at most once per process and served from an in-process cache afterwards.
//
// Usage:
//
//	type ClientConfig struct {
//	    BaseURL string        `env:"LEARNKIT_API_BASE_URL,required"`
//	    Timeout time.Duration `env:"LEARNKIT_HTTP_TIMEOUT" envDefault:"15s"`
//	}
//
//	var cfg ClientConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Tests that mutate the environment can call ResetCache or
// ForceReloadConfig to bypass the per-type cache.
package config
