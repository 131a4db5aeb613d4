package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config defines the Redis connection settings. Fields can be populated
// from environment variables via pkg/config.
type Config struct {
	// ConnectionURL in the form "redis://:password@localhost:6379/0".
	ConnectionURL string `env:"LEARNKIT_REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// RetryAttempts is how many times Connect pings before giving up.
	RetryAttempts int `env:"LEARNKIT_REDIS_RETRY_ATTEMPTS" envDefault:"3"`

	// RetryInterval is the pause between failed attempts.
	RetryInterval time.Duration `env:"LEARNKIT_REDIS_RETRY_INTERVAL" envDefault:"5s"`

	// ConnectTimeout bounds the whole connection sequence.
	ConnectTimeout time.Duration `env:"LEARNKIT_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Connect establishes a verified connection to the configured Redis
// server, retrying up to RetryAttempts times with RetryInterval between
// attempts. The whole sequence is bounded by ConnectTimeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConnString, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	for i := 0; i < attempts; i++ {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrNotReady
}

// Healthcheck returns a probe function reporting whether the given
// client can reach its server.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
