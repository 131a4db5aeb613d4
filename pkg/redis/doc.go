// Package redis connects learnkit deployments to a Redis server.
//
// It wraps the go-redis client with retrying connection setup driven by
// an env-taggable Config, plus a health-check helper. The resulting
// client plugs into tokenstore.NewRedisStore for shared token slots.
//
//	cfg := redis.Config{ConnectionURL: "redis://localhost:6379/0"}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := tokenstore.NewRedisStore(client)
package redis
