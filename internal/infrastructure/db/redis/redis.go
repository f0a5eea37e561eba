package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout      = 5 * time.Second
	defaultPoolSize     = 10
	defaultMinIdleConns = 2
)

// Config captures the settings for the revoked-token store.
type Config struct {
	Addr         string
	DB           int
	Timeout      time.Duration
	PoolSize     int
	MinIdleConns int
}

// Connect initialises the Redis client holding revoked refresh tokens and
// validates connectivity with a ping. Every authenticated request checks the
// revocation list, so the pool keeps a few idle connections warm.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	minIdle := cfg.MinIdleConns
	if minIdle <= 0 {
		minIdle = defaultMinIdleConns
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		ClientName:   "astro-platform-api",
		PoolSize:     poolSize,
		MinIdleConns: minIdle,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
