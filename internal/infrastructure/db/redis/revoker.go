package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevoker is the Redis-backed refresh-token denylist.
// Key format: jwt:revoked:<jti>, expiring with the token's remaining lifetime
// so revocation entries clean themselves up.
type TokenRevoker struct {
	client *redis.Client
}

// NewTokenRevoker creates a TokenRevoker wrapping the given Redis client.
func NewTokenRevoker(client *redis.Client) *TokenRevoker {
	return &TokenRevoker{client: client}
}

// Revoke denylists the token id until ttl elapses.
func (t *TokenRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return t.client.Set(ctx, t.key(tokenID), "1", ttl).Err()
}

// IsRevoked reports whether the token id has been denylisted.
func (t *TokenRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := t.client.Exists(ctx, t.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (t *TokenRevoker) key(tokenID string) string {
	return "jwt:revoked:" + tokenID
}
