package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks revoked session ids so sign-out takes effect before a
// token's natural expiry.
type SessionStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a redis-backed revocation store.
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (r *redisSessionStore) key(sessionID string) string {
	return fmt.Sprintf("novapos:session:revoked:%s", sessionID)
}

func (r *redisSessionStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	return r.client.Set(ctx, r.key(sessionID), "1", ttl).Err()
}

func (r *redisSessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	_, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
