package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore holds tokens revoked by logout until they would expire anyway.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Revoke(ctx context.Context, token string, until time.Duration) error {
	if until <= 0 {
		return nil
	}
	return s.client.Set(ctx, "revoked:"+token, 1, until).Err()
}

func (s *TokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, "revoked:"+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
