// Package redis keeps auth sessions in Redis, one key per token id.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/silcast/crane-admin/internal/auth"
)

const DefaultKeyPrefix = "crane-admin:session:"

type TokenStore struct {
	client *goredis.Client
	prefix string
}

func NewTokenStore(client *goredis.Client, prefix string) *TokenStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &TokenStore{client: client, prefix: prefix}
}

func (s *TokenStore) key(tokenID string) string {
	return s.prefix + tokenID
}

// Save stores the session with a TTL matching the token lifetime.
func (s *TokenStore) Save(ctx context.Context, token *auth.IssuedToken) error {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("token %s already expired", token.ID)
	}
	return s.client.Set(ctx, s.key(token.ID), strconv.FormatInt(token.UserID, 10), ttl).Err()
}

func (s *TokenStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *TokenStore) Revoke(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, s.key(tokenID)).Err()
}

var _ auth.TokenStore = (*TokenStore)(nil)
