package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"vollmed/internal/cache"
)

const denylistKeyPrefix = "denylist:token:"

// TokenStoreInterface defines revoked-token storage operations.
type TokenStoreInterface interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// TokenStore keeps revoked bearer tokens in redis until they would have
// expired anyway. Tokens are keyed by digest, never stored verbatim.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// Revoke denylists a token for its remaining lifetime.
func (s *TokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, denylistKey(token), []byte("1"), ttl)
}

// IsRevoked checks whether a token has been denylisted. Redis being
// unreachable reads as "not revoked" (fail safe).
func (s *TokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	data, err := s.cache.Get(ctx, denylistKey(token))
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}

func denylistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return denylistKeyPrefix + hex.EncodeToString(sum[:])
}
