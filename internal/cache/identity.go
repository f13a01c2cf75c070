package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/litshelf/litshelf/internal/model"
)

const (
	// identityCachePrefix is the Redis key prefix for resolved identities.
	identityCachePrefix = "identity:"
	// identityCacheTTL keeps entries short-lived so deleted accounts stop
	// resolving quickly.
	identityCacheTTL = 60 * time.Second
)

// cachedIdentity is the Redis representation of a resolved identity.
type cachedIdentity struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

// TokenDigest derives the cache key for a bearer token.
// The raw token never touches Redis.
func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:16])
}

// GetIdentity retrieves a cached identity by token digest.
// Returns nil on a cache miss.
func (c *Cache) GetIdentity(ctx context.Context, digest string) (*model.Identity, error) {
	data, err := c.client.Get(ctx, identityCachePrefix+digest).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var cached cachedIdentity
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &model.Identity{
		AccountID: cached.AccountID,
		Username:  cached.Username,
		Email:     cached.Email,
	}, nil
}

// SetIdentity caches a resolved identity under the token digest.
func (c *Cache) SetIdentity(ctx context.Context, digest string, id *model.Identity) error {
	data, err := json.Marshal(cachedIdentity{
		AccountID: id.AccountID,
		Username:  id.Username,
		Email:     id.Email,
	})
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	return c.client.Set(ctx, identityCachePrefix+digest, data, identityCacheTTL).Err()
}

// DeleteIdentity removes a cached identity.
// Used when an account is deleted or its credentials change.
func (c *Cache) DeleteIdentity(ctx context.Context, digest string) error {
	return c.client.Del(ctx, identityCachePrefix+digest).Err()
}
