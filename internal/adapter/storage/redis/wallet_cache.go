package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"digital-wallet/internal/core/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// WalletCache implements ports.WalletCache using Redis. Entries are keyed by
// owner ID and dropped after every balance mutation, so a hit is at worst one
// invalidation behind.
type WalletCache struct {
	client *goredis.Client
	prefix string
}

// NewWalletCache creates a new Redis-backed wallet read cache.
func NewWalletCache(client *goredis.Client) *WalletCache {
	return &WalletCache{
		client: client,
		prefix: "wallet:",
	}
}

// Get retrieves a cached wallet by owner ID.
// Returns nil, nil if the key does not exist.
func (c *WalletCache) Get(ctx context.Context, ownerID uuid.UUID) (*domain.Wallet, error) {
	val, err := c.client.Get(ctx, c.prefix+ownerID.String()).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis wallet get: %w", err)
	}

	wallet := &domain.Wallet{}
	if err := json.Unmarshal(val, wallet); err != nil {
		return nil, fmt.Errorf("unmarshal cached wallet: %w", err)
	}
	return wallet, nil
}

// Set stores a wallet in the cache with TTL.
func (c *WalletCache) Set(ctx context.Context, wallet *domain.Wallet, ttl time.Duration) error {
	data, err := json.Marshal(wallet)
	if err != nil {
		return fmt.Errorf("marshal wallet: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+wallet.OwnerID.String(), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis wallet set: %w", err)
	}
	return nil
}

// Invalidate drops the cached wallet for an owner.
func (c *WalletCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	if err := c.client.Del(ctx, c.prefix+ownerID.String()).Err(); err != nil {
		return fmt.Errorf("redis wallet del: %w", err)
	}
	return nil
}
