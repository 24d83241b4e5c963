package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SectorCache stores the per-user symbol-to-sector lookup in Redis so the
// analysis endpoint does not have to refetch holdings from the brokerage
// on every request. Entries expire so a stale lookup degrades to a fresh
// provider fetch, never to wrong data forever.
type SectorCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSectorCache creates a sector cache backed by the given Redis client
func NewSectorCache(client *redis.Client, ttl time.Duration) *SectorCache {
	return &SectorCache{client: client, ttl: ttl}
}

// Get returns the cached sector lookup for a user, or nil on a cache miss
func (c *SectorCache) Get(ctx context.Context, userID int) (map[string]string, error) {
	data, err := c.client.Get(ctx, sectorKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sector cache: %w", err)
	}

	var sectors map[string]string
	if err := json.Unmarshal(data, &sectors); err != nil {
		return nil, fmt.Errorf("failed to decode sector cache: %w", err)
	}
	return sectors, nil
}

// Set stores the sector lookup for a user
func (c *SectorCache) Set(ctx context.Context, userID int, sectors map[string]string) error {
	data, err := json.Marshal(sectors)
	if err != nil {
		return fmt.Errorf("failed to encode sector cache: %w", err)
	}
	if err := c.client.Set(ctx, sectorKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write sector cache: %w", err)
	}
	return nil
}

func sectorKey(userID int) string {
	return fmt.Sprintf("sectors:%d", userID)
}
