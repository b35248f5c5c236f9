package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/redis/go-redis/v9"
)

const (
	settingsKeyPrefix       = "ledgerline:discount_policy:"
	DefaultSettingsCacheTTL = 5 * time.Minute
)

// SettingsCache stores resolved workspace discount policies in Redis
type SettingsCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewSettingsCache creates a cache whose entries live for ttl
func NewSettingsCache(rdb redis.Cmdable, ttl time.Duration) *SettingsCache {
	if ttl <= 0 {
		ttl = DefaultSettingsCacheTTL
	}
	return &SettingsCache{rdb: rdb, ttl: ttl}
}

func settingsKey(workspaceID uuid.UUID) string {
	return settingsKeyPrefix + workspaceID.String()
}

// Get returns the cached policy, or nil on a miss
func (c *SettingsCache) Get(ctx context.Context, workspaceID uuid.UUID) (*business.DiscountPolicy, error) {
	raw, err := c.rdb.Get(ctx, settingsKey(workspaceID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var policy business.DiscountPolicy
	if err := json.Unmarshal(raw, &policy); err != nil {
		return nil, fmt.Errorf("decode cached policy: %w", err)
	}
	return &policy, nil
}

// Set caches policy for the workspace
func (c *SettingsCache) Set(ctx context.Context, workspaceID uuid.UUID, policy business.DiscountPolicy) error {
	raw, err := json.Marshal(policy)
	if err != nil {
		return fmt.Errorf("encode policy: %w", err)
	}
	if err := c.rdb.Set(ctx, settingsKey(workspaceID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete drops the cached policy
func (c *SettingsCache) Delete(ctx context.Context, workspaceID uuid.UUID) error {
	if err := c.rdb.Del(ctx, settingsKey(workspaceID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
