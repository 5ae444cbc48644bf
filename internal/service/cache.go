package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	analyticsCacheTTL = 15 * time.Minute

	// cacheCallTimeout bounds each Redis round trip so a slow or dead
	// cache never stalls an analytics request
	cacheCallTimeout = 2 * time.Second
)

// AnalyticsCache keeps computed analytics in Redis. Every entry write bumps a
// per-user version key, which orphans old cache entries until their TTL
// expires; no key scanning is needed to invalidate.
type AnalyticsCache struct {
	redis *redis.Client
}

func NewAnalyticsCache(client *redis.Client) *AnalyticsCache {
	return &AnalyticsCache{redis: client}
}

func (c *AnalyticsCache) Get(ctx context.Context, userID uuid.UUID, windowDays int) (*AnalyticsResult, bool) {
	ctx, cancel := context.WithTimeout(ctx, cacheCallTimeout)
	defer cancel()

	key, err := c.dataKey(ctx, userID, windowDays)
	if err != nil {
		return nil, false
	}

	raw, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var result AnalyticsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (c *AnalyticsCache) Set(ctx context.Context, userID uuid.UUID, windowDays int, result *AnalyticsResult) {
	ctx, cancel := context.WithTimeout(ctx, cacheCallTimeout)
	defer cancel()

	key, err := c.dataKey(ctx, userID, windowDays)
	if err != nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	c.redis.Set(ctx, key, raw, analyticsCacheTTL)
}

// Invalidate bumps the user's cache version, detaching all cached windows
func (c *AnalyticsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, cacheCallTimeout)
	defer cancel()
	return c.redis.Incr(ctx, c.versionKey(userID)).Err()
}

func (c *AnalyticsCache) dataKey(ctx context.Context, userID uuid.UUID, windowDays int) (string, error) {
	version, err := c.redis.Get(ctx, c.versionKey(userID)).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("analytics:%s:v%d:d%d", userID, version, windowDays), nil
}

func (c *AnalyticsCache) versionKey(userID uuid.UUID) string {
	return fmt.Sprintf("analytics:ver:%s", userID)
}
