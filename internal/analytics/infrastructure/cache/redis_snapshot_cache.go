package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tendhq/tend/internal/analytics/application/services"
)

// RedisSnapshotCache stores rendered dashboards in Redis, keyed by the
// content hash of their inputs. A stale hash simply never gets hit
// again, so entries expire instead of being invalidated.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisSnapshotCache creates a new RedisSnapshotCache.
func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisSnapshotCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisSnapshotCache{client: client, ttl: ttl, logger: logger}
}

func snapshotKey(userID uuid.UUID, fingerprint string) string {
	return fmt.Sprintf("tend:dashboard:%s:%s", userID, fingerprint)
}

// Get returns the cached dashboard for the fingerprint, if present.
// Cache failures are treated as misses.
func (c *RedisSnapshotCache) Get(ctx context.Context, userID uuid.UUID, fingerprint string) (*services.DashboardView, bool) {
	raw, err := c.client.Get(ctx, snapshotKey(userID, fingerprint)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("dashboard cache read failed", "error", err)
		}
		return nil, false
	}

	var view services.DashboardView
	if err := json.Unmarshal(raw, &view); err != nil {
		c.logger.Warn("dashboard cache entry corrupt", "error", err)
		return nil, false
	}
	return &view, true
}

// Set stores a rendered dashboard. Failures are logged and ignored; the
// cache is an optimization, never a dependency.
func (c *RedisSnapshotCache) Set(ctx context.Context, userID uuid.UUID, fingerprint string, view *services.DashboardView) {
	raw, err := json.Marshal(view)
	if err != nil {
		c.logger.Warn("dashboard cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, snapshotKey(userID, fingerprint), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("dashboard cache write failed", "error", err)
	}
}

// Invalidate drops every cached dashboard for the user. Fingerprinting
// already prevents stale hits; this just reclaims space early when we
// know the inputs changed.
func (c *RedisSnapshotCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("tend:dashboard:%s:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan dashboard cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete dashboard cache entries: %w", err)
	}
	return nil
}
