package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nbasharp/nba-sharp-go/internal/models"
)

const projectionKeyPrefix = "projections:"

// ProjectionCache keeps the latest projection run per date so API reads
// skip the database for the common case.
type ProjectionCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewProjectionCache creates a projection cache.
func NewProjectionCache(redisClient *redis.Client, ttl time.Duration) *ProjectionCache {
	return &ProjectionCache{redis: redisClient, ttl: ttl}
}

func projectionKey(gameDate time.Time) string {
	return projectionKeyPrefix + gameDate.Format("2006-01-02")
}

// Save stores a run's rows for a game date.
func (c *ProjectionCache) Save(ctx context.Context, gameDate time.Time, rows []*models.PlayerProjection) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode projections: %w", err)
	}
	if err := c.redis.Set(ctx, projectionKey(gameDate), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store projections: %w", err)
	}
	return nil
}

// Load returns the cached rows for a game date, or ErrNotFound.
func (c *ProjectionCache) Load(ctx context.Context, gameDate time.Time) ([]*models.PlayerProjection, error) {
	data, err := c.redis.Get(ctx, projectionKey(gameDate)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load projections: %w", err)
	}
	var rows []*models.PlayerProjection
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode projections: %w", err)
	}
	return rows, nil
}

// Invalidate drops the cached rows for a game date.
func (c *ProjectionCache) Invalidate(ctx context.Context, gameDate time.Time) error {
	return c.redis.Del(ctx, projectionKey(gameDate)).Err()
}
