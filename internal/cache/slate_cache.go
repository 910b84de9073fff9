// Package cache holds the Redis-backed working state of the pipeline: the
// most recently uploaded slate and the latest projection run per date.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nbasharp/nba-sharp-go/internal/models"
)

const slateKeyPrefix = "slate:"

// ErrNotFound is returned when no cached value exists for the key.
var ErrNotFound = fmt.Errorf("cache: not found")

// SlateCache stores the uploaded slate per game date so scheduled runs can
// pick it up without a re-upload.
type SlateCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewSlateCache creates a slate cache. A zero ttl keeps slates until
// overwritten.
func NewSlateCache(redisClient *redis.Client, ttl time.Duration) *SlateCache {
	return &SlateCache{redis: redisClient, ttl: ttl}
}

func slateKey(gameDate time.Time) string {
	return slateKeyPrefix + gameDate.Format("2006-01-02")
}

// Save stores the slate for a game date, replacing any prior upload.
func (c *SlateCache) Save(ctx context.Context, gameDate time.Time, entries []models.SlateEntry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode slate: %w", err)
	}
	if err := c.redis.Set(ctx, slateKey(gameDate), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store slate: %w", err)
	}
	return nil
}

// Load returns the stored slate for a game date, or ErrNotFound.
func (c *SlateCache) Load(ctx context.Context, gameDate time.Time) ([]models.SlateEntry, error) {
	data, err := c.redis.Get(ctx, slateKey(gameDate)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slate: %w", err)
	}
	var entries []models.SlateEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode slate: %w", err)
	}
	return entries, nil
}
