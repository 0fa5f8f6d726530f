package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const ratingTTL = 10 * time.Minute

// RatingCache memoizes computed title ratings. With a nil client every
// lookup misses, which keeps the cache strictly optional.
type RatingCache struct {
	client *redis.Client
}

// NewRatingCache wraps a Redis client; client may be nil.
func NewRatingCache(client *redis.Client) *RatingCache {
	return &RatingCache{client: client}
}

func ratingKey(titleID uint) string {
	return fmt.Sprintf("title_rating:%d", titleID)
}

// Get returns the cached rating and whether it was present. A cached "none"
// sentinel (title known to have no reviews) comes back as (nil, true).
func (c *RatingCache) Get(ctx context.Context, titleID uint) (*float64, bool) {
	if c.client == nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, ratingKey(titleID)).Result()
	if err != nil {
		return nil, false
	}
	if val == "none" {
		return nil, true
	}

	rating, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, false
	}
	return &rating, true
}

// Set stores a computed rating; nil means the title has no reviews.
func (c *RatingCache) Set(ctx context.Context, titleID uint, rating *float64) {
	if c.client == nil {
		return
	}

	val := "none"
	if rating != nil {
		val = strconv.FormatFloat(*rating, 'f', -1, 64)
	}
	// Best effort; a miss recomputes.
	_ = c.client.Set(ctx, ratingKey(titleID), val, ratingTTL).Err()
}

// Invalidate drops the cached rating after any review mutation so the next
// read recomputes it.
func (c *RatingCache) Invalidate(ctx context.Context, titleID uint) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, ratingKey(titleID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
