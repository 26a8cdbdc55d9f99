package cache

import (
	"context"
	"errors"
	"time"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// RedisThumbnailCache never surfaces Redis errors; a failing cache is a miss.
type RedisThumbnailCache struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisThumbnailCache(rdb *redis.Client, prefix string) *RedisThumbnailCache {
	return &RedisThumbnailCache{rdb: rdb, prefix: prefix}
}

var _ repositories.ThumbnailCache = (*RedisThumbnailCache)(nil)

func (c *RedisThumbnailCache) Get(ctx context.Context, vimeoID string) (string, bool) {
	val, err := c.rdb.Get(ctx, c.prefix+vimeoID).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Debugf("thumbnail cache get %s: %v", vimeoID, err)
		}
		return "", false
	}
	return val, true
}

func (c *RedisThumbnailCache) Set(ctx context.Context, vimeoID, link string, ttl time.Duration) {
	if err := c.rdb.Set(ctx, c.prefix+vimeoID, link, ttl).Err(); err != nil {
		logger.Debugf("thumbnail cache set %s: %v", vimeoID, err)
	}
}
