// Package cache holds the whole-page response cache. Rendered HTML is stored
// as an opaque blob keyed by request path; within the TTL repeated requests
// are served the stored bytes even if the underlying data changed.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/inkwell/pkg/logger"
)

const keyPrefix = "page:"

// PageCache is injected into the handler layer; there is no package-level
// singleton.
type PageCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPageCache(rdb *redis.Client, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = 20 * time.Second
	}
	return &PageCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached body for path, if any. Cache errors degrade to a
// miss; the page is simply re-rendered.
func (c *PageCache) Get(ctx context.Context, path string) ([]byte, bool) {
	body, err := c.rdb.Get(ctx, keyPrefix+path).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("page cache get failed", zap.String("path", path), zap.Error(err))
		}
		return nil, false
	}
	return body, true
}

// Set stores the rendered body for path for the configured TTL. Last write
// wins; concurrent renders of the same path need no coordination.
func (c *PageCache) Set(ctx context.Context, path string, body []byte) {
	if err := c.rdb.Set(ctx, keyPrefix+path, body, c.ttl).Err(); err != nil {
		logger.Warn("page cache set failed", zap.String("path", path), zap.Error(err))
	}
}

// Clear drops every cached page. The next request re-renders from current
// state.
func (c *PageCache) Clear(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// TTL exposes the configured staleness window.
func (c *PageCache) TTL() time.Duration { return c.ttl }
