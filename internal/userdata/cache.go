// internal/userdata/cache.go
package userdata

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"careerfit-workers/internal/common/logger"
	"careerfit-workers/internal/common/metrics"
	"careerfit-workers/internal/models"
)

const cacheKeyPrefix = "career:userdata:"

// CachedSource keeps recently loaded datasets in Redis. Cache failures are
// logged and the inner source is used instead.
type CachedSource struct {
	inner  Source
	redis  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSource(inner Source, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{
		inner:  inner,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "userdata-cache"}),
	}
}

func CacheKey(userID string) string {
	return cacheKeyPrefix + userID
}

func (c *CachedSource) Load(ctx context.Context, userID string) (*models.UserData, error) {
	key := CacheKey(userID)

	val, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var data models.UserData
		if uerr := json.Unmarshal([]byte(val), &data); uerr == nil {
			metrics.UserDataCache.WithLabelValues("hit").Inc()
			return &data, nil
		}
		c.logger.Warn("discarding unreadable cache entry", map[string]interface{}{"key": key})
		metrics.UserDataCache.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.UserDataCache.WithLabelValues("miss").Inc()
	default:
		c.logger.Warn("user data cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		metrics.UserDataCache.WithLabelValues("error").Inc()
	}

	data, err := c.inner.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return data, nil
	}
	if err := c.redis.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("user data cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return data, nil
}

// Invalidate drops the cached dataset for a user.
func (c *CachedSource) Invalidate(ctx context.Context, userID string) error {
	return c.redis.Del(ctx, CacheKey(userID)).Err()
}
