package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/MAKHFIRAT2408/food/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// RedisStatusCache mirrors the latest order status. Written best-effort on
// every transition; MySQL stays the source of truth.
type RedisStatusCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStatusCache(rdb *redis.Client, ttl time.Duration) *RedisStatusCache {
	return &RedisStatusCache{rdb: rdb, ttl: ttl}
}

func (c *RedisStatusCache) SetStatus(ctx context.Context, orderID int64, status string) error {
	return c.rdb.Set(ctx, statusKey(orderID), status, c.ttl).Err()
}

func (c *RedisStatusCache) GetStatus(ctx context.Context, orderID int64) (string, bool, error) {
	val, err := c.rdb.Get(ctx, statusKey(orderID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func statusKey(orderID int64) string { return "order:status:" + strconv.FormatInt(orderID, 10) }

var _ usecase.StatusCache = (*RedisStatusCache)(nil)
