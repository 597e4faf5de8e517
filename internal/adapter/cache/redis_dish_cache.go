package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	domain "github.com/MAKHFIRAT2408/food/internal/entity"
	"github.com/MAKHFIRAT2408/food/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// RedisDishCache is a read-through cache for catalog lookups on the
// add-to-cart path. A stale price here only affects NEW snapshots; lines
// already in a cart keep the price they were added at.
type RedisDishCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDishCache(rdb *redis.Client, ttl time.Duration) *RedisDishCache {
	return &RedisDishCache{rdb: rdb, ttl: ttl}
}

func (c *RedisDishCache) Get(ctx context.Context, dishID int64) (*domain.Dish, bool, error) {
	raw, err := c.rdb.Get(ctx, dishKey(dishID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var d domain.Dish
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, false, err
	}
	return &d, true, nil
}

func (c *RedisDishCache) Set(ctx context.Context, dish *domain.Dish) error {
	raw, err := json.Marshal(dish)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, dishKey(dish.ID), raw, c.ttl).Err()
}

func dishKey(id int64) string { return "dish:" + strconv.FormatInt(id, 10) }

var _ usecase.DishCache = (*RedisDishCache)(nil)
