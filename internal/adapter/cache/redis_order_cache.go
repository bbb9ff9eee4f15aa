package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/marcelokanu/gostock-orders/internal/entity"
	"github.com/marcelokanu/gostock-orders/internal/usecase"
)

// RedisOrderCache holds committed orders for the read path. Orders are
// immutable once committed, so a cached copy can never go stale.
type RedisOrderCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisOrderCache(rdb *redis.Client, ttl time.Duration) *RedisOrderCache {
	return &RedisOrderCache{rdb: rdb, ttl: ttl}
}

func (c *RedisOrderCache) SetOrder(ctx context.Context, o *domain.Order) error {
	b, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, "order:"+o.ID, b, c.ttl).Err()
}

func (c *RedisOrderCache) GetOrder(ctx context.Context, id string) (*domain.Order, bool, error) {
	b, err := c.rdb.Get(ctx, "order:"+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var o domain.Order
	if err := json.Unmarshal(b, &o); err != nil {
		return nil, false, err
	}
	return &o, true, nil
}

var _ usecase.OrderCache = (*RedisOrderCache)(nil)
