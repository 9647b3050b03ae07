package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ariefcatur/go-order-lookup/internal/orders"
	"github.com/redis/go-redis/v9"
)

// OrderCache keeps whole orders in Redis keyed by order_uid.
type OrderCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewOrderCache(rdb *redis.Client, ttl time.Duration) *OrderCache {
	if ttl <= 0 {
		ttl = TTLOrderCache
	}
	return &OrderCache{rdb: rdb, ttl: ttl}
}

// Get returns (nil, false, nil) on a miss.
func (c *OrderCache) Get(ctx context.Context, orderUID string) (*orders.Order, bool, error) {
	b, err := c.rdb.Get(ctx, fmt.Sprintf(KeyOrder, orderUID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var o orders.Order
	if err := json.Unmarshal(b, &o); err != nil {
		// a corrupt entry is a miss; the caller will refill it
		return nil, false, nil
	}
	return &o, true, nil
}

func (c *OrderCache) Set(ctx context.Context, o *orders.Order) error {
	b, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, fmt.Sprintf(KeyOrder, o.OrderUID), b, c.ttl).Err()
}

// Restore writes all orders in one pipeline. Used for warm-up at boot.
func (c *OrderCache) Restore(ctx context.Context, list []*orders.Order) error {
	if len(list) == 0 {
		return nil
	}
	pipe := c.rdb.Pipeline()
	for _, o := range list {
		b, err := json.Marshal(o)
		if err != nil {
			return err
		}
		pipe.Set(ctx, fmt.Sprintf(KeyOrder, o.OrderUID), b, c.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Keys lists cached order uids.
func (c *OrderCache) Keys(ctx context.Context) ([]string, error) {
	out := []string{}
	iter := c.rdb.Scan(ctx, 0, PatternOrder, 100).Iterator()
	for iter.Next(ctx) {
		out = append(out, strings.TrimPrefix(iter.Val(), "order:"))
	}
	return out, iter.Err()
}
