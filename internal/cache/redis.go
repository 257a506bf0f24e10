package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/ikkim/vibecommerce-backend/internal/app/model"
	"github.com/redis/go-redis/v9"
)

type RedisProductCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisProductCache(client *redis.Client, baseTTL time.Duration) *RedisProductCache {
	if baseTTL <= 0 {
		baseTTL = 15 * time.Minute
	}
	return &RedisProductCache{
		client:  client,
		baseTTL: baseTTL,
	}
}

func (r *RedisProductCache) Get(ctx context.Context, productID string) (*model.Product, error) {
	data, err := r.client.Get(ctx, cacheKey(productID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var product model.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("unmarshal product failed: %w", err)
	}
	return &product, nil
}

func (r *RedisProductCache) Set(ctx context.Context, product *model.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}
	if err := r.client.Set(ctx, cacheKey(product.ID), data, r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// SetMany writes all products in one pipeline.
func (r *RedisProductCache) SetMany(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	pipe := r.client.Pipeline()
	for i := range products {
		data, err := json.Marshal(&products[i])
		if err != nil {
			return fmt.Errorf("marshal product failed: %w", err)
		}
		pipe.Set(ctx, cacheKey(products[i].ID), data, r.ttl())
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline failed: %w", err)
	}
	return nil
}

// ttl spreads expiries so warmed entries do not all lapse together.
func (r *RedisProductCache) ttl() time.Duration {
	jitter := time.Duration(rand.Int63n(int64(r.baseTTL/5) + 1))
	return r.baseTTL + jitter
}

func cacheKey(productID string) string {
	return fmt.Sprintf("catalog:product:%s", productID)
}
