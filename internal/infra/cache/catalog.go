package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pos-checkout/internal/infra"
	"pos-checkout/internal/pkg/config"
	"pos-checkout/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

// catalog:snapshot:v1 -> JSON array of products
const KeyCatalogSnapshot = "catalog:snapshot:v1"

type RedisCatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCatalogCache(rdb *redis.Client, cfg config.RedisConfig) *RedisCatalogCache {
	return &RedisCatalogCache{rdb: rdb, ttl: cfg.CatalogTTL}
}

func (c *RedisCatalogCache) Get(ctx context.Context) ([]queries.ProductView, bool, error) {
	raw, err := c.rdb.Get(ctx, KeyCatalogSnapshot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, infra.WrapRepoErr("failed to read catalog snapshot", err, infra.KindDBFailure)
	}

	var products []queries.ProductView
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false, infra.WrapRepoErr("failed to decode catalog snapshot", err, infra.KindDBFailure)
	}
	return products, true, nil
}

func (c *RedisCatalogCache) Set(ctx context.Context, products []queries.ProductView) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return infra.WrapRepoErr("failed to encode catalog snapshot", err, infra.KindDBFailure)
	}
	if err := c.rdb.Set(ctx, KeyCatalogSnapshot, raw, c.ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to write catalog snapshot", err, infra.KindDBFailure)
	}
	return nil
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, KeyCatalogSnapshot).Err(); err != nil {
		return infra.WrapRepoErr("failed to delete catalog snapshot", err, infra.KindDBFailure)
	}
	return nil
}

// NopCatalogCache is used when no Redis address is configured.
type NopCatalogCache struct{}

func NewNopCatalogCache() *NopCatalogCache { return &NopCatalogCache{} }

func (NopCatalogCache) Get(context.Context) ([]queries.ProductView, bool, error) { return nil, false, nil }
func (NopCatalogCache) Set(context.Context, []queries.ProductView) error         { return nil }
func (NopCatalogCache) Invalidate(context.Context) error                         { return nil }

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}
