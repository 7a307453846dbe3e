//go:build e2e

package cache_test

import (
	"context"
	"testing"
	"time"

	"pos-checkout/internal/infra/cache"
	"pos-checkout/internal/pkg/config"
	"pos-checkout/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	endpoint, err := c.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

func TestRedisCatalogCache(t *testing.T) {
	ctx := context.Background()
	cfg := config.RedisConfig{Addr: startRedis(t), CatalogTTL: time.Minute}
	rdb := cache.NewRedisClient(cfg)
	t.Cleanup(func() { _ = rdb.Close() })
	c := cache.NewRedisCatalogCache(rdb, cfg)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "empty cache is a miss")

	snapshot := []queries.ProductView{
		{ID: 1, Name: "Shirt", Category: "Tops", Size: "M", Price: 2000, Quantity: 5, UpdatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Cap", Price: 1500},
	}
	require.NoError(t, c.Set(ctx, snapshot))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snapshot, got)

	ttl, err := rdb.TTL(ctx, cache.KeyCatalogSnapshot).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
