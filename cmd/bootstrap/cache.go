package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"pos-checkout/internal/infra/cache"
	"pos-checkout/internal/pkg/config"
	"pos-checkout/internal/usecase/commands"
	"pos-checkout/internal/usecase/queries"

	"go.uber.org/fx"
)

// CatalogCache is both the read-through snapshot and the invalidation hook.
type CatalogCache interface {
	queries.CatalogCache
	commands.CatalogInvalidator
}

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewCatalogCache,
		func(c CatalogCache) queries.CatalogCache { return c },
		func(c CatalogCache) commands.CatalogInvalidator { return c },
	),
)

func NewCatalogCache(lc fx.Lifecycle, cfg config.Config) CatalogCache {
	if cfg.Redis.Addr == "" {
		slog.Info("catalog cache disabled")
		return cache.NewNopCatalogCache()
	}

	rdb := cache.NewRedisClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			// The cache is optional; an unreachable Redis only costs hit rate.
			if err := rdb.Ping(pctx).Err(); err != nil {
				slog.Warn("redis unreachable, catalog reads will go to the database", "addr", cfg.Redis.Addr, "error", err.Error())
				return nil
			}
			slog.Info("catalog cache connected", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CatalogTTL)
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return cache.NewRedisCatalogCache(rdb, cfg.Redis)
}
