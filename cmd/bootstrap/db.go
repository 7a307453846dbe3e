package bootstrap

import (
	"context"
	"log/slog"

	"pos-checkout/internal/infra/db"
	"pos-checkout/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// NewDB opens the stock pool. Every session carries the configured
// lock_timeout, so a blocked stock row or idempotency lock surfaces as
// contention instead of hanging the checkout.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			params := db.SessionParams(cfg.DB)
			logger.Info("database pool ready",
				"host", cfg.DB.Host,
				"database", cfg.DB.DBName,
				"max_conns", pool.Config().MaxConns,
				"min_conns", pool.Config().MinConns,
				"lock_timeout", params["lock_timeout"],
				"statement_timeout", params["statement_timeout"])
			return nil
		},
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
