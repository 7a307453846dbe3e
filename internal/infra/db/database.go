package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pos-checkout/internal/pkg/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func Connect(cfg config.DBConfig) (*pgxpool.Pool, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.BuildDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.HealthCheckPeriod = 30 * time.Second

	for k, v := range SessionParams(cfg) {
		poolCfg.ConnConfig.RuntimeParams[k] = v
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	cleanup := func() {
		pool.Close()
		slog.Info("database pool closed")
	}

	return pool, cleanup, nil
}

// SessionParams are the per-connection defaults; the checkout transaction
// also sets lock_timeout locally.
func SessionParams(cfg config.DBConfig) map[string]string {
	params := make(map[string]string, 2)
	if cfg.LockTimeout > 0 {
		params["lock_timeout"] = Millis(cfg.LockTimeout)
	}
	if cfg.StatementTimeout > 0 {
		params["statement_timeout"] = Millis(cfg.StatementTimeout)
	}
	return params
}

// Millis renders d the way Postgres timeout settings expect it.
func Millis(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
