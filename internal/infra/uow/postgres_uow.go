package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pos-checkout/internal/infra"
	"pos-checkout/internal/infra/db"
	"pos-checkout/internal/infra/repository"
	"pos-checkout/internal/pkg/config"
	"pos-checkout/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUoW struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, cfg config.Config) *PostgresUoW {
	return &PostgresUoW{
		pool:        pool,
		lockTimeout: cfg.DB.LockTimeout,
	}
}

// ReadCommitted is enough here: every stock write is a conditional UPDATE whose
// predicate is re-evaluated against the latest committed row version.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}

	if u.lockTimeout > 0 {
		if _, err = pgxTx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)", db.Millis(u.lockTimeout)); err != nil {
			u.rollback(ctx, pgxTx)
			return infra.WrapRepoErr("failed to set lock timeout", err)
		}
	}

	tx := &pgTx{dbtx: pgxTx}

	if err = fn(ctx, tx); err != nil {
		u.rollback(ctx, pgxTx)
		return err
	}

	if err = pgxTx.Commit(ctx); err != nil {
		u.rollback(ctx, pgxTx)
		return infra.WrapRepoErr("failed to commit transaction", err)
	}
	return nil
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return infra.WrapRepoErr("failed to begin read-only transaction", err)
	}

	defer u.rollback(ctx, pgxTx)

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit read-only transaction", err)
	}
	return nil
}

// Rollback uses a detached context so an abandoned request still releases its locks.
func (u *PostgresUoW) rollback(ctx context.Context, pgxTx pgx.Tx) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := pgxTx.Rollback(rctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Warn("rollback failed", "error", err.Error())
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	productRepo shared.ProductRepository
	orderRepo   shared.OrderRepository
}

func (t *pgTx) Products() shared.ProductRepository {
	if t.productRepo == nil {
		t.productRepo = repository.NewProductRepository(t.dbtx)
	}
	return t.productRepo
}

func (t *pgTx) Orders() shared.OrderRepository {
	if t.orderRepo == nil {
		t.orderRepo = repository.NewOrderRepository(t.dbtx)
	}
	return t.orderRepo
}
