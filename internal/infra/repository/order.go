package repository

import (
	"context"

	"pos-checkout/internal/domain/order"
	"pos-checkout/internal/infra"
	"pos-checkout/internal/infra/db"
	"pos-checkout/internal/infra/repository/converter"
	"pos-checkout/internal/pkg/pgconv"
	"pos-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	insertOrderSQL = `
INSERT INTO orders (created_at, total, buyer_label, idempotency_key)
VALUES ($1, $2, $3, $4)
RETURNING id`

	insertOrderItemsSQL = `
INSERT INTO order_items (order_id, product_id, name, size, unit_price, quantity)
SELECT $1, u.product_id, u.name, u.size, u.unit_price, u.quantity
FROM unnest($2::bigint[], $3::text[], $4::text[], $5::bigint[], $6::integer[])
    WITH ORDINALITY AS u(product_id, name, size, unit_price, quantity, line_no)
ORDER BY u.line_no`

	// Held until the transaction ends, so same-key checkouts run one after another.
	lockIdempotencyKeySQL = `
SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`

	orderByIdempotencyKeySQL = `
SELECT id, total FROM orders WHERE idempotency_key = $1`
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(db db.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (int64, error) {
	params := converter.OrderToCreateParams(o)

	var id int64
	err := r.db.QueryRow(ctx, insertOrderSQL,
		params.CreatedAt, params.Total, params.BuyerLabel, params.IdempotencyKey,
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to insert order", err)
	}

	cols := converter.OrderItemsToColumns(o.Items())
	tag, err := r.db.Exec(ctx, insertOrderItemsSQL,
		id, cols.ProductIDs, cols.Names, cols.Sizes, cols.UnitPrices, cols.Quantities)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to insert order items", err)
	}
	if tag.RowsAffected() != int64(len(cols.ProductIDs)) {
		return 0, infra.WrapRepoErr("order items were not fully written", nil, infra.KindDBFailure)
	}
	return id, nil
}

func (r *OrderRepository) LockIdempotencyKey(ctx context.Context, key uuid.UUID) error {
	if _, err := r.db.Exec(ctx, lockIdempotencyKeySQL, key.String()); err != nil {
		return infra.WrapRepoErr("failed to lock idempotency key", err)
	}
	return nil
}

func (r *OrderRepository) FindByIdempotencyKey(ctx context.Context, key uuid.UUID) (*shared.OrderRef, error) {
	var ref shared.OrderRef
	if err := r.db.QueryRow(ctx, orderByIdempotencyKeySQL, key).Scan(&ref.ID, &ref.Total); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found for idempotency key", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to look up order by idempotency key", err)
	}
	return &ref, nil
}
