package readstore

import (
	"context"

	"pos-checkout/internal/infra"
	"pos-checkout/internal/infra/db"
	"pos-checkout/internal/pkg/pgconv"
	"pos-checkout/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	findOrderSQL = `
SELECT id, created_at, total, buyer_label
FROM orders
WHERE id = $1`

	orderItemsSQL = `
SELECT product_id, name, size, unit_price, quantity
FROM order_items
WHERE order_id = $1
ORDER BY id`

	// beforeID = 0 means first page.
	listOrdersSQL = `
SELECT o.id, o.created_at, o.total, o.buyer_label, count(oi.id)
FROM orders o
JOIN order_items oi ON oi.order_id = o.id
WHERE $1::bigint = 0 OR o.id < $1::bigint
GROUP BY o.id
ORDER BY o.id DESC
LIMIT $2`
)

type OrderReadStore struct{}

func NewOrderReadStore() *OrderReadStore {
	return &OrderReadStore{}
}

func (r *OrderReadStore) FindOrder(ctx context.Context, db db.DBTX, id int64) (*queries.OrderView, error) {
	var (
		o          queries.OrderView
		createdAt  pgtype.Timestamptz
		buyerLabel pgtype.Text
	)
	err := db.QueryRow(ctx, findOrderSQL, id).Scan(&o.ID, &createdAt, &o.Total, &buyerLabel)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get order by id", err)
	}
	o.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	o.BuyerLabel = pgconv.StringPtrFromPgtype(buyerLabel)
	return &o, nil
}

func (r *OrderReadStore) ItemsByOrderID(ctx context.Context, db db.DBTX, orderID int64) ([]queries.OrderItemView, error) {
	rows, err := db.Query(ctx, orderItemsSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get order items", err)
	}
	defer rows.Close()

	items := make([]queries.OrderItemView, 0)
	for rows.Next() {
		var (
			it  queries.OrderItemView
			qty int32
		)
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Size, &it.UnitPrice, &qty); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		it.Quantity = int(qty)
		it.LineTotal = it.UnitPrice * int64(qty)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order items", err)
	}
	return items, nil
}

func (r *OrderReadStore) ListOrders(ctx context.Context, db db.DBTX, beforeID int64, limit int) ([]queries.OrderListItem, error) {
	rows, err := db.Query(ctx, listOrdersSQL, beforeID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	orders := make([]queries.OrderListItem, 0, limit)
	for rows.Next() {
		var (
			o          queries.OrderListItem
			createdAt  pgtype.Timestamptz
			buyerLabel pgtype.Text
			itemCount  int64
		)
		if err := rows.Scan(&o.ID, &createdAt, &o.Total, &buyerLabel, &itemCount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}
		o.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		o.BuyerLabel = pgconv.StringPtrFromPgtype(buyerLabel)
		o.ItemCount = int(itemCount)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate orders", err)
	}
	return orders, nil
}
