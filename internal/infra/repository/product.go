package repository

import (
	"context"

	"pos-checkout/internal/domain/catalog"
	"pos-checkout/internal/domain/order"
	"pos-checkout/internal/infra"
	"pos-checkout/internal/infra/db"
	"pos-checkout/internal/infra/repository/converter"
	"pos-checkout/internal/pkg/pgconv"
)

const (
	snapshotProductsByIDsSQL = `
SELECT id, name, size
FROM products
WHERE id = ANY($1::bigint[])`

	// The predicate and the write are one statement, so concurrent checkouts cannot both pass it.
	decrementIfAvailableSQL = `
UPDATE products
SET quantity = quantity - $2, updated_at = now()
WHERE id = $1 AND quantity >= $2`

	productQuantitySQL = `
SELECT quantity FROM products WHERE id = $1`

	upsertProductsSQL = `
INSERT INTO products (id, name, category, size, price, quantity)
SELECT * FROM unnest($1::bigint[], $2::text[], $3::text[], $4::text[], $5::bigint[], $6::integer[])
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    category = EXCLUDED.category,
    size = EXCLUDED.size,
    price = EXCLUDED.price,
    quantity = EXCLUDED.quantity,
    updated_at = now()`

	deleteAllProductsSQL = `DELETE FROM products`

	countProductsSQL = `SELECT count(*) FROM products`
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(db db.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) SnapshotByIDs(ctx context.Context, ids []int64) (map[int64]order.ProductSnapshot, error) {
	rows, err := r.db.Query(ctx, snapshotProductsByIDsSQL, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load products by ids", err)
	}
	defer rows.Close()

	out := make(map[int64]order.ProductSnapshot, len(ids))
	for rows.Next() {
		var (
			id   int64
			snap order.ProductSnapshot
		)
		if err := rows.Scan(&id, &snap.Name, &snap.Size); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product snapshot", err)
		}
		out[id] = snap
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate product snapshots", err)
	}
	return out, nil
}

func (r *ProductRepository) DecrementIfAvailable(ctx context.Context, id int64, qty int) (bool, error) {
	tag, err := r.db.Exec(ctx, decrementIfAvailableSQL, id, qty)
	if err != nil {
		return false, infra.WrapRepoErr("failed to decrement product quantity", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ProductRepository) QuantityOf(ctx context.Context, id int64) (int, error) {
	var qty int32
	if err := r.db.QueryRow(ctx, productQuantitySQL, id).Scan(&qty); err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to read product quantity", err)
	}
	return int(qty), nil
}

func (r *ProductRepository) Upsert(ctx context.Context, products []*catalog.Product) error {
	cols := converter.ProductsToColumns(products)
	_, err := r.db.Exec(ctx, upsertProductsSQL,
		cols.IDs, cols.Names, cols.Categories, cols.Sizes, cols.Prices, cols.Quantities)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert products", err)
	}
	return nil
}

func (r *ProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteAllProductsSQL)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete products", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, countProductsSQL).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count products", err)
	}
	return n, nil
}
