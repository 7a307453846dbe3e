package readstore

import (
	"context"

	"pos-checkout/internal/infra"
	"pos-checkout/internal/infra/db"
	"pos-checkout/internal/pkg/pgconv"
	"pos-checkout/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

const listProductsSQL = `
SELECT id, name, category, size, price, quantity, updated_at
FROM products
ORDER BY category, name, size, id`

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(db db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: db}
}

func (r *ProductReadStore) ListProducts(ctx context.Context) ([]queries.ProductView, error) {
	rows, err := r.db.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	products := make([]queries.ProductView, 0)
	for rows.Next() {
		var (
			p         queries.ProductView
			qty       int32
			updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Size, &p.Price, &qty, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product", err)
		}
		p.Quantity = int(qty)
		p.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate products", err)
	}
	return products, nil
}
