package queries

import (
	"context"
	"log/slog"
)

type CatalogReadStore interface {
	ListProducts(ctx context.Context) ([]ProductView, error)
}

// CatalogCache holds the last catalog snapshot. A miss is (nil, false, nil).
type CatalogCache interface {
	Get(ctx context.Context) ([]ProductView, bool, error)
	Set(ctx context.Context, products []ProductView) error
}

type CatalogQueries interface {
	ListProducts(ctx context.Context) ([]ProductView, error)
	// StockLevels maps product id to quantity on hand from the current snapshot, which may be cached.
	StockLevels(ctx context.Context) (map[int64]int, error)
	// FreshStockLevels reads committed quantities from the database and refills the cache.
	FreshStockLevels(ctx context.Context) (map[int64]int, error)
}

type catalogQueriesImpl struct {
	store CatalogReadStore
	cache CatalogCache
}

func NewCatalogQueries(store CatalogReadStore, cache CatalogCache) CatalogQueries {
	return &catalogQueriesImpl{store: store, cache: cache}
}

func (q *catalogQueriesImpl) ListProducts(ctx context.Context) ([]ProductView, error) {
	cached, ok, err := q.cache.Get(ctx)
	if err != nil {
		slog.Warn("catalog cache read failed", "error", err.Error())
	}
	if ok {
		return cached, nil
	}

	return q.reload(ctx)
}

func (q *catalogQueriesImpl) reload(ctx context.Context) ([]ProductView, error) {
	products, err := q.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if err := q.cache.Set(ctx, products); err != nil {
		slog.Warn("catalog cache write failed", "error", err.Error())
	}
	return products, nil
}

func (q *catalogQueriesImpl) StockLevels(ctx context.Context) (map[int64]int, error) {
	products, err := q.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return stockLevels(products), nil
}

func (q *catalogQueriesImpl) FreshStockLevels(ctx context.Context) (map[int64]int, error) {
	products, err := q.reload(ctx)
	if err != nil {
		return nil, err
	}
	return stockLevels(products), nil
}

func stockLevels(products []ProductView) map[int64]int {
	levels := make(map[int64]int, len(products))
	for _, p := range products {
		levels[p.ID] = p.Quantity
	}
	return levels
}
