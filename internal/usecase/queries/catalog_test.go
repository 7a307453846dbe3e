//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"pos-checkout/internal/usecase/queries"
	"pos-checkout/tests/common/builder"
	queriesmock "pos-checkout/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCatalogQueries_ListProducts(t *testing.T) {
	ctx := context.Background()
	shirt := builder.NewProductBuilder().BuildView()
	hat := builder.NewProductBuilder().With(func(b *builder.ProductBuilder) {
		b.ID = 2
		b.Name = "Cap"
		b.Quantity = 0
	}).BuildView()
	fromDB := []queries.ProductView{shirt, hat}

	testCases := []struct {
		name          string
		setupMocks    func(*queriesmock.MockCatalogReadStore, *queriesmock.MockCatalogCache)
		expected      []queries.ProductView
		expectedError bool
	}{
		{
			name: "cache hit skips the database",
			setupMocks: func(store *queriesmock.MockCatalogReadStore, cache *queriesmock.MockCatalogCache) {
				cache.EXPECT().Get(ctx).Return([]queries.ProductView{shirt}, true, nil)
			},
			expected: []queries.ProductView{shirt},
		},
		{
			name: "cache miss reads and fills",
			setupMocks: func(store *queriesmock.MockCatalogReadStore, cache *queriesmock.MockCatalogCache) {
				gomock.InOrder(
					cache.EXPECT().Get(ctx).Return(nil, false, nil),
					store.EXPECT().ListProducts(ctx).Return(fromDB, nil),
					cache.EXPECT().Set(ctx, fromDB).Return(nil),
				)
			},
			expected: fromDB,
		},
		{
			name: "cache faults fall through to the database",
			setupMocks: func(store *queriesmock.MockCatalogReadStore, cache *queriesmock.MockCatalogCache) {
				cache.EXPECT().Get(ctx).Return(nil, false, errors.New("redis down"))
				store.EXPECT().ListProducts(ctx).Return(fromDB, nil)
				cache.EXPECT().Set(ctx, fromDB).Return(errors.New("redis down"))
			},
			expected: fromDB,
		},
		{
			name: "error: database failure is returned and not cached",
			setupMocks: func(store *queriesmock.MockCatalogReadStore, cache *queriesmock.MockCatalogCache) {
				cache.EXPECT().Get(ctx).Return(nil, false, nil)
				store.EXPECT().ListProducts(ctx).Return(nil, errors.New("connection refused"))
			},
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockCatalogReadStore(ctrl)
			cache := queriesmock.NewMockCatalogCache(ctrl)
			tc.setupMocks(store, cache)

			q := queries.NewCatalogQueries(store, cache)
			actual, err := q.ListProducts(ctx)

			if tc.expectedError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestCatalogQueries_StockLevels(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockCatalogReadStore(ctrl)
	cache := queriesmock.NewMockCatalogCache(ctrl)

	cache.EXPECT().Get(ctx).Return([]queries.ProductView{
		builder.NewProductBuilder().BuildView(),
		builder.NewProductBuilder().With(func(b *builder.ProductBuilder) { b.ID = 3; b.Quantity = 0 }).BuildView(),
	}, true, nil)

	levels, err := queries.NewCatalogQueries(store, cache).StockLevels(ctx)

	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 5, 3: 0}, levels)
}

func TestCatalogQueries_FreshStockLevels(t *testing.T) {
	ctx := context.Background()

	t.Run("bypasses the cache and refills it", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockCatalogReadStore(ctrl)
		cache := queriesmock.NewMockCatalogCache(ctrl)
		fromDB := []queries.ProductView{
			builder.NewProductBuilder().With(func(b *builder.ProductBuilder) { b.Quantity = 10 }).BuildView(),
		}

		cache.EXPECT().Get(gomock.Any()).Times(0)
		gomock.InOrder(
			store.EXPECT().ListProducts(ctx).Return(fromDB, nil),
			cache.EXPECT().Set(ctx, fromDB).Return(nil),
		)

		levels, err := queries.NewCatalogQueries(store, cache).FreshStockLevels(ctx)

		require.NoError(t, err)
		assert.Equal(t, map[int64]int{1: 10}, levels)
	})

	t.Run("database errors are returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockCatalogReadStore(ctrl)
		cache := queriesmock.NewMockCatalogCache(ctrl)

		store.EXPECT().ListProducts(ctx).Return(nil, errors.New("connection refused"))

		_, err := queries.NewCatalogQueries(store, cache).FreshStockLevels(ctx)
		require.Error(t, err)
	})
}
