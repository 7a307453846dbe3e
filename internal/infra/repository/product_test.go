//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"

	"pos-checkout/internal/domain/catalog"
	"pos-checkout/internal/domain/order"
	"pos-checkout/internal/infra"
	"pos-checkout/internal/infra/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_DecrementIfAvailable(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		result     execResult
		expectOK   bool
		expectKind infra.RepositoryErrorKind
	}{
		{
			name:     "success: one row updated",
			result:   execResult{tag: pgconn.NewCommandTag("UPDATE 1")},
			expectOK: true,
		},
		{
			name:     "predicate failed: no row updated",
			result:   execResult{tag: pgconn.NewCommandTag("UPDATE 0")},
			expectOK: false,
		},
		{
			name:       "error: lock timeout is contention",
			result:     execResult{err: &pgconn.PgError{Code: "55P03"}},
			expectKind: infra.KindContention,
		},
		{
			name:       "error: unknown failure",
			result:     execResult{err: errors.New("connection reset")},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := &stubDBTX{execs: []execResult{tc.result}}
			repo := repository.NewProductRepository(db)

			ok, err := repo.DecrementIfAvailable(ctx, 7, 3)

			require.Len(t, db.calls, 1)
			assert.Equal(t, []any{int64(7), 3}, db.calls[0].args)
			assert.Contains(t, db.calls[0].sql, "quantity >= $2")

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectOK, ok)
		})
	}
}

func TestProductRepository_QuantityOf(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := repository.NewProductRepository(&stubDBTX{rows: []stubRow{{values: []any{int32(4)}}}})
		qty, err := repo.QuantityOf(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 4, qty)
	})

	t.Run("error: missing row is NOT_FOUND", func(t *testing.T) {
		repo := repository.NewProductRepository(&stubDBTX{rows: []stubRow{{err: pgx.ErrNoRows}}})
		_, err := repo.QuantityOf(ctx, 1)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("error: other failures", func(t *testing.T) {
		repo := repository.NewProductRepository(&stubDBTX{rows: []stubRow{{err: errors.New("boom")}}})
		_, err := repo.QuantityOf(ctx, 1)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestProductRepository_SnapshotByIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("returns only the rows found", func(t *testing.T) {
		db := &stubDBTX{query: []queryResult{{rows: &stubRows{data: [][]any{
			{int64(1), "Shirt", "M"},
			{int64(3), "Hoodie", "L"},
		}}}}}
		repo := repository.NewProductRepository(db)

		got, err := repo.SnapshotByIDs(ctx, []int64{1, 2, 3})

		require.NoError(t, err)
		assert.Equal(t, map[int64]order.ProductSnapshot{
			1: {Name: "Shirt", Size: "M"},
			3: {Name: "Hoodie", Size: "L"},
		}, got)
		assert.Equal(t, []any{[]int64{1, 2, 3}}, db.calls[0].args)
	})

	t.Run("error: query failure", func(t *testing.T) {
		repo := repository.NewProductRepository(&stubDBTX{query: []queryResult{{err: &pgconn.PgError{Code: "40001"}}}})
		_, err := repo.SnapshotByIDs(ctx, []int64{1})
		assert.True(t, infra.IsContention(err))
	})

	t.Run("error: iteration failure", func(t *testing.T) {
		repo := repository.NewProductRepository(&stubDBTX{query: []queryResult{{rows: &stubRows{err: errors.New("broken pipe")}}}})
		_, err := repo.SnapshotByIDs(ctx, []int64{1})
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestProductRepository_Upload(t *testing.T) {
	ctx := context.Background()

	shirt, err := catalog.NewProduct(1, "Shirt", "Tops", "M", 2000, 5)
	require.NoError(t, err)
	hat, err := catalog.NewProduct(2, "Cap", "Accessories", "", 1500, 2)
	require.NoError(t, err)

	t.Run("upsert binds one array per column", func(t *testing.T) {
		db := &stubDBTX{execs: []execResult{{tag: pgconn.NewCommandTag("INSERT 0 2")}}}
		repo := repository.NewProductRepository(db)

		require.NoError(t, repo.Upsert(ctx, []*catalog.Product{shirt, hat}))

		assert.Equal(t, []any{
			[]int64{1, 2},
			[]string{"Shirt", "Cap"},
			[]string{"Tops", "Accessories"},
			[]string{"M", ""},
			[]int64{2000, 1500},
			[]int32{5, 2},
		}, db.calls[0].args)
	})

	t.Run("upsert maps check violations", func(t *testing.T) {
		repo := repository.NewProductRepository(&stubDBTX{execs: []execResult{{err: &pgconn.PgError{Code: "23514"}}}})
		err := repo.Upsert(ctx, []*catalog.Product{shirt})
		assert.True(t, infra.IsKind(err, infra.KindCheckViolated))
	})

	t.Run("delete all reports rows removed", func(t *testing.T) {
		repo := repository.NewProductRepository(&stubDBTX{execs: []execResult{{tag: pgconn.NewCommandTag("DELETE 12")}}})
		n, err := repo.DeleteAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(12), n)
	})

	t.Run("count", func(t *testing.T) {
		repo := repository.NewProductRepository(&stubDBTX{rows: []stubRow{{values: []any{int64(3)}}}})
		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})
}
