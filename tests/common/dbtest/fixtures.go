//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ProductRow struct {
	ID       int64
	Name     string
	Category string
	Size     string
	Price    int64
	Quantity int
}

func CreateTestProduct(t *testing.T, db DBLike, p ProductRow) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`INSERT INTO products (id, name, category, size, price, quantity) VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Category, p.Size, p.Price, p.Quantity)
	require.NoError(t, err)
}

func ProductQuantity(t *testing.T, db DBLike, id int64) int {
	t.Helper()

	var qty int32
	err := db.QueryRow(context.Background(), "SELECT quantity FROM products WHERE id = $1", id).Scan(&qty)
	require.NoError(t, err)
	return int(qty)
}

func CountOrders(t *testing.T, db DBLike) int {
	t.Helper()

	var n int64
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM orders").Scan(&n)
	require.NoError(t, err)
	return int(n)
}

func CountOrderItems(t *testing.T, db DBLike, orderID int64) int {
	t.Helper()

	var n int64
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM order_items WHERE order_id = $1", orderID).Scan(&n)
	require.NoError(t, err)
	return int(n)
}

// inserts the small catalog most scenarios start from
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO products (id, name, category, size, price, quantity) VALUES
		    (1, 'Shirt', 'Tops', 'M', 2000, 5),
		    (2, 'Cap', 'Accessories', 'Free', 1500, 2),
		    (3, 'Hoodie', 'Tops', 'L', 5000, 0)
		ON CONFLICT (id) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
