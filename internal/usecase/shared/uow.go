package shared

import (
	"context"

	"pos-checkout/internal/domain/catalog"
	"pos-checkout/internal/domain/order"
	"pos-checkout/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: one read-committed transaction, committed when fn returns nil and rolled back otherwise.
	// It does not retry; callers decide via the retry policy.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Products() ProductRepository
	Orders() OrderRepository
}

type ProductRepository interface {
	// SnapshotByIDs returns the name and size of every id that exists. Missing ids are absent from the map.
	SnapshotByIDs(ctx context.Context, ids []int64) (map[int64]order.ProductSnapshot, error)
	// DecrementIfAvailable subtracts qty only when at least qty units are on hand.
	// It reports false when no row was changed.
	DecrementIfAvailable(ctx context.Context, id int64, qty int) (bool, error)
	// QuantityOf returns the quantity on hand, or a NOT_FOUND repository error.
	QuantityOf(ctx context.Context, id int64) (int, error)
	Upsert(ctx context.Context, products []*catalog.Product) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type OrderRepository interface {
	// Create inserts the order row and all of its line items and returns the assigned id.
	Create(ctx context.Context, o *order.Order) (int64, error)
	// LockIdempotencyKey blocks until no other open transaction holds key. The lock is
	// released at commit or rollback.
	LockIdempotencyKey(ctx context.Context, key uuid.UUID) error
	// FindByIdempotencyKey returns a NOT_FOUND repository error when no order carries key.
	FindByIdempotencyKey(ctx context.Context, key uuid.UUID) (*OrderRef, error)
}
