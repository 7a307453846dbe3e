package queries

import (
	"context"

	"pos-checkout/internal/infra"
	"pos-checkout/internal/infra/db"
	"pos-checkout/internal/pkg/errs"
	"pos-checkout/internal/usecase/shared"
)

type OrderReadStore interface {
	FindOrder(ctx context.Context, db db.DBTX, id int64) (*OrderView, error)
	ItemsByOrderID(ctx context.Context, db db.DBTX, orderID int64) ([]OrderItemView, error)
	ListOrders(ctx context.Context, db db.DBTX, beforeID int64, limit int) ([]OrderListItem, error)
}

type OrderQueries interface {
	GetOrder(ctx context.Context, id int64) (*OrderView, error)
	ListOrders(ctx context.Context, cursor *Cursor, limit int) (*OrderPage, error)
	// CartFromOrder rebuilds the cart lines of a past order so it can be sold again.
	CartFromOrder(ctx context.Context, id int64) (*CartSnapshotView, error)
}

type orderQueriesImpl struct {
	uow   shared.UnitOfWork
	store OrderReadStore
}

func NewOrderQueries(uow shared.UnitOfWork, store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{uow: uow, store: store}
}

func (q *orderQueriesImpl) GetOrder(ctx context.Context, id int64) (*OrderView, error) {
	var view *OrderView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, db db.DBTX) error {
		o, err := q.store.FindOrder(ctx, db, id)
		if err != nil {
			return err
		}
		items, err := q.store.ItemsByOrderID(ctx, db, id)
		if err != nil {
			return err
		}
		o.Items = items
		view = o
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrOrderNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *orderQueriesImpl) ListOrders(ctx context.Context, cursor *Cursor, limit int) (*OrderPage, error) {
	limit = ValidateLimit(limit)

	var beforeID int64
	if cursor != nil && cursor.Before != "" {
		id, err := DecodeBeforeCursor(cursor.Before)
		if err != nil {
			return nil, err
		}
		beforeID = id
	}

	var rows []OrderListItem
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, db db.DBTX) error {
		var err error
		// One extra row tells us whether another page exists.
		rows, err = q.store.ListOrders(ctx, db, beforeID, limit+1)
		return err
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	page := &OrderPage{Orders: rows}
	if len(rows) > limit {
		page.Orders = rows[:limit]
		page.Next = &Cursor{Before: EncodeBeforeCursor(rows[limit-1].ID)}
	}
	return page, nil
}

func (q *orderQueriesImpl) CartFromOrder(ctx context.Context, id int64) (*CartSnapshotView, error) {
	o, err := q.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	snap := &CartSnapshotView{
		SourceOrderID: o.ID,
		Lines:         make([]CartLineView, len(o.Items)),
	}
	for i, it := range o.Items {
		snap.Lines[i] = CartLineView{
			ProductID: it.ProductID,
			Name:      it.Name,
			Size:      it.Size,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		}
		snap.Total += it.LineTotal
	}
	return snap, nil
}
