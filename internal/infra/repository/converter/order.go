package converter

import (
	"pos-checkout/internal/domain/order"
	"pos-checkout/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type CreateOrderParams struct {
	CreatedAt      pgtype.Timestamptz
	Total          int64
	BuyerLabel     pgtype.Text
	IdempotencyKey pgtype.UUID
}

// Column-oriented line items, bound to unnest() in a single INSERT
type OrderItemColumns struct {
	ProductIDs []int64
	Names      []string
	Sizes      []string
	UnitPrices []int64
	Quantities []int32
}

func OrderToCreateParams(o *order.Order) CreateOrderParams {
	return CreateOrderParams{
		CreatedAt:      pgconv.TimeToPgtype(o.CreatedAt()),
		Total:          o.Total().Minor(),
		BuyerLabel:     pgconv.StringPtrToPgtype(o.BuyerLabel()),
		IdempotencyKey: pgconv.UUIDPtrToPgtype(o.IdempotencyKey()),
	}
}

func OrderItemsToColumns(items []order.LineItem) OrderItemColumns {
	cols := OrderItemColumns{
		ProductIDs: make([]int64, len(items)),
		Names:      make([]string, len(items)),
		Sizes:      make([]string, len(items)),
		UnitPrices: make([]int64, len(items)),
		Quantities: make([]int32, len(items)),
	}
	for i, it := range items {
		cols.ProductIDs[i] = it.ProductID()
		cols.Names[i] = it.Name()
		cols.Sizes[i] = it.Size()
		cols.UnitPrices[i] = it.UnitPrice().Minor()
		cols.Quantities[i] = int32(it.Quantity()) // #nosec G115 -- bounded by cart validation
	}
	return cols
}
