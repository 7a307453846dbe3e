package order

import (
	"strings"
	"time"
	"unicode/utf8"

	"pos-checkout/internal/domain/money"
	"pos-checkout/internal/pkg/errs"

	"github.com/google/uuid"
)

const maxBuyerLabelLength = 200

var ErrBuyerLabelTooLong = errs.New("buyer label is too long")

type LineItem struct {
	productID int64
	name      string
	size      string
	unitPrice money.Money
	quantity  int
}

func (li LineItem) ProductID() int64       { return li.productID }
func (li LineItem) Name() string           { return li.name }
func (li LineItem) Size() string           { return li.size }
func (li LineItem) UnitPrice() money.Money { return li.unitPrice }
func (li LineItem) Quantity() int          { return li.quantity }

// ProductSnapshot is the catalog row used to fill blanks in a cart line.
type ProductSnapshot struct {
	Name string
	Size string
}

// Order is a sale about to be written to the ledger. Its id is assigned on insert.
type Order struct {
	createdAt      time.Time
	total          money.Money
	buyerLabel     *string
	idempotencyKey *uuid.UUID
	items          []LineItem
}

// NewOrder builds the order from a cart. The total is always the cart's recomputed total.
// Lines with an empty name or size take them from catalog when it has the product.
func NewOrder(cart *Cart, createdAt time.Time, buyerLabel *string, idempotencyKey *uuid.UUID, catalog map[int64]ProductSnapshot) (*Order, error) {
	label, err := NormalizeBuyerLabel(buyerLabel)
	if err != nil {
		return nil, err
	}

	lines := cart.Lines()
	items := make([]LineItem, len(lines))
	for i, l := range lines {
		item := LineItem{
			productID: l.ProductID,
			name:      l.Name,
			size:      l.Size,
			unitPrice: l.UnitPrice,
			quantity:  l.Quantity,
		}
		if snap, ok := catalog[l.ProductID]; ok {
			if item.name == "" {
				item.name = snap.Name
			}
			if item.size == "" {
				item.size = snap.Size
			}
		}
		items[i] = item
	}

	return &Order{
		createdAt:      createdAt,
		total:          cart.Total(),
		buyerLabel:     label,
		idempotencyKey: idempotencyKey,
		items:          items,
	}, nil
}

func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) Total() money.Money         { return o.total }
func (o *Order) BuyerLabel() *string        { return o.buyerLabel }
func (o *Order) IdempotencyKey() *uuid.UUID { return o.idempotencyKey }
func (o *Order) Items() []LineItem          { return o.items }

// NormalizeBuyerLabel trims the label and maps blank to nil.
func NormalizeBuyerLabel(label *string) (*string, error) {
	if label == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*label)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxBuyerLabelLength {
		return nil, ErrBuyerLabelTooLong
	}
	return &trimmed, nil
}
