package order

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"pos-checkout/internal/domain/money"
	"pos-checkout/internal/pkg/errs"
)

var (
	ErrEmptyCart           = errs.New("cart is empty")
	ErrInvalidProductRef   = errs.New("cart line references an invalid product id")
	ErrNonPositiveQuantity = errs.New("cart line quantity must be positive")
	ErrQuantityTooLarge    = errs.New("cart line quantity is too large")
	ErrNegativeUnitPrice   = errs.New("cart line unit price cannot be negative")
	ErrTotalOverflow       = errs.New("cart total overflows")
	ErrTotalMismatch       = errs.New("cart total does not match its lines")
)

// CartLine carries the price, name and size the buyer saw when the item was added.
type CartLine struct {
	ProductID int64
	Name      string
	Size      string
	UnitPrice money.Money
	Quantity  int
}

func NewCartLine(productID int64, name, size string, unitPrice int64, quantity int) (CartLine, error) {
	if productID <= 0 {
		return CartLine{}, errs.Wrap(ErrInvalidProductRef, fmt.Sprintf("product %d", productID))
	}
	if quantity <= 0 {
		return CartLine{}, errs.Wrap(ErrNonPositiveQuantity, fmt.Sprintf("product %d quantity %d", productID, quantity))
	}
	if quantity > math.MaxInt32 {
		return CartLine{}, errs.Wrap(ErrQuantityTooLarge, fmt.Sprintf("product %d", productID))
	}
	price, err := money.New(unitPrice)
	if err != nil {
		return CartLine{}, errs.Wrap(ErrNegativeUnitPrice, fmt.Sprintf("product %d", productID))
	}
	return CartLine{
		ProductID: productID,
		Name:      strings.TrimSpace(name),
		Size:      strings.TrimSpace(size),
		UnitPrice: price,
		Quantity:  quantity,
	}, nil
}

func (l CartLine) Total() (money.Money, error) {
	t, err := l.UnitPrice.Mul(l.Quantity)
	if err != nil {
		return money.Money{}, ErrTotalOverflow
	}
	return t, nil
}

// Demand is the quantity a cart needs from one product, summed over its lines.
type Demand struct {
	ProductID int64
	Quantity  int
}

// Cart is an immutable snapshot of a cart taken when checkout begins.
type Cart struct {
	lines      []CartLine
	total      money.Money
	capturedAt time.Time
}

func NewCart(lines []CartLine, capturedAt time.Time) (*Cart, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := money.Zero()
	demand := make(map[int64]int, len(lines))
	for _, l := range lines {
		if l.ProductID <= 0 {
			return nil, errs.Wrap(ErrInvalidProductRef, fmt.Sprintf("product %d", l.ProductID))
		}
		if l.Quantity <= 0 {
			return nil, errs.Wrap(ErrNonPositiveQuantity, fmt.Sprintf("product %d", l.ProductID))
		}
		if l.Quantity > math.MaxInt32 {
			return nil, errs.Wrap(ErrQuantityTooLarge, fmt.Sprintf("product %d", l.ProductID))
		}
		// Stock is an int4 column; the summed demand must fit it too.
		demand[l.ProductID] += l.Quantity
		if demand[l.ProductID] > math.MaxInt32 {
			return nil, errs.Wrap(ErrQuantityTooLarge, fmt.Sprintf("product %d total demand", l.ProductID))
		}
		lt, err := l.Total()
		if err != nil {
			return nil, err
		}
		if total, err = total.Add(lt); err != nil {
			return nil, ErrTotalOverflow
		}
	}

	return &Cart{
		lines:      slices.Clone(lines),
		total:      total,
		capturedAt: capturedAt,
	}, nil
}

func (c *Cart) Lines() []CartLine     { return slices.Clone(c.lines) }
func (c *Cart) Total() money.Money    { return c.total }
func (c *Cart) CapturedAt() time.Time { return c.capturedAt }

// VerifyClaimedTotal compares a caller supplied total against the recomputed one.
func (c *Cart) VerifyClaimedTotal(claimed int64) error {
	if claimed != c.total.Minor() {
		return errs.Wrap(ErrTotalMismatch, fmt.Sprintf("claimed %d, lines sum to %d", claimed, c.total.Minor()))
	}
	return nil
}

// Demands sums quantities per product and returns them in ascending product id order.
// Stock is checked against the sum so one cart cannot count the same units twice.
func (c *Cart) Demands() []Demand {
	byID := make(map[int64]int, len(c.lines))
	for _, l := range c.lines {
		byID[l.ProductID] += l.Quantity
	}
	out := make([]Demand, 0, len(byID))
	for id, qty := range byID {
		out = append(out, Demand{ProductID: id, Quantity: qty})
	}
	slices.SortFunc(out, func(a, b Demand) int {
		switch {
		case a.ProductID < b.ProductID:
			return -1
		case a.ProductID > b.ProductID:
			return 1
		default:
			return 0
		}
	})
	return out
}

func (c *Cart) ProductIDs() []int64 {
	ds := c.Demands()
	ids := make([]int64, len(ds))
	for i, d := range ds {
		ids[i] = d.ProductID
	}
	return ids
}
