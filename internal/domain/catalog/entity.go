package catalog

import (
	"math"
	"strings"

	"pos-checkout/internal/domain/money"
	"pos-checkout/internal/pkg/errs"
)

var (
	ErrInvalidProductID = errs.New("product id must be positive")
	ErrEmptyName        = errs.New("product name cannot be empty")
	ErrNegativePrice    = errs.New("product price cannot be negative")
	ErrNegativeQuantity = errs.New("product quantity cannot be negative")
	ErrQuantityTooLarge = errs.New("product quantity is too large")
)

// Product is one sellable variant. An empty size means the product has no size dimension.
type Product struct {
	id       int64
	name     string
	category string
	size     string
	price    money.Money
	quantity int
}

func NewProduct(id int64, name, category, size string, price int64, quantity int) (*Product, error) {
	if id <= 0 {
		return nil, ErrInvalidProductID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	p, err := money.New(price)
	if err != nil {
		return nil, ErrNegativePrice
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if quantity > math.MaxInt32 {
		return nil, ErrQuantityTooLarge
	}

	return &Product{
		id:       id,
		name:     name,
		category: strings.TrimSpace(category),
		size:     strings.TrimSpace(size),
		price:    p,
		quantity: quantity,
	}, nil
}

func (p *Product) ID() int64          { return p.id }
func (p *Product) Name() string       { return p.name }
func (p *Product) Category() string   { return p.category }
func (p *Product) Size() string       { return p.size }
func (p *Product) Price() money.Money { return p.price }
func (p *Product) Quantity() int      { return p.quantity }

// CanFulfil reports whether qty units can come out of stock without going negative.
func (p *Product) CanFulfil(qty int) bool {
	return qty > 0 && qty <= p.quantity
}
