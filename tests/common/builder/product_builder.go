//go:build unit || e2e

package builder

import (
	"time"

	"pos-checkout/internal/domain/catalog"
	reqdto "pos-checkout/internal/handler/dto/request"
	"pos-checkout/internal/usecase/commands"
	"pos-checkout/internal/usecase/queries"
)

type ProductBuilder struct {
	ID        int64
	Name      string
	Category  string
	Size      string
	Price     int64
	Quantity  int
	UpdatedAt time.Time
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:        1,
		Name:      "Shirt",
		Category:  "Tops",
		Size:      "M",
		Price:     2000,
		Quantity:  5,
		UpdatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(b)
	return b
}

func (b *ProductBuilder) BuildDomain() (*catalog.Product, error) {
	return catalog.NewProduct(b.ID, b.Name, b.Category, b.Size, b.Price, b.Quantity)
}

func (b *ProductBuilder) BuildView() queries.ProductView {
	return queries.ProductView{
		ID:        b.ID,
		Name:      b.Name,
		Category:  b.Category,
		Size:      b.Size,
		Price:     b.Price,
		Quantity:  b.Quantity,
		UpdatedAt: b.UpdatedAt,
	}
}

func (b *ProductBuilder) BuildInput() commands.ProductInput {
	return commands.ProductInput{
		ID:       b.ID,
		Name:     b.Name,
		Category: b.Category,
		Size:     b.Size,
		Price:    b.Price,
		Quantity: b.Quantity,
	}
}

func (b *ProductBuilder) BuildDTO() reqdto.ProductRequest {
	return reqdto.ProductRequest{
		ID:       b.ID,
		Name:     b.Name,
		Category: b.Category,
		Size:     b.Size,
		Price:    b.Price,
		Quantity: b.Quantity,
	}
}
