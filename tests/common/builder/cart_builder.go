//go:build unit || e2e

package builder

import (
	reqdto "pos-checkout/internal/handler/dto/request"
	"pos-checkout/internal/usecase/commands"

	"github.com/google/uuid"
)

type CartBuilder struct {
	Lines          []commands.CartLineInput
	ClaimedTotal   *int64
	BuyerLabel     *string
	IdempotencyKey *uuid.UUID
}

// Starts with one Shirt (id 1, 2000) so every request is valid by default.
func NewCartBuilder() *CartBuilder {
	return &CartBuilder{
		Lines: []commands.CartLineInput{
			{ProductID: 1, Name: "Shirt", Size: "M", UnitPrice: 2000, Quantity: 1},
		},
	}
}

func (b *CartBuilder) With(mutate func(*CartBuilder)) *CartBuilder {
	mutate(b)
	return b
}

func (b *CartBuilder) WithLines(lines ...commands.CartLineInput) *CartBuilder {
	b.Lines = lines
	return b
}

func (b *CartBuilder) AddLine(productID int64, unitPrice int64, quantity int) *CartBuilder {
	b.Lines = append(b.Lines, commands.CartLineInput{
		ProductID: productID,
		Name:      "Item",
		Size:      "M",
		UnitPrice: unitPrice,
		Quantity:  quantity,
	})
	return b
}

func (b *CartBuilder) WithKey(key uuid.UUID) *CartBuilder {
	b.IdempotencyKey = &key
	return b
}

func (b *CartBuilder) BuildCommand() commands.CheckoutRequest {
	lines := make([]commands.CartLineInput, len(b.Lines))
	copy(lines, b.Lines)
	return commands.CheckoutRequest{
		Lines:          lines,
		ClaimedTotal:   b.ClaimedTotal,
		BuyerLabel:     b.BuyerLabel,
		IdempotencyKey: b.IdempotencyKey,
	}
}

func (b *CartBuilder) BuildDTO() reqdto.CheckoutRequest {
	lines := make([]reqdto.CartLineRequest, len(b.Lines))
	for i, l := range b.Lines {
		lines[i] = reqdto.CartLineRequest{
			ProductID: l.ProductID,
			Name:      l.Name,
			Size:      l.Size,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}
	return reqdto.CheckoutRequest{
		Lines:      lines,
		Total:      b.ClaimedTotal,
		BuyerLabel: b.BuyerLabel,
	}
}
