package request

import (
	"pos-checkout/internal/usecase/commands"

	"github.com/google/uuid"
)

type CartLineRequest struct {
	ProductID int64  `json:"product_id" binding:"required,gt=0"`
	Name      string `json:"name" binding:"max=200"`
	Size      string `json:"size" binding:"max=50"`
	UnitPrice int64  `json:"unit_price" binding:"min=0"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CheckoutRequest struct {
	Lines      []CartLineRequest `json:"lines" binding:"required,min=1,dive"`
	Total      *int64            `json:"total,omitempty" binding:"omitempty,min=0"`
	BuyerLabel *string           `json:"buyer_label,omitempty"`
}

func (r CheckoutRequest) ToCommand(idempotencyKey *uuid.UUID) commands.CheckoutRequest {
	lines := make([]commands.CartLineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = commands.CartLineInput{
			ProductID: l.ProductID,
			Name:      l.Name,
			Size:      l.Size,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}
	return commands.CheckoutRequest{
		Lines:          lines,
		ClaimedTotal:   r.Total,
		BuyerLabel:     r.BuyerLabel,
		IdempotencyKey: idempotencyKey,
	}
}
