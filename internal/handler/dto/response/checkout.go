package response

import "pos-checkout/internal/usecase/commands"

type CheckoutResponse struct {
	OrderID  int64 `json:"order_id"`
	Total    int64 `json:"total"`
	Attempts int   `json:"attempts"`
	Replayed bool  `json:"replayed"`
}

func FromCheckoutResult(r *commands.CheckoutResult) (*CheckoutResponse, error) {
	return copyInto[CheckoutResponse](r)
}

type ValidateResponse struct {
	Total int64 `json:"total"`
	Lines int   `json:"lines"`
}

func FromPreflightResult(r *commands.PreflightResult) (*ValidateResponse, error) {
	return copyInto[ValidateResponse](r)
}
