package response

import (
	"pos-checkout/internal/usecase/commands"
	"pos-checkout/internal/usecase/queries"
)

type ProductResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Size      string `json:"size"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	UpdatedAt int64  `json:"updated_at"`
}

func FromProductViews(views []queries.ProductView) ([]ProductResponse, error) {
	res, err := copyInto[[]ProductResponse](views)
	if err != nil {
		return nil, err
	}
	if *res == nil {
		return []ProductResponse{}, nil
	}
	return *res, nil
}

type UploadResponse struct {
	Written  int   `json:"written"`
	Deleted  int64 `json:"deleted"`
	Attempts int   `json:"attempts"`
}

func FromUploadResult(r *commands.UploadResult) (*UploadResponse, error) {
	return copyInto[UploadResponse](r)
}
