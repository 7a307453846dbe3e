package request

import (
	"pos-checkout/internal/domain/catalog"
	"pos-checkout/internal/usecase/commands"
)

type ProductRequest struct {
	ID       int64  `json:"id" binding:"required,gt=0"`
	Name     string `json:"name" binding:"required,max=200"`
	Category string `json:"category" binding:"max=100"`
	Size     string `json:"size" binding:"max=50"`
	Price    int64  `json:"price" binding:"min=0"`
	Quantity int    `json:"quantity" binding:"min=0"`
}

type UploadCatalogRequest struct {
	Mode     string           `json:"mode" binding:"required,oneof=upsert replace"`
	Products []ProductRequest `json:"products" binding:"required,min=1,dive"`
}

func (r UploadCatalogRequest) ToCommand() commands.UploadRequest {
	products := make([]commands.ProductInput, len(r.Products))
	for i, p := range r.Products {
		products[i] = commands.ProductInput{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Size:     p.Size,
			Price:    p.Price,
			Quantity: p.Quantity,
		}
	}
	return commands.UploadRequest{Mode: catalog.UploadMode(r.Mode), Products: products}
}
