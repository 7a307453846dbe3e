package catalog

import (
	"fmt"
	"slices"

	"pos-checkout/internal/pkg/errs"
)

type UploadMode string

const (
	UploadModeUpsert  UploadMode = "upsert"
	UploadModeReplace UploadMode = "replace"
)

var (
	ErrEmptyUpload        = errs.New("upload contains no products")
	ErrDuplicateProductID = errs.New("upload contains duplicate product ids")
	ErrInvalidUploadMode  = errs.New("upload mode must be upsert or replace")
)

func (m UploadMode) IsValid() bool {
	return m == UploadModeUpsert || m == UploadModeReplace
}

// Upload is a validated batch of catalog rows, ordered by ascending id.
type Upload struct {
	mode     UploadMode
	products []*Product
}

func NewUpload(mode UploadMode, products []*Product) (*Upload, error) {
	if !mode.IsValid() {
		return nil, ErrInvalidUploadMode
	}
	if len(products) == 0 {
		return nil, ErrEmptyUpload
	}

	sorted := slices.Clone(products)
	slices.SortFunc(sorted, func(a, b *Product) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		default:
			return 0
		}
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].ID() == sorted[i-1].ID() {
			return nil, errs.Wrap(ErrDuplicateProductID, fmt.Sprintf("product %d", sorted[i].ID()))
		}
	}

	return &Upload{mode: mode, products: sorted}, nil
}

func (u *Upload) Mode() UploadMode     { return u.mode }
func (u *Upload) Products() []*Product { return u.products }
func (u *Upload) Replaces() bool       { return u.mode == UploadModeReplace }
