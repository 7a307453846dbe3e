package commands

import (
	"context"
	"fmt"
	"log/slog"

	"pos-checkout/internal/domain/catalog"
	"pos-checkout/internal/pkg/config"
	"pos-checkout/internal/pkg/errs"
	"pos-checkout/internal/usecase/retry"
	"pos-checkout/internal/usecase/shared"
)

type ProductInput struct {
	ID       int64
	Name     string
	Category string
	Size     string
	Price    int64
	Quantity int
}

type UploadRequest struct {
	Mode     catalog.UploadMode
	Products []ProductInput
}

type UploadResult struct {
	Written  int
	Deleted  int64
	Attempts int
}

type CatalogCommands interface {
	// Upload writes a batch of products in one transaction. Replace mode removes every
	// existing product first; upsert mode inserts or overwrites by id.
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
}

type catalogCommandsImpl struct {
	uow         shared.UnitOfWork
	invalidator CatalogInvalidator
	policy      retry.Policy
}

func NewCatalogCommands(uow shared.UnitOfWork, invalidator CatalogInvalidator, cfg config.Config) CatalogCommands {
	return &catalogCommandsImpl{
		uow:         uow,
		invalidator: invalidator,
		policy:      retry.NewPolicy(cfg.Checkout),
	}
}

func (uc *catalogCommandsImpl) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	products := make([]*catalog.Product, len(req.Products))
	for i, in := range req.Products {
		p, err := catalog.NewProduct(in.ID, in.Name, in.Category, in.Size, in.Price, in.Quantity)
		if err != nil {
			return nil, InvalidCatalog(errs.Wrap(err, fmt.Sprintf("row %d", i+1)))
		}
		products[i] = p
	}
	upload, err := catalog.NewUpload(req.Mode, products)
	if err != nil {
		return nil, InvalidCatalog(err)
	}

	result := &UploadResult{}
	attempts, err := retry.Run(ctx, uc.policy, classify, func(ctx context.Context, _ int) error {
		return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			result.Deleted = 0
			if upload.Replaces() {
				n, err := tx.Products().DeleteAll(ctx)
				if err != nil {
					return err
				}
				result.Deleted = n
			}
			return tx.Products().Upsert(ctx, upload.Products())
		})
	})
	if err != nil {
		return nil, toCommitError(err, attempts)
	}

	result.Written = len(upload.Products())
	result.Attempts = attempts

	if ierr := uc.invalidator.Invalidate(ctx); ierr != nil {
		slog.Warn("failed to invalidate catalog cache", "error", ierr.Error())
	}
	slog.Info("catalog uploaded",
		"mode", string(upload.Mode()),
		"written", result.Written,
		"deleted", result.Deleted,
		"attempts", attempts)

	return result, nil
}
