package commands

import (
	"context"
	"time"
)

// StockLevelReader returns quantity on hand per product id for the pre-flight check.
// StockLevels may be stale; a rejection is only final once FreshStockLevels agrees.
type StockLevelReader interface {
	StockLevels(ctx context.Context) (map[int64]int, error)
	FreshStockLevels(ctx context.Context) (map[int64]int, error)
}

// CatalogInvalidator drops any cached catalog snapshot after a write.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context) error
}

type CheckoutRecorder interface {
	ObserveCheckout(result string, attempts int, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCheckout(string, int, time.Duration) {}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(context.Context) error { return nil }

func NopRecorder() CheckoutRecorder      { return nopRecorder{} }
func NopInvalidator() CatalogInvalidator { return nopInvalidator{} }
