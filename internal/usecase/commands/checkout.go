package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pos-checkout/internal/domain/order"
	"pos-checkout/internal/infra"
	"pos-checkout/internal/pkg/clock"
	"pos-checkout/internal/pkg/config"
	"pos-checkout/internal/pkg/errs"
	"pos-checkout/internal/usecase/retry"
	"pos-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartLineInput struct {
	ProductID int64
	Name      string
	Size      string
	UnitPrice int64
	Quantity  int
}

type CheckoutRequest struct {
	Lines []CartLineInput
	// ClaimedTotal is what the caller displayed. It is only compared in strict mode and never stored.
	ClaimedTotal   *int64
	BuyerLabel     *string
	IdempotencyKey *uuid.UUID
}

type CheckoutResult struct {
	OrderID  int64
	Total    int64
	Attempts int
	Replayed bool
}

type PreflightResult struct {
	Total int64
	Lines int
}

type CheckoutCommands interface {
	// Commit turns the cart into an order and decrements stock, all or nothing.
	Commit(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
	// Validate runs only the cheap pre-flight check against a possibly stale catalog.
	Validate(ctx context.Context, req CheckoutRequest) (*PreflightResult, error)
}

type checkoutCommandsImpl struct {
	uow         shared.UnitOfWork
	stock       StockLevelReader
	invalidator CatalogInvalidator
	recorder    CheckoutRecorder
	clock       clock.Clock
	policy      retry.Policy
	timeout     time.Duration
	strictTotal bool
	preflight   bool
}

func NewCheckoutCommands(
	uow shared.UnitOfWork,
	stock StockLevelReader,
	invalidator CatalogInvalidator,
	recorder CheckoutRecorder,
	clk clock.Clock,
	cfg config.Config,
) CheckoutCommands {
	return &checkoutCommandsImpl{
		uow:         uow,
		stock:       stock,
		invalidator: invalidator,
		recorder:    recorder,
		clock:       clk,
		policy:      retry.NewPolicy(cfg.Checkout),
		timeout:     cfg.Checkout.Timeout,
		strictTotal: cfg.Checkout.StrictTotal,
		preflight:   cfg.Checkout.Preflight,
	}
}

func (uc *checkoutCommandsImpl) Commit(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	start := time.Now()
	res, err := uc.commit(ctx, req)

	attempts := 0
	if res != nil {
		attempts = res.Attempts
	} else if ce, ok := AsCommitError(err); ok {
		attempts = ce.Attempts
	}
	uc.recorder.ObserveCheckout(resultLabel(res, err), attempts, time.Since(start))

	return res, err
}

func (uc *checkoutCommandsImpl) commit(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	cart, err := uc.snapshotCart(req)
	if err != nil {
		return nil, err
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	if uc.preflight {
		if err := uc.checkAgainstCatalog(ctx, cart); err != nil {
			var ce *CommitError
			if errors.As(err, &ce) && ce.Kind != KindStorageFault {
				return nil, ce
			}
			slog.Warn("pre-flight check skipped", "error", err.Error())
		}
	}

	var result *CheckoutResult
	attempts, err := retry.Run(ctx, uc.policy, classify, func(ctx context.Context, attempt int) error {
		r, err := uc.attempt(ctx, cart, req)
		if err != nil && req.IdempotencyKey != nil && infra.IsKind(err, infra.KindDuplicateKey) {
			// A concurrent request with the same key committed first; this attempt was rolled back.
			r, err = uc.replay(ctx, *req.IdempotencyKey)
		}
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, toCommitError(err, attempts)
	}

	result.Attempts = attempts
	if !result.Replayed {
		if ierr := uc.invalidator.Invalidate(ctx); ierr != nil {
			slog.Warn("failed to invalidate catalog cache", "error", ierr.Error())
		}
	}
	return result, nil
}

// attempt runs the whole protocol in one fresh transaction.
func (uc *checkoutCommandsImpl) attempt(ctx context.Context, cart *order.Cart, req CheckoutRequest) (*CheckoutResult, error) {
	var result *CheckoutResult

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if req.IdempotencyKey != nil {
			// A same-key request still in flight would otherwise miss the lookup and then
			// fail on stock it already took.
			if err := tx.Orders().LockIdempotencyKey(ctx, *req.IdempotencyKey); err != nil {
				return err
			}
			ref, err := tx.Orders().FindByIdempotencyKey(ctx, *req.IdempotencyKey)
			switch {
			case err == nil:
				result = &CheckoutResult{OrderID: ref.ID, Total: ref.Total, Replayed: true}
				return nil
			case !infra.IsKind(err, infra.KindNotFound):
				return err
			}
		}

		snapshots, err := tx.Products().SnapshotByIDs(ctx, cart.ProductIDs())
		if err != nil {
			return err
		}
		for _, l := range cart.Lines() {
			if _, ok := snapshots[l.ProductID]; !ok {
				return ProductNotFound(l.ProductID)
			}
		}

		for _, d := range cart.Demands() {
			ok, err := tx.Products().DecrementIfAvailable(ctx, d.ProductID, d.Quantity)
			if err != nil {
				return err
			}
			if ok {
				continue
			}
			available, err := tx.Products().QuantityOf(ctx, d.ProductID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return ProductNotFound(d.ProductID)
				}
				return err
			}
			return InsufficientStock(d.ProductID, available, d.Quantity)
		}

		o, err := order.NewOrder(cart, uc.clock.Now(), req.BuyerLabel, req.IdempotencyKey, snapshots)
		if err != nil {
			return InvalidCart(err)
		}
		id, err := tx.Orders().Create(ctx, o)
		if err != nil {
			return err
		}

		result = &CheckoutResult{OrderID: id, Total: o.Total().Minor()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *checkoutCommandsImpl) replay(ctx context.Context, key uuid.UUID) (*CheckoutResult, error) {
	var result *CheckoutResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ref, err := tx.Orders().FindByIdempotencyKey(ctx, key)
		if err != nil {
			return err
		}
		result = &CheckoutResult{OrderID: ref.ID, Total: ref.Total, Replayed: true}
		return nil
	})
	return result, err
}

func (uc *checkoutCommandsImpl) Validate(ctx context.Context, req CheckoutRequest) (*PreflightResult, error) {
	cart, err := uc.snapshotCart(req)
	if err != nil {
		return nil, err
	}
	if err := uc.checkAgainstCatalog(ctx, cart); err != nil {
		return nil, err
	}
	return &PreflightResult{Total: cart.Total().Minor(), Lines: len(cart.Lines())}, nil
}

// snapshotCart validates the request before any transaction is opened.
func (uc *checkoutCommandsImpl) snapshotCart(req CheckoutRequest) (*order.Cart, error) {
	if len(req.Lines) == 0 {
		return nil, InvalidCart(order.ErrEmptyCart)
	}

	lines := make([]order.CartLine, len(req.Lines))
	for i, in := range req.Lines {
		l, err := order.NewCartLine(in.ProductID, in.Name, in.Size, in.UnitPrice, in.Quantity)
		if err != nil {
			return nil, InvalidCart(err)
		}
		lines[i] = l
	}

	cart, err := order.NewCart(lines, uc.clock.Now())
	if err != nil {
		return nil, InvalidCart(err)
	}

	if uc.strictTotal && req.ClaimedTotal != nil {
		if err := cart.VerifyClaimedTotal(*req.ClaimedTotal); err != nil {
			return nil, InvalidCart(err)
		}
	}
	if _, err := order.NormalizeBuyerLabel(req.BuyerLabel); err != nil {
		return nil, InvalidCart(err)
	}
	return cart, nil
}

// checkAgainstCatalog rejects carts that the catalog already shows cannot succeed.
// A rejection from the cached snapshot is confirmed against a fresh read before it is
// returned. The transaction stays authoritative.
func (uc *checkoutCommandsImpl) checkAgainstCatalog(ctx context.Context, cart *order.Cart) error {
	levels, err := uc.stock.StockLevels(ctx)
	if err != nil {
		return StorageFault(err)
	}
	if rejectByLevels(cart, levels) == nil {
		return nil
	}

	fresh, err := uc.stock.FreshStockLevels(ctx)
	if err != nil {
		return StorageFault(err)
	}
	return rejectByLevels(cart, fresh)
}

func rejectByLevels(cart *order.Cart, levels map[int64]int) error {
	for _, l := range cart.Lines() {
		if _, ok := levels[l.ProductID]; !ok {
			return ProductNotFound(l.ProductID)
		}
	}
	for _, d := range cart.Demands() {
		if available := levels[d.ProductID]; available < d.Quantity {
			return InsufficientStock(d.ProductID, available, d.Quantity)
		}
	}
	return nil
}

func classify(err error) retry.Class {
	if infra.IsContention(err) {
		return retry.ClassTransient
	}
	return retry.ClassFatal
}

func toCommitError(err error, attempts int) error {
	if ce, ok := AsCommitError(err); ok {
		return ce
	}
	if errs.Is(err, retry.ErrAttemptsExhausted) {
		return TransientContention(attempts, err)
	}
	return StorageFault(err)
}

func resultLabel(res *CheckoutResult, err error) string {
	if err == nil {
		if res != nil && res.Replayed {
			return "replayed"
		}
		return "committed"
	}
	if ce, ok := AsCommitError(err); ok {
		return string(ce.Kind)
	}
	return string(KindStorageFault)
}
