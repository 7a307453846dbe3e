package commands

import (
	"errors"
	"fmt"
)

type Kind string

// The closed set of failures a commit can end with. Only TRANSIENT_CONTENTION is ever
// the result of retrying; every other kind is returned on the attempt that produced it.
const (
	KindInvalidCart         Kind = "INVALID_CART"
	KindInvalidCatalog      Kind = "INVALID_CATALOG"
	KindProductNotFound     Kind = "PRODUCT_NOT_FOUND"
	KindInsufficientStock   Kind = "INSUFFICIENT_STOCK"
	KindTransientContention Kind = "TRANSIENT_CONTENTION"
	KindStorageFault        Kind = "STORAGE_FAULT"
)

type CommitError struct {
	Kind      Kind
	ProductID int64
	Available int
	Requested int
	Attempts  int
	cause     error
}

func (e *CommitError) Error() string {
	switch e.Kind {
	case KindProductNotFound:
		return fmt.Sprintf("product %d not found", e.ProductID)
	case KindInsufficientStock:
		return fmt.Sprintf("insufficient stock for product %d: available %d, requested %d",
			e.ProductID, e.Available, e.Requested)
	case KindTransientContention:
		return fmt.Sprintf("storage busy after %d attempts", e.Attempts)
	}
	if e.cause != nil {
		return string(e.Kind) + ": " + e.cause.Error()
	}
	return string(e.Kind)
}

func (e *CommitError) Unwrap() error {
	return e.cause
}

func ProductNotFound(id int64) *CommitError {
	return &CommitError{Kind: KindProductNotFound, ProductID: id}
}

func InsufficientStock(id int64, available, requested int) *CommitError {
	return &CommitError{Kind: KindInsufficientStock, ProductID: id, Available: available, Requested: requested}
}

func TransientContention(attempts int, cause error) *CommitError {
	return &CommitError{Kind: KindTransientContention, Attempts: attempts, cause: cause}
}

func StorageFault(cause error) *CommitError {
	return &CommitError{Kind: KindStorageFault, cause: cause}
}

func InvalidCart(cause error) *CommitError {
	return &CommitError{Kind: KindInvalidCart, cause: cause}
}

func InvalidCatalog(cause error) *CommitError {
	return &CommitError{Kind: KindInvalidCatalog, cause: cause}
}

func AsCommitError(err error) (*CommitError, bool) {
	var ce *CommitError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	ce, ok := AsCommitError(err)
	return ok && ce.Kind == kind
}
