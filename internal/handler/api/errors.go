package api

import (
	"context"
	"errors"
	"net/http"

	"pos-checkout/internal/handler/httperr"
	"pos-checkout/internal/handler/middleware"
	"pos-checkout/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// retryAfterSeconds is advertised on 503 so tills back off before resubmitting.
const retryAfterSeconds = "1"

type CommitErrorDetail struct {
	Kind      string `json:"kind"`
	ProductID int64  `json:"product_id,omitempty"`
	Available *int   `json:"available,omitempty"`
	Requested int    `json:"requested,omitempty"`
	Attempts  int    `json:"attempts,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// abortWithCommitError maps the commit taxonomy onto HTTP. Errors outside it are 500.
func abortWithCommitError(c *gin.Context, err error) {
	ce, ok := commands.AsCommitError(err)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.Set(middleware.CommitKindKey, string(ce.Kind))
	detail := CommitErrorDetail{Kind: string(ce.Kind)}
	switch ce.Kind {
	case commands.KindInvalidCart, commands.KindInvalidCatalog:
		if cause := errors.Unwrap(ce); cause != nil {
			detail.Reason = cause.Error()
		}
		msg := "Invalid cart"
		if ce.Kind == commands.KindInvalidCatalog {
			msg = "Invalid catalog"
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, msg, detail)

	case commands.KindProductNotFound:
		detail.ProductID = ce.ProductID
		httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", detail)

	case commands.KindInsufficientStock:
		available := ce.Available
		detail.ProductID = ce.ProductID
		detail.Available = &available
		detail.Requested = ce.Requested
		httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient stock", detail)

	case commands.KindTransientContention:
		detail.Attempts = ce.Attempts
		httperr.AbortRetryable(c, http.StatusServiceUnavailable, retryAfterSeconds, err, "Checkout is busy, please retry", detail)

	default:
		if errors.Is(err, context.DeadlineExceeded) {
			httperr.AbortRetryable(c, http.StatusServiceUnavailable, retryAfterSeconds, err, "Checkout timed out, please retry", detail)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Storage failure", detail)
	}
}
