package api

import (
	"net/http"
	"strings"

	reqdto "pos-checkout/internal/handler/dto/request"
	resdto "pos-checkout/internal/handler/dto/response"
	"pos-checkout/internal/handler/httperr"
	"pos-checkout/internal/pkg/errs"
	"pos-checkout/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
}

func NewCheckoutHandler(cmds commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds}
}

// @Summary Commit checkout
// @Description Turn a cart into an order and decrement stock atomically. Repeating a request with the same Idempotency-Key returns the original order.
// @Tags checkout
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key (UUID)"
// @Param request body reqdto.CheckoutRequest true "Cart"
// @Success 201 {object} resdto.CheckoutResponse
// @Success 200 {object} resdto.CheckoutResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /checkout [post]
func (h *CheckoutHandler) Commit(c *gin.Context) {
	key, err := parseIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid Idempotency-Key header", nil)
		return
	}
	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithCommitError(c, commands.InvalidCart(err))
		return
	}

	result, err := h.cmds.Commit(c.Request.Context(), req.ToCommand(key))
	if err != nil {
		abortWithCommitError(c, err)
		return
	}

	resp, err := resdto.FromCheckoutResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}

// @Summary Validate cart
// @Description Check a cart against the current catalog snapshot without committing anything
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.CheckoutRequest true "Cart"
// @Success 200 {object} resdto.ValidateResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /checkout/validate [post]
func (h *CheckoutHandler) Validate(c *gin.Context) {
	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithCommitError(c, commands.InvalidCart(err))
		return
	}

	result, err := h.cmds.Validate(c.Request.Context(), req.ToCommand(nil))
	if err != nil {
		abortWithCommitError(c, err)
		return
	}

	resp, err := resdto.FromPreflightResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func parseIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if raw == "" {
		return nil, nil
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyKeyInvalid)
	}
	return &key, nil
}
