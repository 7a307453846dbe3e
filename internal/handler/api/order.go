package api

import (
	"net/http"
	"strconv"

	resdto "pos-checkout/internal/handler/dto/response"
	"pos-checkout/internal/handler/httperr"
	"pos-checkout/internal/pkg/errs"
	"pos-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	q queries.OrderQueries
}

func NewOrderHandler(q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{q: q}
}

// @Summary List orders
// @Description Order history, newest first, with keyset pagination
// @Tags orders
// @Produce json
// @Param limit query int false "Max items (default 50, max 200)"
// @Param before query string false "Cursor from a previous page"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	limit := queries.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		iv, err := strconv.Atoi(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		limit = queries.ValidateLimit(iv)
	}
	var cursor *queries.Cursor
	if before := c.Query("before"); before != "" {
		if _, err := queries.DecodeBeforeCursor(before); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
			return
		}
		cursor = &queries.Cursor{Before: before}
	}

	page, err := h.q.ListOrders(c.Request.Context(), cursor, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list orders", nil)
		return
	}
	resp, err := resdto.FromOrderPage(page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get order
// @Description Get a committed order with its line items
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	view, err := h.q.GetOrder(c.Request.Context(), id)
	if err != nil {
		abortOrderLookup(c, err)
		return
	}
	resp, err := resdto.FromOrderView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Retake order
// @Description Rebuild the cart of a past order so it can be rung up again. Touches no stock.
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} resdto.CartSnapshotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id}/cart [get]
func (h *OrderHandler) CartFromOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	snap, err := h.q.CartFromOrder(c.Request.Context(), id)
	if err != nil {
		abortOrderLookup(c, err)
		return
	}
	resp, err := resdto.FromCartSnapshot(snap)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func orderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = errs.New("order id must be positive")
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return 0, false
	}
	return id, true
}

func abortOrderLookup(c *gin.Context, err error) {
	if errs.Is(err, errs.ErrOrderNotFound) {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
		return
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load order", nil)
}
