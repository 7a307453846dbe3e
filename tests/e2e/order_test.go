//go:build e2e

package e2e

import (
	"net/http"
	"strconv"
	"testing"

	resdto "pos-checkout/internal/handler/dto/response"
	"pos-checkout/tests/common/httptest"

	"github.com/stretchr/testify/suite"
)

type OrderE2ETestSuite struct {
	SharedSuite
}

func TestOrderE2ESuite(t *testing.T) {
	suite.Run(t, new(OrderE2ETestSuite))
}

func (s *OrderE2ETestSuite) checkout(lines ...any) resdto.CheckoutResponse {
	s.T().Helper()

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, checkoutURL, map[string]any{"lines": lines}, nil)
	var body resdto.CheckoutResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
	return body
}

func lineJSON(productID int64, name string, unitPrice int64, quantity int) map[string]any {
	return map[string]any{
		"product_id": productID,
		"name":       name,
		"unit_price": unitPrice,
		"quantity":   quantity,
	}
}

func orderPath(id int64) string {
	return "/api/orders/" + strconv.FormatInt(id, 10)
}

func (s *OrderE2ETestSuite) TestGetOrder() {
	s.Run("success: items are returned in cart order", func() {
		created := s.checkout(lineJSON(2, "Cap", 1500, 1), lineJSON(1, "Shirt", 2000, 2))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, orderPath(created.OrderID), nil, nil)
		var body resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)

		s.Equal(created.OrderID, body.ID)
		s.Equal(int64(5500), body.Total)
		s.Require().Len(body.Items, 2)
		s.Equal(int64(2), body.Items[0].ProductID)
		s.Equal(int64(1500), body.Items[0].LineTotal)
		s.Equal(int64(1), body.Items[1].ProductID)
		s.Equal(int64(4000), body.Items[1].LineTotal)
		s.Positive(body.CreatedAt)
	})

	s.Run("error: unknown order", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, orderPath(424242), nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/orders/abc", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *OrderE2ETestSuite) TestListOrders() {
	s.Run("newest first with a cursor to the next page", func() {
		first := s.checkout(lineJSON(1, "Shirt", 2000, 1))
		second := s.checkout(lineJSON(1, "Shirt", 2000, 1))
		third := s.checkout(lineJSON(2, "Cap", 1500, 2))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/orders?limit=2", nil, nil)
		var page resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &page)

		s.Require().Len(page.Orders, 2)
		s.Equal(third.OrderID, page.Orders[0].ID)
		s.Equal(1, page.Orders[0].ItemCount)
		s.Equal(second.OrderID, page.Orders[1].ID)
		s.Require().NotEmpty(page.NextCursor)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/orders?limit=2&before="+page.NextCursor, nil, nil)
		var next resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &next)

		s.Require().Len(next.Orders, 1)
		s.Equal(first.OrderID, next.Orders[0].ID)
		s.Empty(next.NextCursor)
	})

	s.Run("empty history", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/orders", nil, nil)
		var page resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &page)
		s.Empty(page.Orders)
	})

	s.Run("error: garbage cursor", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/orders?before=bm90LWEtY3Vyc29y", nil, nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *OrderE2ETestSuite) TestCartFromOrder() {
	s.Run("rebuilds the cart without touching stock", func() {
		created := s.checkout(lineJSON(1, "Shirt", 2000, 2))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, orderPath(created.OrderID)+"/cart", nil, nil)
		var snap resdto.CartSnapshotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &snap)

		s.Equal(created.OrderID, snap.SourceOrderID)
		s.Equal(int64(4000), snap.Total)
		s.Require().Len(snap.Lines, 1)
		s.Equal(2, snap.Lines[0].Quantity)

		list := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/products", nil, nil)
		s.Equal(http.StatusOK, list.Code)
		s.Contains(list.Body.String(), `"quantity":3`)
	})
}

func (s *OrderE2ETestSuite) TestOperationalEndpoints() {
	s.Run("health", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/health", nil, nil)
		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("ok", body["status"])
	})

	s.Run("metrics expose checkout outcomes", func() {
		s.checkout(lineJSON(1, "Shirt", 2000, 1))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/metrics", nil, nil)
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `pos_checkout_total{result="committed"}`)
		s.Contains(rec.Body.String(), "pos_http_requests_total")
	})
}
