//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"pos-checkout/internal/handler/api"
	resdto "pos-checkout/internal/handler/dto/response"
	"pos-checkout/internal/infra"
	"pos-checkout/internal/pkg/errs"
	"pos-checkout/internal/usecase/queries"
	"pos-checkout/tests/common/httptest"
	queriesmock "pos-checkout/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockOrderQueries
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	h := api.NewOrderHandler(s.mockQueries)

	s.router.GET("/orders", h.List)
	s.router.GET("/orders/:id", h.Get)
	s.router.GET("/orders/:id/cart", h.CartFromOrder)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

var orderTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func notFound() error {
	return errs.Mark(infra.WrapRepoErr("order not found", nil, infra.KindNotFound), errs.ErrOrderNotFound)
}

func (s *OrderHandlerTestSuite) TestList() {
	s.Run("success: passes limit and cursor through", func() {
		cursor := queries.EncodeBeforeCursor(10)
		s.mockQueries.EXPECT().ListOrders(gomock.Any(), &queries.Cursor{Before: cursor}, 2).
			Return(&queries.OrderPage{
				Orders: []queries.OrderListItem{
					{ID: 9, CreatedAt: orderTime, Total: 300, ItemCount: 1},
					{ID: 8, CreatedAt: orderTime, Total: 500, ItemCount: 2},
				},
				Next: &queries.Cursor{Before: queries.EncodeBeforeCursor(8)},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?limit=2&before="+cursor, nil, nil)

		var body resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Orders, 2)
		s.Equal(int64(9), body.Orders[0].ID)
		s.Equal(orderTime.Unix(), body.Orders[0].CreatedAt)
		s.Equal(queries.EncodeBeforeCursor(8), body.NextCursor)
	})

	s.Run("success: default limit and empty page", func() {
		s.mockQueries.EXPECT().ListOrders(gomock.Any(), (*queries.Cursor)(nil), queries.DefaultListLimit).
			Return(&queries.OrderPage{Orders: []queries.OrderListItem{}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders", nil, nil)

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"orders":[]}`, rec.Body.String())
	})

	s.Run("error: invalid parameters", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?limit=abc", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid limit")

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?before=garbage", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})
}

func (s *OrderHandlerTestSuite) TestGet() {
	s.Run("success", func() {
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), int64(7)).Return(&queries.OrderView{
			ID:        7,
			CreatedAt: orderTime,
			Total:     4000,
			Items: []queries.OrderItemView{
				{ProductID: 1, Name: "Shirt", Size: "M", UnitPrice: 2000, Quantity: 2, LineTotal: 4000},
			},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/7", nil, nil)

		var body resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.OrderResponse{
			ID:        7,
			CreatedAt: orderTime.Unix(),
			Total:     4000,
			Items: []resdto.OrderItemResponse{
				{ProductID: 1, Name: "Shirt", Size: "M", UnitPrice: 2000, Quantity: 2, LineTotal: 4000},
			},
		}, body)
	})

	s.Run("error: not found", func() {
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), int64(404)).Return(nil, notFound()).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/404", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: bad id", func() {
		for _, id := range []string{"abc", "0", "-3"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+id, nil, nil)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
		}
	})

	s.Run("error: storage failure", func() {
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), int64(7)).Return(nil, errors.New("boom")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/7", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to load order")
	})
}

func (s *OrderHandlerTestSuite) TestCartFromOrder() {
	s.Run("success", func() {
		s.mockQueries.EXPECT().CartFromOrder(gomock.Any(), int64(7)).Return(&queries.CartSnapshotView{
			SourceOrderID: 7,
			Total:         2000,
			Lines:         []queries.CartLineView{{ProductID: 1, Name: "Shirt", Size: "M", UnitPrice: 2000, Quantity: 1}},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/7/cart", nil, nil)

		var body resdto.CartSnapshotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(7), body.SourceOrderID)
		s.Require().Len(body.Lines, 1)
		s.Equal(int64(2000), body.Lines[0].UnitPrice)
	})

	s.Run("error: not found", func() {
		s.mockQueries.EXPECT().CartFromOrder(gomock.Any(), int64(5)).Return(nil, notFound()).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/5/cart", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})
}
