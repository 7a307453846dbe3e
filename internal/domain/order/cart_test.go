//go:build unit

package order_test

import (
	"math"
	"testing"
	"time"

	"pos-checkout/internal/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var capturedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func mustLine(t *testing.T, productID int64, unitPrice int64, quantity int) order.CartLine {
	t.Helper()
	l, err := order.NewCartLine(productID, "Item", "M", unitPrice, quantity)
	require.NoError(t, err)
	return l
}

func TestCartLine(t *testing.T) {
	t.Run("trims name and size", func(t *testing.T) {
		l, err := order.NewCartLine(1, " Shirt ", " L ", 100, 2)
		require.NoError(t, err)
		assert.Equal(t, "Shirt", l.Name)
		assert.Equal(t, "L", l.Size)
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name      string
			productID int64
			price     int64
			qty       int
			errIs     error
		}{
			{name: "zero product id", productID: 0, price: 100, qty: 1, errIs: order.ErrInvalidProductRef},
			{name: "zero quantity", productID: 1, price: 100, qty: 0, errIs: order.ErrNonPositiveQuantity},
			{name: "negative quantity", productID: 1, price: 100, qty: -3, errIs: order.ErrNonPositiveQuantity},
			{name: "huge quantity", productID: 1, price: 100, qty: math.MaxInt32 + 1, errIs: order.ErrQuantityTooLarge},
			{name: "negative price", productID: 1, price: -5, qty: 1, errIs: order.ErrNegativeUnitPrice},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := order.NewCartLine(tc.productID, "Item", "", tc.price, tc.qty)
				require.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestCart(t *testing.T) {
	t.Run("total is the sum of the lines", func(t *testing.T) {
		cart, err := order.NewCart([]order.CartLine{mustLine(t, 1, 100, 3), mustLine(t, 2, 250, 2)}, capturedAt)
		require.NoError(t, err)
		assert.Equal(t, int64(800), cart.Total().Minor())
		assert.Equal(t, capturedAt, cart.CapturedAt())
	})

	t.Run("empty cart", func(t *testing.T) {
		_, err := order.NewCart(nil, capturedAt)
		require.ErrorIs(t, err, order.ErrEmptyCart)
	})

	t.Run("overflowing total", func(t *testing.T) {
		_, err := order.NewCart([]order.CartLine{
			mustLine(t, 1, math.MaxInt64/2, 1),
			mustLine(t, 2, math.MaxInt64/2, 1),
			mustLine(t, 3, math.MaxInt64/2, 1),
		}, capturedAt)
		require.ErrorIs(t, err, order.ErrTotalOverflow)

		_, err = order.NewCart([]order.CartLine{mustLine(t, 1, math.MaxInt64/2, 3)}, capturedAt)
		require.ErrorIs(t, err, order.ErrTotalOverflow)
	})

	t.Run("demands are summed per product in ascending id order", func(t *testing.T) {
		cart, err := order.NewCart([]order.CartLine{
			mustLine(t, 7, 10, 1),
			mustLine(t, 2, 10, 2),
			mustLine(t, 7, 10, 4),
		}, capturedAt)
		require.NoError(t, err)

		assert.Equal(t, []order.Demand{{ProductID: 2, Quantity: 2}, {ProductID: 7, Quantity: 5}}, cart.Demands())
		assert.Equal(t, []int64{2, 7}, cart.ProductIDs())
		assert.Len(t, cart.Lines(), 3)
	})

	t.Run("per-product demand must fit a stock quantity", func(t *testing.T) {
		_, err := order.NewCart([]order.CartLine{
			mustLine(t, 4, 0, math.MaxInt32),
			mustLine(t, 5, 0, 1),
			mustLine(t, 4, 0, 1),
		}, capturedAt)
		require.ErrorIs(t, err, order.ErrQuantityTooLarge)

		cart, err := order.NewCart([]order.CartLine{
			mustLine(t, 4, 0, math.MaxInt32-1),
			mustLine(t, 4, 0, 1),
			mustLine(t, 5, 0, math.MaxInt32),
		}, capturedAt)
		require.NoError(t, err)
		assert.Equal(t, []order.Demand{{ProductID: 4, Quantity: math.MaxInt32}, {ProductID: 5, Quantity: math.MaxInt32}}, cart.Demands())
	})

	t.Run("claimed total", func(t *testing.T) {
		cart, err := order.NewCart([]order.CartLine{mustLine(t, 1, 100, 2)}, capturedAt)
		require.NoError(t, err)

		require.NoError(t, cart.VerifyClaimedTotal(200))
		require.ErrorIs(t, cart.VerifyClaimedTotal(199), order.ErrTotalMismatch)
	})

	t.Run("lines are copied", func(t *testing.T) {
		lines := []order.CartLine{mustLine(t, 1, 100, 2)}
		cart, err := order.NewCart(lines, capturedAt)
		require.NoError(t, err)

		lines[0].Quantity = 99
		assert.Equal(t, 2, cart.Lines()[0].Quantity)
	})
}
