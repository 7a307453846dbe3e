//go:build unit

package commands_test

import (
	"context"
	"testing"

	"pos-checkout/internal/usecase/commands"
	"pos-checkout/tests/common/builder"
	"pos-checkout/tests/common/fakestore"

	"pgregory.net/rapid"
)

// Sequential checkouts against random stock must agree with a simple model:
// a cart either takes all of its demand or nothing.
func TestCheckout_StockModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		stock := map[int64]int{}
		var products []fakestore.Product
		for id := int64(1); id <= 3; id++ {
			qty := rapid.IntRange(0, 10).Draw(rt, "stock")
			stock[id] = qty
			products = append(products, fakestore.Product{ID: id, Name: "P", Price: 100, Quantity: qty})
		}
		store := fakestore.New(products...)
		h := newHarness(t, store)

		committed := 0
		carts := rapid.IntRange(1, 8).Draw(rt, "carts")
		for range carts {
			n := rapid.IntRange(1, 3).Draw(rt, "lines")
			lines := make([]commands.CartLineInput, n)
			demand := map[int64]int{}
			missing := false
			for i := range lines {
				id := rapid.Int64Range(1, 4).Draw(rt, "product")
				qty := rapid.IntRange(1, 5).Draw(rt, "qty")
				price := rapid.Int64Range(0, 1000).Draw(rt, "price")
				lines[i] = line(id, price, qty)
				demand[id] += qty
				if _, ok := stock[id]; !ok {
					missing = true
				}
			}

			fits := !missing
			for id, qty := range demand {
				if stock[id] < qty {
					fits = false
				}
			}

			_, err := h.cmds.Commit(context.Background(), builder.NewCartBuilder().WithLines(lines...).BuildCommand())
			if fits {
				if err != nil {
					rt.Fatalf("expected success, got %v", err)
				}
				for id, qty := range demand {
					stock[id] -= qty
				}
				committed++
				continue
			}
			if !commands.IsKind(err, commands.KindProductNotFound) && !commands.IsKind(err, commands.KindInsufficientStock) {
				rt.Fatalf("expected a rejection, got %v", err)
			}
		}

		for id, want := range stock {
			got, _ := store.Quantity(id)
			if got < 0 {
				rt.Fatalf("product %d went negative: %d", id, got)
			}
			if got != want {
				rt.Fatalf("product %d: want %d on hand, got %d", id, want, got)
			}
		}

		orders := store.Orders()
		if len(orders) != committed {
			rt.Fatalf("want %d orders, got %d", committed, len(orders))
		}
		for _, o := range orders {
			var sum int64
			for _, it := range o.Items {
				sum += it.UnitPrice().Minor() * int64(it.Quantity())
			}
			if sum != o.Total {
				rt.Fatalf("order %d: total %d does not match items %d", o.ID, o.Total, sum)
			}
		}
	})
}
