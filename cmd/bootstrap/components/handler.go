package components

import (
	"pos-checkout/internal/handler"
	"pos-checkout/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCheckoutHandler,
		api.NewCatalogHandler,
		api.NewOrderHandler,
		func(checkout *api.CheckoutHandler, catalog *api.CatalogHandler, order *api.OrderHandler) handler.Handlers {
			return handler.Handlers{Checkout: checkout, Catalog: catalog, Order: order}
		},
	),
	fx.Invoke(handler.NewRouter),
)
