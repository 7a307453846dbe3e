package components

import (
	"pos-checkout/internal/pkg/clock"
	"pos-checkout/internal/usecase/commands"
	"pos-checkout/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCheckoutCommands,
		commands.NewCatalogCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCatalogQueries,
		queries.NewOrderQueries,
		// Pre-flight reads stock levels from the same cached catalog snapshot.
		func(q queries.CatalogQueries) commands.StockLevelReader { return q },
	),
)
