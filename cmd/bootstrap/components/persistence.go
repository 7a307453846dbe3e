package components

import (
	"pos-checkout/internal/infra/db"
	"pos-checkout/internal/infra/readstore"
	"pos-checkout/internal/infra/uow"
	"pos-checkout/internal/usecase/queries"
	"pos-checkout/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Catalog
		fx.Annotate(
			readstore.NewProductReadStore,
			fx.As(new(queries.CatalogReadStore)),
		),
		// Order
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
	),
)

// Write-side repositories are created per transaction by the unit of work.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
