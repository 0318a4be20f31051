package components

import (
	"therapy-booking/internal/infra/secretbox"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/infra/uow"
	"therapy-booking/internal/pkg/config"
	"therapy-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	unitOfWorkModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
	fx.Annotate(
		NewSealer,
		fx.As(new(shared.Sealer)),
	),
)

// Repositories and read stores are built per transaction inside the UoW.
var unitOfWorkModule = fx.Module("persistence/uow",
	fx.Provide(
		fx.Annotate(
			NewUnitOfWork,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

func NewSealer(cfg config.Config) (*secretbox.Sealer, error) {
	return secretbox.NewSealer(cfg.Crypto.BankDetailsKey)
}

func NewUnitOfWork(pool *pgxpool.Pool, q *sqlc.Queries, sealer shared.Sealer) *uow.PostgresUoW {
	return uow.NewPostgresUoW(pool, q, sealer)
}
