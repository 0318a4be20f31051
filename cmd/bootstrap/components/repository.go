package components

import (
	"therapy-booking/internal/infra/relay"
	"therapy-booking/internal/infra/repository"
	sqlc "therapy-booking/internal/infra/sqlc/generated"

	"go.uber.org/fx"
)

// RepositoryModule provides repositories used outside a UoW transaction.
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Notification outbox, drained by the relay
		fx.Annotate(
			NewNotificationRepository,
			fx.As(new(relay.JobStore)),
		),
	),
)

func NewNotificationRepository(q *sqlc.Queries) *repository.NotificationRepository {
	return repository.NewNotificationRepository(q)
}
