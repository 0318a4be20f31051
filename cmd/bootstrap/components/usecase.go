package components

import (
	"therapy-booking/internal/infra/gateway"
	"therapy-booking/internal/pkg/clock"
	"therapy-booking/internal/pkg/config"
	"therapy-booking/internal/usecase"
	"therapy-booking/internal/usecase/commands"
	"therapy-booking/internal/usecase/queries"
	"therapy-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	shared.NewBookingSettings,
	fx.Annotate(
		NewPaymentGateway,
		fx.As(new(shared.PaymentGateway)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAvailabilityUseCase,
		commands.NewBookingUseCase,
		commands.NewPaymentUseCase,
		commands.NewSessionUseCase,
		commands.NewRefundUseCase,
		commands.NewNotificationUseCase,
		commands.NewMaintenanceUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSlotQueries,
		queries.NewSessionQueries,
		queries.NewPaymentQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewPaymentGateway(cfg config.Config) *gateway.PayHere {
	return gateway.NewPayHere(cfg.Gateway)
}
