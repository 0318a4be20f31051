package components

import (
	"log/slog"

	"therapy-booking/internal/handler"
	"therapy-booking/internal/handler/api"
	"therapy-booking/internal/handler/middleware"
	"therapy-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewPaymentHandler,
		api.NewSessionHandler,
		api.NewRefundHandler,
		api.NewNotificationHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(RegisterRoutes),
)

type routerParams struct {
	fx.In

	Engine         *gin.Engine
	Config         config.Config
	Logger         *slog.Logger
	AuthMiddleware *middleware.AuthMiddleware
	Limiter        middleware.RateLimiter `optional:"true"`
	Gatherer       prometheus.Gatherer    `optional:"true"`

	Availability *api.AvailabilityHandler
	Payment      *api.PaymentHandler
	Session      *api.SessionHandler
	Refund       *api.RefundHandler
	Notification *api.NotificationHandler
}

func RegisterRoutes(p routerParams) {
	handler.NewRouter(p.Engine, p.Config, p.Logger, handler.Handlers{
		Availability: p.Availability,
		Payment:      p.Payment,
		Session:      p.Session,
		Refund:       p.Refund,
		Notification: p.Notification,
	}, p.AuthMiddleware, p.Limiter, p.Gatherer)
}
