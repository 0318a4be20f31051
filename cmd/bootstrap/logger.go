package bootstrap

import (
	"log/slog"

	"therapy-booking/internal/handler/middleware"
	"therapy-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger also installs the logger as the slog default so use cases can log without injection.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := middleware.NewLogger(cfg)
	slog.SetDefault(logger)
	return logger
}
