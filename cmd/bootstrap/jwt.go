package bootstrap

import (
	"fmt"
	"time"

	"therapy-booking/internal/pkg/config"
	"therapy-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(NewJWTService),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	ttl, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_DURATION %q: %w", cfg.JWT.Duration, err)
	}
	return jwt.NewService(cfg.JWT.Secret, ttl,
		jwt.WithIssuer(cfg.JWT.Issuer),
		jwt.WithLeeway(cfg.JWT.Leeway),
	), nil
}
