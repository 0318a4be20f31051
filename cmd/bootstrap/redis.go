package bootstrap

import (
	"context"
	"log/slog"

	"therapy-booking/internal/handler/middleware"
	"therapy-booking/internal/infra/ratelimit"
	"therapy-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
		NewRateLimiter,
	),
)

// NewRedisClient returns nil when REDIS_ADDR is empty.
func NewRedisClient(lc fx.Lifecycle, cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				slog.Warn("redis unreachable at startup", "addr", cfg.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return rdb
}

// NewRateLimiter yields a nil limiter without redis, which RateLimit treats as pass-through.
func NewRateLimiter(cfg config.Config, rdb *redis.Client) middleware.RateLimiter {
	if rdb == nil {
		slog.Warn("rate limiting disabled (no redis configured)")
		return nil
	}
	return ratelimit.NewLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window, "booking", cfg.RateLimit.FailOpen)
}
