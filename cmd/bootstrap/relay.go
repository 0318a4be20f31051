package bootstrap

import (
	"context"

	"therapy-booking/internal/infra/relay"
	"therapy-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RelayModule = fx.Module("relay",
	fx.Provide(
		NewRelay,
	),
	fx.Invoke(func(*relay.Relay) {}),
)

func NewRelay(lc fx.Lifecycle, cfg config.Config, pool *pgxpool.Pool, store relay.JobStore) *relay.Relay {
	// keep the interface nil when kafka is not configured
	var writer relay.MessageWriter
	if w := relay.NewKafkaWriter(cfg.Kafka.Brokers); w != nil {
		writer = w
	}

	r := relay.New(pool, store, writer, relay.Config{
		PollInterval: cfg.Kafka.PollInterval,
		BatchSize:    cfg.Kafka.BatchSize,
	})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			r.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return r.Stop(ctx)
		},
	})
	return r
}
