package bootstrap

import (
	"context"
	"log/slog"

	"therapy-booking/internal/infra/db"
	"therapy-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(NewDB),
)

// NewDB migrates first when DB_AUTO_MIGRATE is set, so the pool never serves an old schema.
func NewDB(lc fx.Lifecycle, cfg config.DBConfig) (*pgxpool.Pool, error) {
	if cfg.AutoMigrate {
		if err := migrateUp(cfg); err != nil {
			return nil, err
		}
	}

	pool, closePool, err := db.Connect(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func(context.Context) error {
		closePool()
		return nil
	}))
	return pool, nil
}

func migrateUp(cfg config.DBConfig) error {
	m, err := db.NewMigrator(cfg.BuildDSN())
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	applied, err := m.Up()
	if err != nil {
		return err
	}
	version, dirty, _ := m.Version()
	slog.Info("schema migrated", slog.Bool("applied", applied), slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}
