//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"therapy-booking/cmd/bootstrap"
	"therapy-booking/cmd/bootstrap/components"
	"therapy-booking/internal/pkg/config"
	"therapy-booking/tests/common/dbtest"

	"github.com/alicebob/miniredis/v2"
	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "booking"
	pgPassword = "booking"
	pgImage    = "postgres:17"
)

// postgres is shared by every suite in the process; each suite gets its own database.
var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
	pgErr       error
)

type pgEndpoint struct {
	host string
	port nat.Port
}

func (e pgEndpoint) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, e.host, e.port.Port(), database)
}

func startPostgres() (pgEndpoint, error) {
	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		pgContainer, pgErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        pgImage,
				ExposedPorts: []string{"5432/tcp"},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				Cmd: []string{"postgres",
					"-c", "fsync=off",
					"-c", "synchronous_commit=off",
					"-c", "full_page_writes=off",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
					return pgEndpoint{host: host, port: port}.dsn("postgres")
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "booking-e2e"},
			},
			Started: true,
		})
	})
	if pgErr != nil {
		return pgEndpoint{}, pgErr
	}

	ctx := context.Background()
	host, err := pgContainer.Host(ctx)
	if err != nil {
		return pgEndpoint{}, err
	}
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return pgEndpoint{}, err
	}
	return pgEndpoint{host: host, port: port}, nil
}

// createDatabase makes an empty database and drops it when the suite ends.
// The schema is left to the application's own auto-migration.
func createDatabase(t *testing.T, ep pgEndpoint) config.DBConfig {
	t.Helper()
	name := "booking_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	admin, err := pgxpool.New(ctx, ep.dsn("postgres"))
	require.NoError(t, err)
	defer admin.Close()

	require.Eventually(t, func() bool {
		_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
		return err == nil
	}, 5*time.Second, 250*time.Millisecond, "create database %s", name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, ep.dsn("postgres"))
		if err != nil {
			slog.Warn("drop database skipped", "database", name, "error", err)
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("drop database failed", "database", name, "error", err)
		}
	})

	cfg := config.NewTestConfig().DB
	cfg.Host, cfg.Port = ep.host, ep.port.Port()
	cfg.User, cfg.Password = pgUser, pgPassword
	cfg.DBName = name
	cfg.AutoMigrate = true
	return cfg
}

type app struct {
	router *gin.Engine
	pool   *pgxpool.Pool
	cfg    config.Config
}

// startApp wires the production module graph over the test database and an
// in-memory redis, leaving out only the config loader and the HTTP listener.
func startApp(t *testing.T, dbCfg config.DBConfig) app {
	t.Helper()

	redisSrv := miniredis.RunT(t)
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	cfg.Redis.Addr = redisSrv.Addr()
	cfg.RateLimit.Limit = 1000

	var a app
	fxApp := fx.New(
		fx.Supply(cfg),
		bootstrap.ConfigSections,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.DBModule,
		bootstrap.JWTModule,
		bootstrap.RedisModule,
		bootstrap.MetricsModule,
		components.PersistenceModule,
		components.RepositoryModule,
		components.UseCaseModule,
		components.HandlerModule,
		bootstrap.RelayModule,
		fx.Populate(&a.router, &a.pool, &a.cfg),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, fxApp.Start(ctx), "start application graph")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := fxApp.Stop(ctx); err != nil {
			slog.Warn("stop application graph", "error", err)
		}
	})
	return a
}

// SharedSuite gives e2e suites a migrated database, the wired router and the
// config it was built with. Tables are truncated before every test.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	ep, err := startPostgres()
	require.NoError(t, err, "start postgres container")

	a := startApp(t, createDatabase(t, ep))
	s.Router, s.DB, s.Config = a.router, a.pool, a.cfg
	slog.Info("e2e environment ready", "postgres", ep.host+":"+ep.port.Port(), "database", s.Config.DB.DBName)
}

func (s *SharedSuite) SetupTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "reset database")
}
