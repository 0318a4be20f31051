// Command bookingctl runs schema migrations and maintenance sweeps against the booking database.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"therapy-booking/internal/infra/db"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/infra/uow"
	"therapy-booking/internal/pkg/clock"
	"therapy-booking/internal/pkg/config"
	"therapy-booking/internal/usecase/commands"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "bookingctl",
		Short:        "Operate the therapy booking database",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(sweepIntentsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadDBConfig reads only the DB_* variables so the CLI runs without the server's secrets.
func loadDBConfig() (config.DBConfig, error) {
	_ = godotenv.Load()

	var cfg config.DBConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return config.DBConfig{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func withMigrator(fn func(m *db.Migrator) error) error {
	cfg, err := loadDBConfig()
	if err != nil {
		return err
	}
	m, err := db.NewMigrator(cfg.BuildDSN())
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			slog.Warn("failed to close migrator", "error", err.Error())
		}
	}()
	return fn(m)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the embedded schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(m *db.Migrator) error {
				applied, err := m.Up()
				if err != nil {
					return err
				}
				if !applied {
					cmd.Println("schema is up to date")
					return nil
				}
				v, _, err := m.Version()
				if err != nil {
					return err
				}
				cmd.Printf("migrated to version %d\n", v)
				return nil
			})
		},
	})

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			return withMigrator(func(m *db.Migrator) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				cmd.Printf("rolled back %d migration(s)\n", steps)
				return nil
			})
		},
	}
	downCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(downCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "force VERSION",
		Short: "Mark VERSION as applied and clear the dirty flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("version must be an integer: %w", err)
			}
			return withMigrator(func(m *db.Migrator) error {
				if err := m.Force(version); err != nil {
					return err
				}
				cmd.Printf("forced version %d\n", version)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(m *db.Migrator) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				cmd.Printf("version %d (dirty=%t)\n", v, dirty)
				return nil
			})
		},
	})

	return cmd
}

func sweepIntentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep-intents",
		Short: "Expire stale pending payment intents and drop expired idempotency keys",
		RunE: func(cmd *cobra.Command, _ []string) error {
			olderThan, _ := cmd.Flags().GetDuration("older-than")

			cfg, err := loadDBConfig()
			if err != nil {
				return err
			}
			pool, cleanup, err := db.Connect(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			// the sweep never touches sealed bank details
			maintenance := commands.NewMaintenanceUseCase(uow.NewPostgresUoW(pool, sqlc.New(), nil), clock.NewRealClock())
			res, err := maintenance.SweepStaleIntents(cmd.Context(), olderThan)
			if err != nil {
				return err
			}
			cmd.Printf("expired %d intent(s), deleted %d idempotency key(s)\n", res.ExpiredIntents, res.DeletedIdemKeys)
			return nil
		},
	}
	cmd.Flags().Duration("older-than", 2*time.Hour, "Expire PENDING intents created before now minus this age")
	return cmd
}
