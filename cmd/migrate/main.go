package main

// Run database migrations:
//   go run ./cmd/migrate up
//   go run ./cmd/migrate down
//   go run ./cmd/migrate version

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"outreach-backend/internal/shared/config"
	"outreach-backend/internal/shared/storage/db"
	"outreach-backend/internal/shared/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the outreach database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		schemaCmd("up", "Apply all pending migrations", func(ctx context.Context, sqlDB *sql.DB) error {
			if err := db.RunMigrations(ctx, sqlDB); err != nil {
				return err
			}
			telemetry.Info("migrate.complete", nil)
			return nil
		}),
		schemaCmd("down", "Revert the latest migration", func(ctx context.Context, sqlDB *sql.DB) error {
			if err := db.RollbackMigration(ctx, sqlDB); err != nil {
				return err
			}
			telemetry.Info("migrate.rolled_back", nil)
			return nil
		}),
		schemaCmd("version", "Print the applied schema version", func(ctx context.Context, sqlDB *sql.DB) error {
			version, err := db.SchemaVersion(ctx, sqlDB)
			if err != nil {
				return err
			}
			fmt.Println(version)
			return nil
		}),
	)
	return root
}

func schemaCmd(use, short string, run func(context.Context, *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer sqlDB.Close()
			return run(ctx, sqlDB)
		},
	}
}
