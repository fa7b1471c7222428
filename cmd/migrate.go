package main

import (
	"context"
	"log/slog"

	"github.com/eaglebank/account-service/internal/migrations"
	"github.com/eaglebank/account-service/internal/repository"
	"github.com/spf13/cobra"
)

var downTarget int64

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(cmd.Context(), func(ctx context.Context, r *migrations.Runner) error {
			return r.Up(ctx)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the latest migration, or down to --to",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(cmd.Context(), func(ctx context.Context, r *migrations.Runner) error {
			return r.Down(ctx, downTarget)
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which migrations are applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(cmd.Context(), func(ctx context.Context, r *migrations.Runner) error {
			return r.Status(ctx)
		})
	},
}

func init() {
	migrateDownCmd.Flags().Int64Var(&downTarget, "to", 0, "roll back every migration above this version")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func withRunner(ctx context.Context, fn func(context.Context, *migrations.Runner) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := repository.Open(ctx, cfg.DatabaseURI, repository.PoolConfig{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		PingTimeout:  cfg.DatabasePingTimeout,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database", slog.String("error", err.Error()))
		return err
	}
	defer db.Close()

	runner, err := migrations.NewRunner(db, appLogger)
	if err != nil {
		return err
	}
	if err := fn(ctx, runner); err != nil {
		appLogger.Error("Migration failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}
