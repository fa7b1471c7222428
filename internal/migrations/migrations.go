// Package migrations embeds the schema migrations and applies them with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

// Runner applies the embedded migrations to a PostgreSQL database.
type Runner struct {
	db  *sql.DB
	log *slog.Logger
}

func NewRunner(db *sql.DB, log *slog.Logger) (*Runner, error) {
	if db == nil {
		return nil, fmt.Errorf("nil database provided")
	}
	if log == nil {
		log = slog.Default()
	}
	goose.SetBaseFS(FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("configure goose: %w", err)
	}
	goose.SetLogger(goose.NopLogger())
	return &Runner{db: db, log: log}, nil
}

// Up applies all pending migrations.
func (r *Runner) Up(ctx context.Context) error {
	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	r.log.Info("applying migrations")
	if err := goose.UpContext(runCtx, r.db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	version, err := goose.GetDBVersionContext(runCtx, r.db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	r.log.Info("migrations applied", slog.Int64("version", version))
	return nil
}

// Down rolls back the latest migration, or every migration above target when
// target is positive.
func (r *Runner) Down(ctx context.Context, target int64) error {
	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if target > 0 {
		r.log.Info("rolling back migrations", slog.Int64("target", target))
		if err := goose.DownToContext(runCtx, r.db, ".", target); err != nil {
			return fmt.Errorf("rollback to version %d: %w", target, err)
		}
	} else {
		r.log.Info("rolling back latest migration")
		if err := goose.DownContext(runCtx, r.db, "."); err != nil {
			return fmt.Errorf("rollback latest migration: %w", err)
		}
	}
	r.log.Info("rollback complete")
	return nil
}

// Status logs the applied state of every migration.
func (r *Runner) Status(ctx context.Context) error {
	migrations, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		return fmt.Errorf("collect migrations: %w", err)
	}
	current, err := goose.GetDBVersionContext(ctx, r.db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for _, m := range migrations {
		r.log.Info("migration",
			slog.Int64("version", m.Version),
			slog.String("source", m.Source),
			slog.Bool("applied", m.Version <= current))
	}
	return nil
}
