package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/eaglebank/account-service/internal/command"
	"github.com/eaglebank/account-service/internal/events"
	"github.com/eaglebank/account-service/internal/handler"
	"github.com/eaglebank/account-service/internal/migrations"
	"github.com/eaglebank/account-service/internal/query"
	"github.com/eaglebank/account-service/internal/redis"
	"github.com/eaglebank/account-service/internal/repository"
	"github.com/eaglebank/account-service/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.Bool("AUTO_MIGRATE", cfg.AutoMigrate),
		slog.Bool("EVENTS_ENABLED", cfg.RedisAddr != ""),
		slog.String("REDIS_STREAM", cfg.RedisStream),
		slog.Bool("AUTH_ENABLED", cfg.JWTSecret != ""),
		slog.Int("RATE_LIMIT_RPS", cfg.RateLimitRPS),
	)

	db, err := repository.Open(ctx, cfg.DatabaseURI, repository.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		PingTimeout:     cfg.DatabasePingTimeout,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database", slog.String("error", err.Error()))
		return err
	}
	defer db.Close()

	if cfg.AutoMigrate {
		runner, err := migrations.NewRunner(db, appLogger)
		if err != nil {
			return err
		}
		if err := runner.Up(ctx); err != nil {
			appLogger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			return err
		}
	}

	var publisher command.EventPublisher = events.NopPublisher{}
	if cfg.RedisAddr != "" {
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			appLogger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			return err
		}
		defer client.Close()
		publisher = events.NewPublisher(client, cfg.RedisStream, cfg.RedisStreamMaxLen)
	}

	writeRepo := repository.NewAccountWriteRepository(db)
	readRepo := repository.NewAccountReadRepository(db)

	accounts := handler.NewAccountHandler(
		command.NewAccountCommandService(writeRepo, publisher, appLogger),
		query.NewAccountQueryService(readRepo),
	)

	return server.NewServer(cfg, appLogger, accounts).Start(ctx)
}
