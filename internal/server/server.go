package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/eaglebank/account-service/internal/config"
	"github.com/eaglebank/account-service/internal/handler"
	"github.com/eaglebank/account-service/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Server struct {
	config *config.ServerEnvironment
	logger *slog.Logger
	router *gin.Engine
}

func NewServer(cfg *config.ServerEnvironment, logger *slog.Logger, accounts *handler.AccountHandler) *Server {
	if cfg.Environment == "prod" || cfg.Environment == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	return &Server{
		config: cfg,
		logger: logger,
		router: NewRouter(cfg, logger, accounts),
	}
}

// NewRouter assembles the gin engine with middleware and the route table.
func NewRouter(cfg *config.ServerEnvironment, logger *slog.Logger, accounts *handler.AccountHandler) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(
		middleware.RequestID(),
		middleware.LoggingMiddleware(logger),
		gin.Recovery(),
		middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	router.NoRoute(func(c *gin.Context) {
		middleware.RespondWithError(c, http.StatusNotFound, "The requested URL was not found on the server")
	})
	router.NoMethod(func(c *gin.Context) {
		middleware.RespondWithError(c, http.StatusMethodNotAllowed, "The method is not allowed for the requested URL")
	})

	router.GET("/", handler.Index)
	router.GET("/health", handler.Health)

	group := router.Group(handler.AccountsPath)
	if cfg.JWTSecret != "" {
		group.Use(middleware.AuthMiddleware([]byte(cfg.JWTSecret)))
	}
	accounts.Register(group)

	return router
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("service listening",
			slog.String("environment", s.config.Environment),
			slog.String("address", httpServer.Addr))

		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ServerShutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("shutting down HTTP server")

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("HTTP server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}
