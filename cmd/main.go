package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/eaglebank/account-service/internal/config"
	"github.com/eaglebank/account-service/internal/logger"
	"github.com/spf13/cobra"
)

const version = "1.0"

var (
	cfg       *config.ServerEnvironment
	appLogger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "account-service",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "Account REST API service",
	Long:              `account-service exposes create, read, update and delete operations on accounts stored in PostgreSQL`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.NewServerConfig()
		if err != nil {
			log.Printf("failed to load configuration: %v", err.Error())
			return err
		}

		appLogger = logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
