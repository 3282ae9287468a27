// Package cli provides the initialization shared by cmd/payslip and
// cmd/payslip-batch.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"payslip/internal/amqp"
	"payslip/internal/config"
	applog "payslip/internal/log"
	"payslip/internal/services"
	"payslip/internal/storage"
)

// SetupLogger builds the stderr logger at the given level and installs it
// as the slog default. An unknown level falls back to warn.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	parsed, err := applog.ParseLevel(level)
	if err == nil {
		cfg.Level = parsed
	}

	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadConfig loads the configuration, builds the logger at the configured
// level and validates the rest. It exits the process on validation failure.
func LoadConfig() (*config.Config, *applog.Logger) {
	cfg := config.Load()
	logger := SetupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			applog.NewFields().WithOperation(applog.OpStartup).WithError(err).ToSlice()...)
		os.Exit(1)
	}
	return cfg, logger
}

// InitHistory opens the payslip history database. It returns nil when
// history is disabled or the database cannot be opened; the calculator
// keeps working without it.
func InitHistory(logger *applog.Logger, cfg *config.Config) *storage.SQLiteRepository {
	if cfg.HistoryDBPath == "" {
		return nil
	}
	repo, err := storage.NewSQLiteRepository(cfg.HistoryDBPath)
	if err != nil {
		logger.WithComponent(applog.ComponentStorage).Warn("Payslip history disabled",
			applog.NewFields().
				WithOperation(applog.OpStartup).
				WithError(err).
				ToSlice()...,
		)
		return nil
	}
	version, err := storage.SchemaVersion(cfg.HistoryDBPath)
	if err != nil {
		logger.WithComponent(applog.ComponentStorage).Warn("Cannot read history schema version",
			applog.NewFields().WithOperation(applog.OpStartup).WithError(err).ToSlice()...)
	}
	logger.Info("Payslip history enabled",
		applog.FieldPath, cfg.HistoryDBPath,
		"schema_version", version)
	return repo
}

// InitPublisher connects to the broker. It returns nil when events are
// disabled or the broker is unreachable.
func InitPublisher(logger *applog.Logger, cfg *config.Config) *amqp.Client {
	if cfg.AMQPURL == "" {
		return nil
	}
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.WithComponent(applog.ComponentAMQP).Warn("Payslip events disabled",
			applog.NewFields().
				WithOperation(applog.OpStartup).
				WithError(err).
				ToSlice()...,
		)
		return nil
	}
	logger.Info("Publishing payslip events",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)
	return client
}

// NewService wires the payslip service to whichever adapters are enabled.
// The returned cleanup closes them.
func NewService(logger *applog.Logger, cfg *config.Config) (*services.PayslipService, func()) {
	var (
		history   services.HistoryWriter
		publisher services.EventPublisher
		closers   []func() error
	)

	if repo := InitHistory(logger, cfg); repo != nil {
		history = repo
		closers = append(closers, repo.Close)
	}
	if client := InitPublisher(logger, cfg); client != nil {
		publisher = client
		closers = append(closers, client.Close)
	}

	svc := services.NewPayslipService(cfg.Policy(), history, publisher, logger)
	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("Cleanup failed", applog.FieldError, err)
			}
		}
	}
	return svc, cleanup
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(logger *applog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
