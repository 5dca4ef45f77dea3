package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/adapter/cli/goal"
	"github.com/tendhq/tend/adapter/cli/habit"
	"github.com/tendhq/tend/adapter/cli/journal"
	"github.com/tendhq/tend/adapter/cli/routine"
	"github.com/tendhq/tend/internal/app"
	"github.com/tendhq/tend/pkg/config"
	"github.com/tendhq/tend/pkg/observability"
)

func main() {
	// Setup logger
	logger := observability.LoggerFromEnv()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}

	// Update logger level based on config
	if cfg.IsDevelopment() {
		devCfg := observability.DefaultLogConfig()
		devCfg.Level = observability.LogLevelDebug
		logger = observability.NewLogger(devCfg)
	}
	cli.SetLogger(logger)

	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		// Drain the outbox in the background so local mode still
		// observes its own domain events
		if cfg.OutboxProcessorEnabled {
			if err := container.OutboxProcessor.Start(ctx); err != nil {
				logger.Warn("failed to start outbox processor", "error", err)
			}
		} else {
			logger.Info("outbox processor disabled in CLI")
		}

		userID, err := uuid.Parse(cfg.UserID)
		if err != nil {
			logger.Error("invalid TEND_USER_ID", "error", err)
			os.Exit(1)
		}
		cliApp = cli.NewApp(container, userID)
		cli.SetMetrics(container.Metrics)
	}

	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(habit.Cmd)
	cli.AddCommand(routine.Cmd)
	cli.AddCommand(journal.Cmd)
	cli.AddCommand(goal.Cmd)

	// Execute CLI
	cli.Execute()
}
