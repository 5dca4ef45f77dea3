// Package app wires configuration, storage, and application handlers
// into a single container shared by the CLI and the worker.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	analyticsServices "github.com/tendhq/tend/internal/analytics/application/services"
	analyticsSubscribers "github.com/tendhq/tend/internal/analytics/application/subscribers"
	analyticsDomain "github.com/tendhq/tend/internal/analytics/domain"
	analyticsCache "github.com/tendhq/tend/internal/analytics/infrastructure/cache"
	goalsCommands "github.com/tendhq/tend/internal/goals/application/commands"
	goalsQueries "github.com/tendhq/tend/internal/goals/application/queries"
	goalsDomain "github.com/tendhq/tend/internal/goals/domain"
	journalCommands "github.com/tendhq/tend/internal/journal/application/commands"
	journalQueries "github.com/tendhq/tend/internal/journal/application/queries"
	journalDomain "github.com/tendhq/tend/internal/journal/domain"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	"github.com/tendhq/tend/internal/shared/infrastructure/database"
	_ "github.com/tendhq/tend/internal/shared/infrastructure/database/postgres" // register Postgres driver
	"github.com/tendhq/tend/internal/shared/infrastructure/database/sqlite"
	"github.com/tendhq/tend/internal/shared/infrastructure/eventbus"
	"github.com/tendhq/tend/internal/shared/infrastructure/migrations"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
	"github.com/tendhq/tend/internal/suggestions"
	trackingCommands "github.com/tendhq/tend/internal/tracking/application/commands"
	trackingQueries "github.com/tendhq/tend/internal/tracking/application/queries"
	trackingDomain "github.com/tendhq/tend/internal/tracking/domain"
	"github.com/tendhq/tend/pkg/config"
	"github.com/tendhq/tend/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis (nil when the snapshot cache is disabled)
	RedisClient *redis.Client

	// Repositories
	HabitRepo   trackingDomain.HabitRepository
	RoutineRepo trackingDomain.RoutineRepository
	EntryRepo   journalDomain.EntryRepository
	GoalRepo    goalsDomain.GoalRepository
	GlowStore   analyticsDomain.GlowSeenStore
	OutboxRepo  outbox.Repository

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Tracking handlers
	CreateHabitHandler   *trackingCommands.CreateHabitHandler
	LogCompletionHandler *trackingCommands.LogCompletionHandler
	ArchiveHabitHandler  *trackingCommands.ArchiveHabitHandler
	CreateRoutineHandler *trackingCommands.CreateRoutineHandler
	LogRoutineHandler    *trackingCommands.LogRoutineHandler
	ListHabitsHandler    *trackingQueries.ListHabitsHandler
	ListRoutinesHandler  *trackingQueries.ListRoutinesHandler
	DailySummaryHandler  *trackingQueries.DailySummaryHandler

	// Journal handlers
	SaveEntryHandler   *journalCommands.SaveEntryHandler
	GetEntryHandler    *journalQueries.GetEntryHandler
	ListEntriesHandler *journalQueries.ListEntriesHandler

	// Goal handlers
	CreateGoalHandler     *goalsCommands.CreateGoalHandler
	UpdateProgressHandler *goalsCommands.UpdateProgressHandler
	CompleteGoalHandler   *goalsCommands.CompleteGoalHandler
	ListGoalsHandler      *goalsQueries.ListGoalsHandler

	// Services
	DashboardService *analyticsServices.DashboardService
	SuggestionClient *suggestions.Client

	// Events
	EventPublisher  eventbus.Publisher
	EventBus        *eventbus.InProcessEventBus
	OutboxProcessor *outbox.Processor
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NoopMetrics{},
	}

	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := c.initRepositories(); err != nil {
		c.Close()
		return nil, err
	}
	c.initRedis()
	c.initHandlers()
	c.initServices()
	c.initEvents()

	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	dbCfg := database.Config{
		URL:        c.Config.DatabaseURL,
		SQLitePath: c.Config.SQLitePath,
	}
	if c.Config.LocalMode() {
		dbCfg.Driver = database.DriverSQLite
		if err := database.EnsureDirectory(dbCfg.SQLitePath); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	conn, err := database.NewConnection(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DBConn = conn
	c.DBDriver = conn.Driver()

	switch c.DBDriver {
	case database.DriverSQLite:
		sqliteConn, ok := conn.(*sqlite.Connection)
		if !ok {
			return fmt.Errorf("unexpected sqlite connection type %T", conn)
		}
		if err := migrations.RunSQLiteMigrations(ctx, sqliteConn.DB()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	case database.DriverPostgres:
		if err := migrations.RunPostgresMigrations(ctx, conn); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	c.UnitOfWork = database.NewUnitOfWork(conn)
	return nil
}

func (c *Container) initRepositories() error {
	factory := NewRepositoryFactory(c.DBConn)

	var err error
	if c.HabitRepo, err = factory.HabitRepository(); err != nil {
		return err
	}
	if c.RoutineRepo, err = factory.RoutineRepository(); err != nil {
		return err
	}
	if c.EntryRepo, err = factory.EntryRepository(); err != nil {
		return err
	}
	if c.GoalRepo, err = factory.GoalRepository(); err != nil {
		return err
	}
	if c.GlowStore, err = factory.GlowSeenStore(); err != nil {
		return err
	}
	if c.OutboxRepo, err = factory.OutboxRepository(); err != nil {
		return err
	}
	return nil
}

func (c *Container) initRedis() {
	if c.Config.RedisURL == "" {
		return
	}
	opts, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid REDIS_URL, snapshot cache disabled", "error", err)
		return
	}
	c.RedisClient = redis.NewClient(opts)
}

func (c *Container) initHandlers() {
	c.CreateHabitHandler = trackingCommands.NewCreateHabitHandler(c.HabitRepo, c.OutboxRepo, c.UnitOfWork)
	c.LogCompletionHandler = trackingCommands.NewLogCompletionHandler(c.HabitRepo, c.OutboxRepo, c.UnitOfWork)
	c.ArchiveHabitHandler = trackingCommands.NewArchiveHabitHandler(c.HabitRepo, c.OutboxRepo, c.UnitOfWork)
	c.CreateRoutineHandler = trackingCommands.NewCreateRoutineHandler(c.RoutineRepo, c.OutboxRepo, c.UnitOfWork)
	c.LogRoutineHandler = trackingCommands.NewLogRoutineHandler(c.RoutineRepo, c.OutboxRepo, c.UnitOfWork)
	c.ListHabitsHandler = trackingQueries.NewListHabitsHandler(c.HabitRepo)
	c.ListRoutinesHandler = trackingQueries.NewListRoutinesHandler(c.RoutineRepo)
	c.DailySummaryHandler = trackingQueries.NewDailySummaryHandler(c.HabitRepo, c.RoutineRepo)

	c.SaveEntryHandler = journalCommands.NewSaveEntryHandler(c.EntryRepo, c.DailySummaryHandler, c.OutboxRepo, c.UnitOfWork)
	c.GetEntryHandler = journalQueries.NewGetEntryHandler(c.EntryRepo)
	c.ListEntriesHandler = journalQueries.NewListEntriesHandler(c.EntryRepo)

	c.CreateGoalHandler = goalsCommands.NewCreateGoalHandler(c.GoalRepo, c.OutboxRepo, c.UnitOfWork)
	c.UpdateProgressHandler = goalsCommands.NewUpdateProgressHandler(c.GoalRepo, c.OutboxRepo, c.UnitOfWork)
	c.CompleteGoalHandler = goalsCommands.NewCompleteGoalHandler(c.GoalRepo, c.OutboxRepo, c.UnitOfWork)
	c.ListGoalsHandler = goalsQueries.NewListGoalsHandler(c.GoalRepo)
}

func (c *Container) initServices() {
	var cache analyticsServices.SnapshotCache
	if c.RedisClient != nil {
		cache = analyticsCache.NewRedisSnapshotCache(c.RedisClient, c.Config.DashboardCacheTTL, c.Logger)
	}
	c.DashboardService = analyticsServices.NewDashboardService(
		c.HabitRepo, c.RoutineRepo, c.EntryRepo, c.GoalRepo, c.GlowStore, cache, c.Logger,
	).WithMetrics(c.Metrics).WithOutbox(c.OutboxRepo, c.UnitOfWork)

	suggestCfg := suggestions.DefaultConfig(c.Config.SuggestionsURL)
	suggestCfg.RequestTimeout = c.Config.SuggestionsTimeout
	c.SuggestionClient = suggestions.NewClient(suggestCfg, c.Logger)
}

func (c *Container) initEvents() {
	c.EventBus = eventbus.NewInProcessEventBus(c.Logger)

	if c.RedisClient != nil {
		invalidator := analyticsCache.NewRedisSnapshotCache(c.RedisClient, c.Config.DashboardCacheTTL, c.Logger)
		c.EventBus.RegisterConsumer(analyticsSubscribers.NewCacheSubscriber(invalidator, c.Logger))
	}

	// Without a broker the outbox drains into the in-process bus, so
	// local mode still observes its own domain events.
	if c.Config.RabbitMQURL != "" {
		publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
		if err != nil {
			c.Logger.Warn("RabbitMQ not available, using in-process event bus", "error", err)
			c.EventPublisher = c.EventBus
		} else {
			c.EventPublisher = publisher
		}
	} else {
		c.EventPublisher = c.EventBus
	}

	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, outbox.ProcessorConfig{
		PollInterval: c.Config.OutboxPollInterval,
		BatchSize:    c.Config.OutboxBatchSize,
		MaxRetries:   c.Config.OutboxMaxRetries,
	}, c.Logger)
}

// Close releases all held resources.
func (c *Container) Close() error {
	var firstErr error
	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
