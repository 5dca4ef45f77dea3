package app

import (
	"fmt"

	analyticsDomain "github.com/tendhq/tend/internal/analytics/domain"
	analyticsPersistence "github.com/tendhq/tend/internal/analytics/infrastructure/persistence"
	goalsDomain "github.com/tendhq/tend/internal/goals/domain"
	goalsPersistence "github.com/tendhq/tend/internal/goals/infrastructure/persistence"
	journalDomain "github.com/tendhq/tend/internal/journal/domain"
	journalPersistence "github.com/tendhq/tend/internal/journal/infrastructure/persistence"
	"github.com/tendhq/tend/internal/shared/infrastructure/database"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
	trackingDomain "github.com/tendhq/tend/internal/tracking/domain"
	trackingPersistence "github.com/tendhq/tend/internal/tracking/infrastructure/persistence"
)

// RepositoryFactory creates repositories based on the database driver.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{
		conn:   conn,
		driver: conn.Driver(),
	}
}

// HabitRepository creates a habit repository for the configured driver.
func (f *RepositoryFactory) HabitRepository() (trackingDomain.HabitRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return trackingPersistence.NewPostgresHabitRepository(f.conn), nil
	case database.DriverSQLite:
		return trackingPersistence.NewSQLiteHabitRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// RoutineRepository creates a routine repository for the configured driver.
func (f *RepositoryFactory) RoutineRepository() (trackingDomain.RoutineRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return trackingPersistence.NewPostgresRoutineRepository(f.conn), nil
	case database.DriverSQLite:
		return trackingPersistence.NewSQLiteRoutineRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// EntryRepository creates a journal entry repository for the configured driver.
func (f *RepositoryFactory) EntryRepository() (journalDomain.EntryRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return journalPersistence.NewPostgresEntryRepository(f.conn), nil
	case database.DriverSQLite:
		return journalPersistence.NewSQLiteEntryRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// GoalRepository creates a goal repository for the configured driver.
func (f *RepositoryFactory) GoalRepository() (goalsDomain.GoalRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return goalsPersistence.NewPostgresGoalRepository(f.conn), nil
	case database.DriverSQLite:
		return goalsPersistence.NewSQLiteGoalRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// GlowSeenStore creates a glow-moment seen store for the configured driver.
func (f *RepositoryFactory) GlowSeenStore() (analyticsDomain.GlowSeenStore, error) {
	switch f.driver {
	case database.DriverPostgres:
		return analyticsPersistence.NewPostgresGlowStore(f.conn), nil
	case database.DriverSQLite:
		return analyticsPersistence.NewSQLiteGlowStore(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// OutboxRepository creates an outbox repository for the configured driver.
func (f *RepositoryFactory) OutboxRepository() (outbox.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return outbox.NewPostgresRepository(f.conn), nil
	case database.DriverSQLite:
		return outbox.NewSQLiteRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}
