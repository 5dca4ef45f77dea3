package cli

import (
	"github.com/google/uuid"

	analyticsServices "github.com/tendhq/tend/internal/analytics/application/services"
	"github.com/tendhq/tend/internal/app"
	goalsCommands "github.com/tendhq/tend/internal/goals/application/commands"
	goalsQueries "github.com/tendhq/tend/internal/goals/application/queries"
	journalCommands "github.com/tendhq/tend/internal/journal/application/commands"
	journalQueries "github.com/tendhq/tend/internal/journal/application/queries"
	"github.com/tendhq/tend/internal/suggestions"
	trackingCommands "github.com/tendhq/tend/internal/tracking/application/commands"
	trackingQueries "github.com/tendhq/tend/internal/tracking/application/queries"
)

// App holds the CLI application dependencies.
type App struct {
	CurrentUserID uuid.UUID

	// Tracking
	CreateHabitHandler   *trackingCommands.CreateHabitHandler
	LogCompletionHandler *trackingCommands.LogCompletionHandler
	ArchiveHabitHandler  *trackingCommands.ArchiveHabitHandler
	CreateRoutineHandler *trackingCommands.CreateRoutineHandler
	LogRoutineHandler    *trackingCommands.LogRoutineHandler
	ListHabitsHandler    *trackingQueries.ListHabitsHandler
	ListRoutinesHandler  *trackingQueries.ListRoutinesHandler
	DailySummaryHandler  *trackingQueries.DailySummaryHandler

	// Journal
	SaveEntryHandler   *journalCommands.SaveEntryHandler
	GetEntryHandler    *journalQueries.GetEntryHandler
	ListEntriesHandler *journalQueries.ListEntriesHandler

	// Goals
	CreateGoalHandler     *goalsCommands.CreateGoalHandler
	UpdateProgressHandler *goalsCommands.UpdateProgressHandler
	CompleteGoalHandler   *goalsCommands.CompleteGoalHandler
	ListGoalsHandler      *goalsQueries.ListGoalsHandler

	// Services
	DashboardService *analyticsServices.DashboardService
	SuggestionClient *suggestions.Client
}

// NewApp builds the CLI app from a wired container.
func NewApp(container *app.Container, userID uuid.UUID) *App {
	return &App{
		CurrentUserID: userID,

		CreateHabitHandler:   container.CreateHabitHandler,
		LogCompletionHandler: container.LogCompletionHandler,
		ArchiveHabitHandler:  container.ArchiveHabitHandler,
		CreateRoutineHandler: container.CreateRoutineHandler,
		LogRoutineHandler:    container.LogRoutineHandler,
		ListHabitsHandler:    container.ListHabitsHandler,
		ListRoutinesHandler:  container.ListRoutinesHandler,
		DailySummaryHandler:  container.DailySummaryHandler,

		SaveEntryHandler:   container.SaveEntryHandler,
		GetEntryHandler:    container.GetEntryHandler,
		ListEntriesHandler: container.ListEntriesHandler,

		CreateGoalHandler:     container.CreateGoalHandler,
		UpdateProgressHandler: container.UpdateProgressHandler,
		CompleteGoalHandler:   container.CompleteGoalHandler,
		ListGoalsHandler:      container.ListGoalsHandler,

		DashboardService: container.DashboardService,
		SuggestionClient: container.SuggestionClient,
	}
}

var globalApp *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	globalApp = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return globalApp
}
