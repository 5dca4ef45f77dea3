package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goalsCommands "github.com/tendhq/tend/internal/goals/application/commands"
	journalCommands "github.com/tendhq/tend/internal/journal/application/commands"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/database"
	trackingCommands "github.com/tendhq/tend/internal/tracking/application/commands"
	trackingQueries "github.com/tendhq/tend/internal/tracking/application/queries"
	"github.com/tendhq/tend/pkg/config"
)

func setupContainer(t *testing.T) (*Container, context.Context, uuid.UUID) {
	t.Helper()

	cfg := &config.Config{
		AppEnv:             "test",
		SQLitePath:         filepath.Join(t.TempDir(), "test.db"),
		UserID:             "00000000-0000-0000-0000-000000000001",
		SuggestionsTimeout: 2 * time.Second,
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	ctx := context.Background()
	container, err := NewContainer(ctx, cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	return container, ctx, uuid.MustParse(cfg.UserID)
}

func TestLocalModeContainer(t *testing.T) {
	container, _, _ := setupContainer(t)

	assert.Equal(t, database.DriverSQLite, container.DBDriver)
	assert.Nil(t, container.RedisClient)

	assert.NotNil(t, container.HabitRepo)
	assert.NotNil(t, container.RoutineRepo)
	assert.NotNil(t, container.EntryRepo)
	assert.NotNil(t, container.GoalRepo)
	assert.NotNil(t, container.GlowStore)
	assert.NotNil(t, container.OutboxRepo)

	assert.NotNil(t, container.CreateHabitHandler)
	assert.NotNil(t, container.ListHabitsHandler)
	assert.NotNil(t, container.SaveEntryHandler)
	assert.NotNil(t, container.CreateGoalHandler)
	assert.NotNil(t, container.DashboardService)
	assert.NotNil(t, container.SuggestionClient)
}

func TestHabitWorkflow(t *testing.T) {
	container, ctx, userID := setupContainer(t)

	created, err := container.CreateHabitHandler.Handle(ctx, trackingCommands.CreateHabitCommand{
		UserID:   userID,
		Name:     "Morning run",
		Category: "fitness",
	})
	require.NoError(t, err)

	logged, err := container.LogCompletionHandler.Handle(ctx, trackingCommands.LogCompletionCommand{
		HabitID: created.HabitID,
		UserID:  userID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, logged.Streak)

	habits, err := container.ListHabitsHandler.Handle(ctx, trackingQueries.ListHabitsQuery{UserID: userID})
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "Morning run", habits[0].Name)
	assert.True(t, habits[0].CompletedToday)

	// the completion event lands in the outbox atomically with the write
	msgs, err := container.OutboxRepo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, msgs)
}

func TestJournalAndDashboardWorkflow(t *testing.T) {
	container, ctx, userID := setupContainer(t)

	_, err := container.CreateHabitHandler.Handle(ctx, trackingCommands.CreateHabitCommand{
		UserID:   userID,
		Name:     "Meditate",
		Category: "mindfulness",
	})
	require.NoError(t, err)

	saved, err := container.SaveEntryHandler.Handle(ctx, journalCommands.SaveEntryCommand{
		UserID:  userID,
		Date:    sharedDomain.Today(),
		Content: "What a wonderful peaceful day, genuinely happy with everything.",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.EntryID)

	_, err = container.CreateGoalHandler.Handle(ctx, goalsCommands.CreateGoalCommand{
		UserID: userID,
		Title:  "Read 12 books",
	})
	require.NoError(t, err)

	view, err := container.DashboardService.Dashboard(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, view.Habits, 1)
	assert.NotEmpty(t, view.Achievements)

	// first journal entry and first goal both unlock glow moments
	ids := make([]string, 0, len(view.NewGlow))
	for _, g := range view.NewGlow {
		ids = append(ids, g.ID)
	}
	assert.Contains(t, ids, "first-entry-glow")
	assert.Contains(t, ids, "first-goal-glow")

	// a second render must not repeat them
	again, err := container.DashboardService.Dashboard(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, again.NewGlow)
}
