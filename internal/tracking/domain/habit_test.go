package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

func TestNewHabit(t *testing.T) {
	userID := uuid.New()

	t.Run("creates a habit with trimmed name and lowercase category", func(t *testing.T) {
		habit, err := NewHabit(userID, "  Morning meditation  ", "Mindfulness")

		require.NoError(t, err)
		assert.Equal(t, "Morning meditation", habit.Name())
		assert.Equal(t, "mindfulness", habit.Category())
		assert.False(t, habit.IsArchived())
		assert.Zero(t, habit.TotalCompletions())
	})

	t.Run("emits HabitCreated", func(t *testing.T) {
		habit, err := NewHabit(userID, "Read", "learning")

		require.NoError(t, err)
		events := habit.DomainEvents()
		require.Len(t, events, 1)
		assert.IsType(t, &HabitCreated{}, events[0])
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewHabit(userID, "   ", "health")
		assert.ErrorIs(t, err, ErrHabitEmptyName)
	})
}

func TestHabit_MarkCompleted(t *testing.T) {
	userID := uuid.New()
	day := sharedDomain.MustDate("2025-06-15")

	t.Run("records a completion once per day", func(t *testing.T) {
		habit, _ := NewHabit(userID, "Run", "fitness")

		require.NoError(t, habit.MarkCompleted(day))
		assert.True(t, habit.IsCompletedOn(day))
		assert.Equal(t, 1, habit.TotalCompletions())

		err := habit.MarkCompleted(day)
		assert.ErrorIs(t, err, ErrAlreadyCompleted)
		assert.Equal(t, 1, habit.TotalCompletions())
	})

	t.Run("emits HabitCompleted with the date", func(t *testing.T) {
		habit, _ := NewHabit(userID, "Run", "fitness")
		habit.ClearDomainEvents()

		require.NoError(t, habit.MarkCompleted(day))

		events := habit.DomainEvents()
		require.Len(t, events, 1)
		completed, ok := events[0].(*HabitCompleted)
		require.True(t, ok)
		assert.Equal(t, "2025-06-15", completed.Date)
		assert.Equal(t, 1, completed.TotalDone)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		habit, _ := NewHabit(userID, "Run", "fitness")
		assert.ErrorIs(t, habit.MarkCompleted(sharedDomain.Date{}), ErrInvalidDate)
	})

	t.Run("rejects completion on archived habit", func(t *testing.T) {
		habit, _ := NewHabit(userID, "Run", "fitness")
		habit.Archive()
		assert.ErrorIs(t, habit.MarkCompleted(day), ErrHabitArchived)
	})
}

func TestHabit_UnmarkCompleted(t *testing.T) {
	userID := uuid.New()
	day := sharedDomain.MustDate("2025-06-15")

	t.Run("removes an existing completion", func(t *testing.T) {
		habit, _ := NewHabit(userID, "Run", "fitness")
		require.NoError(t, habit.MarkCompleted(day))

		require.NoError(t, habit.UnmarkCompleted(day))
		assert.False(t, habit.IsCompletedOn(day))
	})

	t.Run("errors when nothing was recorded", func(t *testing.T) {
		habit, _ := NewHabit(userID, "Run", "fitness")
		assert.ErrorIs(t, habit.UnmarkCompleted(day), ErrNotCompleted)
	})
}

func TestRehydrateHabit(t *testing.T) {
	t.Run("restores state without events", func(t *testing.T) {
		id := uuid.New()
		userID := uuid.New()
		day := sharedDomain.MustDate("2025-06-01")
		created := day.Time()

		habit := RehydrateHabit(id, userID, "Run", "fitness", false, created, created,
			sharedDomain.NewDateSet(day))

		assert.Equal(t, id, habit.ID())
		assert.Equal(t, "Run", habit.Name())
		assert.True(t, habit.IsCompletedOn(day))
		assert.Equal(t, "2025-06-01", habit.CreatedDate().String())
		assert.Empty(t, habit.DomainEvents())
	})

	t.Run("tolerates nil completion set", func(t *testing.T) {
		habit := RehydrateHabit(uuid.New(), uuid.New(), "Run", "fitness", false,
			sharedDomain.MustDate("2025-06-01").Time(), sharedDomain.MustDate("2025-06-01").Time(), nil)
		assert.Zero(t, habit.TotalCompletions())
	})
}
