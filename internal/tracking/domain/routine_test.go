package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

func TestNewRoutine(t *testing.T) {
	userID := uuid.New()

	t.Run("creates a routine with trimmed steps", func(t *testing.T) {
		routine, err := NewRoutine(userID, "Evening wind-down", RoutineEvening,
			[]string{" dim lights ", "", "read 10 pages"})

		require.NoError(t, err)
		assert.Equal(t, RoutineEvening, routine.Type())
		assert.Equal(t, []string{"dim lights", "read 10 pages"}, routine.Steps())
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewRoutine(userID, "Weird", RoutineType("weekly"), nil)
		assert.ErrorIs(t, err, ErrRoutineInvalidType)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewRoutine(userID, "", RoutineMorning, nil)
		assert.ErrorIs(t, err, ErrRoutineEmptyName)
	})
}

func TestRoutineType_IsValid(t *testing.T) {
	for _, rt := range []RoutineType{RoutineMorning, RoutineEvening, RoutineSkincare, RoutineCustom} {
		assert.True(t, rt.IsValid(), string(rt))
	}
	assert.False(t, RoutineType("nightly").IsValid())
}

func TestRoutine_MarkCompleted(t *testing.T) {
	userID := uuid.New()
	day := sharedDomain.MustDate("2025-06-15")

	t.Run("records once per day and emits RoutineCompleted", func(t *testing.T) {
		routine, _ := NewRoutine(userID, "Skincare", RoutineSkincare, []string{"cleanse", "moisturize"})
		routine.ClearDomainEvents()

		require.NoError(t, routine.MarkCompleted(day))
		assert.True(t, routine.IsCompletedOn(day))

		events := routine.DomainEvents()
		require.Len(t, events, 1)
		completed, ok := events[0].(*RoutineCompleted)
		require.True(t, ok)
		assert.Equal(t, "skincare", completed.Type)
		assert.Equal(t, "2025-06-15", completed.Date)

		assert.ErrorIs(t, routine.MarkCompleted(day), ErrAlreadyCompleted)
	})

	t.Run("rejects completion on archived routine", func(t *testing.T) {
		routine, _ := NewRoutine(userID, "Morning", RoutineMorning, nil)
		routine.Archive()
		assert.ErrorIs(t, routine.MarkCompleted(day), ErrRoutineArchived)
	})
}
