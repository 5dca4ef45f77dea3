package domain

import (
	"context"

	"github.com/google/uuid"
)

// HabitRepository defines persistence for habits.
// FindByID returns (nil, nil) when no habit exists.
type HabitRepository interface {
	Save(ctx context.Context, habit *Habit) error
	FindByID(ctx context.Context, id uuid.UUID) (*Habit, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Habit, error)
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*Habit, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoutineRepository defines persistence for routines.
type RoutineRepository interface {
	Save(ctx context.Context, routine *Routine) error
	FindByID(ctx context.Context, id uuid.UUID) (*Routine, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Routine, error)
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*Routine, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
