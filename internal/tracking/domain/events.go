package domain

import (
	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

const (
	habitAggregateType   = "Habit"
	routineAggregateType = "Routine"
)

// HabitCreated is emitted when a habit is created.
type HabitCreated struct {
	sharedDomain.BaseEvent
	HabitID  uuid.UUID `json:"habit_id"`
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

// NewHabitCreated creates a HabitCreated event.
func NewHabitCreated(h *Habit) *HabitCreated {
	return &HabitCreated{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), habitAggregateType, "tracking.habit.created"),
		HabitID:   h.ID(),
		UserID:    h.UserID(),
		Name:      h.Name(),
		Category:  h.Category(),
	}
}

// HabitCompleted is emitted when a habit is marked done for a day.
type HabitCompleted struct {
	sharedDomain.BaseEvent
	HabitID   uuid.UUID `json:"habit_id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	TotalDone int       `json:"total_done"`
}

// NewHabitCompleted creates a HabitCompleted event.
func NewHabitCompleted(h *Habit, date sharedDomain.Date) *HabitCompleted {
	return &HabitCompleted{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), habitAggregateType, "tracking.habit.completed"),
		HabitID:   h.ID(),
		UserID:    h.UserID(),
		Name:      h.Name(),
		Date:      date.String(),
		TotalDone: h.TotalCompletions(),
	}
}

// HabitArchived is emitted when a habit is archived.
type HabitArchived struct {
	sharedDomain.BaseEvent
	HabitID uuid.UUID `json:"habit_id"`
	UserID  uuid.UUID `json:"user_id"`
}

// NewHabitArchived creates a HabitArchived event.
func NewHabitArchived(h *Habit) *HabitArchived {
	return &HabitArchived{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), habitAggregateType, "tracking.habit.archived"),
		HabitID:   h.ID(),
		UserID:    h.UserID(),
	}
}

// RoutineCreated is emitted when a routine is created.
type RoutineCreated struct {
	sharedDomain.BaseEvent
	RoutineID uuid.UUID `json:"routine_id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
}

// NewRoutineCreated creates a RoutineCreated event.
func NewRoutineCreated(r *Routine) *RoutineCreated {
	return &RoutineCreated{
		BaseEvent: sharedDomain.NewBaseEvent(r.ID(), routineAggregateType, "tracking.routine.created"),
		RoutineID: r.ID(),
		UserID:    r.UserID(),
		Name:      r.Name(),
		Type:      string(r.Type()),
	}
}

// RoutineCompleted is emitted when a routine is marked done for a day.
type RoutineCompleted struct {
	sharedDomain.BaseEvent
	RoutineID uuid.UUID `json:"routine_id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Date      string    `json:"date"`
}

// NewRoutineCompleted creates a RoutineCompleted event.
func NewRoutineCompleted(r *Routine, date sharedDomain.Date) *RoutineCompleted {
	return &RoutineCompleted{
		BaseEvent: sharedDomain.NewBaseEvent(r.ID(), routineAggregateType, "tracking.routine.completed"),
		RoutineID: r.ID(),
		UserID:    r.UserID(),
		Name:      r.Name(),
		Type:      string(r.Type()),
		Date:      date.String(),
	}
}
