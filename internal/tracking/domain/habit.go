package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

var (
	ErrHabitEmptyName   = errors.New("habit name cannot be empty")
	ErrHabitArchived    = errors.New("habit is archived")
	ErrAlreadyCompleted = errors.New("already completed for this date")
	ErrNotCompleted     = errors.New("no completion recorded for this date")
	ErrInvalidDate      = errors.New("invalid completion date")
)

// Habit represents a recurring activity the user wants to build. Its
// completion history is a set of calendar days; all streak and rate
// numbers are derived from that set on read, never stored.
type Habit struct {
	sharedDomain.BaseAggregateRoot
	userID    uuid.UUID
	name      string
	category  string
	archived  bool
	completed sharedDomain.DateSet
}

// NewHabit creates a new habit.
func NewHabit(userID uuid.UUID, name, category string) (*Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrHabitEmptyName
	}

	habit := &Habit{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		name:              name,
		category:          strings.ToLower(strings.TrimSpace(category)),
		completed:         sharedDomain.NewDateSet(),
	}

	habit.AddDomainEvent(NewHabitCreated(habit))

	return habit, nil
}

// Getters
func (h *Habit) UserID() uuid.UUID                  { return h.userID }
func (h *Habit) Name() string                       { return h.name }
func (h *Habit) Category() string                   { return h.category }
func (h *Habit) IsArchived() bool                   { return h.archived }
func (h *Habit) CompletedDates() sharedDomain.DateSet { return h.completed }
func (h *Habit) TotalCompletions() int              { return h.completed.Len() }

// SetName updates the habit name.
func (h *Habit) SetName(name string) error {
	if h.archived {
		return ErrHabitArchived
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrHabitEmptyName
	}
	h.name = name
	h.Touch()
	return nil
}

// SetCategory updates the habit category.
func (h *Habit) SetCategory(category string) error {
	if h.archived {
		return ErrHabitArchived
	}
	h.category = strings.ToLower(strings.TrimSpace(category))
	h.Touch()
	return nil
}

// MarkCompleted records a completion for the given calendar day.
// At most one completion per day.
func (h *Habit) MarkCompleted(date sharedDomain.Date) error {
	if h.archived {
		return ErrHabitArchived
	}
	if date.IsZero() {
		return ErrInvalidDate
	}
	if h.completed.Contains(date) {
		return ErrAlreadyCompleted
	}

	h.completed.Add(date)
	h.Touch()
	h.AddDomainEvent(NewHabitCompleted(h, date))

	return nil
}

// UnmarkCompleted removes a completion for the given day.
func (h *Habit) UnmarkCompleted(date sharedDomain.Date) error {
	if h.archived {
		return ErrHabitArchived
	}
	if !h.completed.Contains(date) {
		return ErrNotCompleted
	}

	delete(h.completed, date)
	h.Touch()

	return nil
}

// IsCompletedOn reports whether the habit was completed on the given day.
func (h *Habit) IsCompletedOn(date sharedDomain.Date) bool {
	return h.completed.Contains(date)
}

// Archive marks the habit as archived.
func (h *Habit) Archive() {
	if !h.archived {
		h.archived = true
		h.Touch()
		h.AddDomainEvent(NewHabitArchived(h))
	}
}

// Unarchive restores an archived habit.
func (h *Habit) Unarchive() {
	if h.archived {
		h.archived = false
		h.Touch()
	}
}

// CreatedDate returns the calendar day the habit was created.
func (h *Habit) CreatedDate() sharedDomain.Date {
	return sharedDomain.NewDate(h.CreatedAt())
}

// RehydrateHabit recreates a habit from persisted state without
// generating events.
func RehydrateHabit(
	id uuid.UUID,
	userID uuid.UUID,
	name string,
	category string,
	archived bool,
	createdAt, updatedAt time.Time,
	completed sharedDomain.DateSet,
) *Habit {
	if completed == nil {
		completed = sharedDomain.NewDateSet()
	}
	entity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Habit{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(entity),
		userID:            userID,
		name:              name,
		category:          category,
		archived:          archived,
		completed:         completed,
	}
}
