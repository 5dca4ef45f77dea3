package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

var (
	ErrRoutineEmptyName   = errors.New("routine name cannot be empty")
	ErrRoutineInvalidType = errors.New("invalid routine type")
	ErrRoutineArchived    = errors.New("routine is archived")
)

// RoutineType classifies a routine. Skincare routines feed the glow
// achievements; the others are plain daily rituals.
type RoutineType string

const (
	RoutineMorning  RoutineType = "morning"
	RoutineEvening  RoutineType = "evening"
	RoutineSkincare RoutineType = "skincare"
	RoutineCustom   RoutineType = "custom"
)

// IsValid checks if the routine type is valid.
func (rt RoutineType) IsValid() bool {
	switch rt {
	case RoutineMorning, RoutineEvening, RoutineSkincare, RoutineCustom:
		return true
	default:
		return false
	}
}

// Routine represents an ordered ritual of steps completed as a unit,
// once per calendar day at most.
type Routine struct {
	sharedDomain.BaseAggregateRoot
	userID      uuid.UUID
	name        string
	routineType RoutineType
	steps       []string
	archived    bool
	completed   sharedDomain.DateSet
}

// NewRoutine creates a new routine.
func NewRoutine(userID uuid.UUID, name string, routineType RoutineType, steps []string) (*Routine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrRoutineEmptyName
	}
	if !routineType.IsValid() {
		return nil, ErrRoutineInvalidType
	}

	routine := &Routine{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		name:              name,
		routineType:       routineType,
		steps:             trimSteps(steps),
		completed:         sharedDomain.NewDateSet(),
	}

	routine.AddDomainEvent(NewRoutineCreated(routine))

	return routine, nil
}

// Getters
func (r *Routine) UserID() uuid.UUID                    { return r.userID }
func (r *Routine) Name() string                         { return r.name }
func (r *Routine) Type() RoutineType                    { return r.routineType }
func (r *Routine) Steps() []string                      { return r.steps }
func (r *Routine) IsArchived() bool                     { return r.archived }
func (r *Routine) CompletedDates() sharedDomain.DateSet { return r.completed }
func (r *Routine) TotalCompletions() int                { return r.completed.Len() }

// SetSteps replaces the routine's step list.
func (r *Routine) SetSteps(steps []string) error {
	if r.archived {
		return ErrRoutineArchived
	}
	r.steps = trimSteps(steps)
	r.Touch()
	return nil
}

// MarkCompleted records a completion for the given calendar day.
func (r *Routine) MarkCompleted(date sharedDomain.Date) error {
	if r.archived {
		return ErrRoutineArchived
	}
	if date.IsZero() {
		return ErrInvalidDate
	}
	if r.completed.Contains(date) {
		return ErrAlreadyCompleted
	}

	r.completed.Add(date)
	r.Touch()
	r.AddDomainEvent(NewRoutineCompleted(r, date))

	return nil
}

// IsCompletedOn reports whether the routine was completed on the given day.
func (r *Routine) IsCompletedOn(date sharedDomain.Date) bool {
	return r.completed.Contains(date)
}

// Archive marks the routine as archived.
func (r *Routine) Archive() {
	if !r.archived {
		r.archived = true
		r.Touch()
	}
}

// CreatedDate returns the calendar day the routine was created.
func (r *Routine) CreatedDate() sharedDomain.Date {
	return sharedDomain.NewDate(r.CreatedAt())
}

// RehydrateRoutine recreates a routine from persisted state without
// generating events.
func RehydrateRoutine(
	id uuid.UUID,
	userID uuid.UUID,
	name string,
	routineType RoutineType,
	steps []string,
	archived bool,
	createdAt, updatedAt time.Time,
	completed sharedDomain.DateSet,
) *Routine {
	if completed == nil {
		completed = sharedDomain.NewDateSet()
	}
	entity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Routine{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(entity),
		userID:            userID,
		name:              name,
		routineType:       routineType,
		steps:             steps,
		archived:          archived,
		completed:         completed,
	}
}

func trimSteps(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
