package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

var (
	ErrGoalEmptyTitle       = errors.New("goal title cannot be empty")
	ErrInvalidProgress      = errors.New("progress must be between 0 and 100")
	ErrGoalAlreadyCompleted = errors.New("goal is already completed")
)

// Goal is a long-range aim with a manually tracked progress percentage.
// Progress and completion are independent: a goal can sit at 100%
// without being marked done, and can be completed at any progress.
type Goal struct {
	sharedDomain.BaseAggregateRoot
	userID      uuid.UUID
	title       string
	description string
	targetDate  sharedDomain.Date
	progress    int
	completed   bool
}

// NewGoal creates a new goal. The target date is optional.
func NewGoal(userID uuid.UUID, title, description string, targetDate sharedDomain.Date) (*Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrGoalEmptyTitle
	}

	goal := &Goal{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		title:             title,
		description:       strings.TrimSpace(description),
		targetDate:        targetDate,
	}

	goal.AddDomainEvent(NewGoalCreated(goal))

	return goal, nil
}

// Getters
func (g *Goal) UserID() uuid.UUID              { return g.userID }
func (g *Goal) Title() string                  { return g.title }
func (g *Goal) Description() string            { return g.description }
func (g *Goal) TargetDate() sharedDomain.Date  { return g.targetDate }
func (g *Goal) Progress() int                  { return g.progress }
func (g *Goal) IsCompleted() bool              { return g.completed }

// SetProgress updates the progress percentage.
func (g *Goal) SetProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return ErrInvalidProgress
	}
	g.progress = progress
	g.Touch()
	g.AddDomainEvent(NewGoalProgressUpdated(g))
	return nil
}

// Complete marks the goal as done, whatever its progress.
func (g *Goal) Complete() error {
	if g.completed {
		return ErrGoalAlreadyCompleted
	}
	g.completed = true
	g.Touch()
	g.AddDomainEvent(NewGoalCompleted(g))
	return nil
}

// IsOverdue reports whether the target date has passed without completion.
func (g *Goal) IsOverdue(today sharedDomain.Date) bool {
	return !g.completed && !g.targetDate.IsZero() && g.targetDate.Before(today)
}

// RehydrateGoal recreates a goal from persisted state without
// generating events.
func RehydrateGoal(
	id uuid.UUID,
	userID uuid.UUID,
	title, description string,
	targetDate sharedDomain.Date,
	progress int,
	completed bool,
	createdAt, updatedAt time.Time,
) *Goal {
	entity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Goal{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(entity),
		userID:            userID,
		title:             title,
		description:       description,
		targetDate:        targetDate,
		progress:          progress,
		completed:         completed,
	}
}
