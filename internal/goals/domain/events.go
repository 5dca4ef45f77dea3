package domain

import (
	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

const goalAggregateType = "Goal"

// GoalCreated is emitted when a goal is created.
type GoalCreated struct {
	sharedDomain.BaseEvent
	GoalID uuid.UUID `json:"goal_id"`
	UserID uuid.UUID `json:"user_id"`
	Title  string    `json:"title"`
}

// NewGoalCreated creates a GoalCreated event.
func NewGoalCreated(g *Goal) *GoalCreated {
	return &GoalCreated{
		BaseEvent: sharedDomain.NewBaseEvent(g.ID(), goalAggregateType, "goals.goal.created"),
		GoalID:    g.ID(),
		UserID:    g.UserID(),
		Title:     g.Title(),
	}
}

// GoalProgressUpdated is emitted when a goal's progress changes.
type GoalProgressUpdated struct {
	sharedDomain.BaseEvent
	GoalID   uuid.UUID `json:"goal_id"`
	UserID   uuid.UUID `json:"user_id"`
	Progress int       `json:"progress"`
}

// NewGoalProgressUpdated creates a GoalProgressUpdated event.
func NewGoalProgressUpdated(g *Goal) *GoalProgressUpdated {
	return &GoalProgressUpdated{
		BaseEvent: sharedDomain.NewBaseEvent(g.ID(), goalAggregateType, "goals.goal.progress_updated"),
		GoalID:    g.ID(),
		UserID:    g.UserID(),
		Progress:  g.Progress(),
	}
}

// GoalCompleted is emitted when a goal is marked done.
type GoalCompleted struct {
	sharedDomain.BaseEvent
	GoalID uuid.UUID `json:"goal_id"`
	UserID uuid.UUID `json:"user_id"`
	Title  string    `json:"title"`
}

// NewGoalCompleted creates a GoalCompleted event.
func NewGoalCompleted(g *Goal) *GoalCompleted {
	return &GoalCompleted{
		BaseEvent: sharedDomain.NewBaseEvent(g.ID(), goalAggregateType, "goals.goal.completed"),
		GoalID:    g.ID(),
		UserID:    g.UserID(),
		Title:     g.Title(),
	}
}
