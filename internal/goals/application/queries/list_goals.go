package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/goals/domain"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

// GoalDTO is a data transfer object for goals.
type GoalDTO struct {
	ID          uuid.UUID
	Title       string
	Description string
	TargetDate  string
	Progress    int
	IsCompleted bool
	IsOverdue   bool
	CreatedAt   time.Time
}

// ListGoalsQuery contains the parameters for listing goals.
type ListGoalsQuery struct {
	UserID           uuid.UUID
	IncludeCompleted bool
}

// ListGoalsHandler handles the ListGoalsQuery.
type ListGoalsHandler struct {
	goalRepo domain.GoalRepository
}

// NewListGoalsHandler creates a new ListGoalsHandler.
func NewListGoalsHandler(goalRepo domain.GoalRepository) *ListGoalsHandler {
	return &ListGoalsHandler{goalRepo: goalRepo}
}

// Handle executes the ListGoalsQuery.
func (h *ListGoalsHandler) Handle(ctx context.Context, query ListGoalsQuery) ([]GoalDTO, error) {
	var goals []*domain.Goal
	var err error

	if query.IncludeCompleted {
		goals, err = h.goalRepo.FindByUserID(ctx, query.UserID)
	} else {
		goals, err = h.goalRepo.FindOpenByUserID(ctx, query.UserID)
	}
	if err != nil {
		return nil, err
	}

	today := sharedDomain.Today()
	dtos := make([]GoalDTO, 0, len(goals))
	for _, goal := range goals {
		dto := GoalDTO{
			ID:          goal.ID(),
			Title:       goal.Title(),
			Description: goal.Description(),
			Progress:    goal.Progress(),
			IsCompleted: goal.IsCompleted(),
			IsOverdue:   goal.IsOverdue(today),
			CreatedAt:   goal.CreatedAt(),
		}
		if !goal.TargetDate().IsZero() {
			dto.TargetDate = goal.TargetDate().String()
		}
		dtos = append(dtos, dto)
	}

	return dtos, nil
}
