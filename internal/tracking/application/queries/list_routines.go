package queries

import (
	"context"

	"github.com/google/uuid"

	analyticsDomain "github.com/tendhq/tend/internal/analytics/domain"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/tracking/domain"
)

// RoutineDTO is a data transfer object for routines.
type RoutineDTO struct {
	ID             uuid.UUID
	Name           string
	Type           string
	Steps          []string
	Streak         int
	TotalDone      int
	CompletedToday bool
}

// ListRoutinesQuery contains the parameters for listing routines.
type ListRoutinesQuery struct {
	UserID uuid.UUID
	Type   domain.RoutineType // optional filter
}

// ListRoutinesHandler handles the ListRoutinesQuery.
type ListRoutinesHandler struct {
	routineRepo domain.RoutineRepository
}

// NewListRoutinesHandler creates a new ListRoutinesHandler.
func NewListRoutinesHandler(routineRepo domain.RoutineRepository) *ListRoutinesHandler {
	return &ListRoutinesHandler{routineRepo: routineRepo}
}

// Handle executes the ListRoutinesQuery.
func (h *ListRoutinesHandler) Handle(ctx context.Context, query ListRoutinesQuery) ([]RoutineDTO, error) {
	routines, err := h.routineRepo.FindActiveByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	today := sharedDomain.Today()
	dtos := make([]RoutineDTO, 0, len(routines))
	for _, routine := range routines {
		if query.Type != "" && routine.Type() != query.Type {
			continue
		}
		dtos = append(dtos, RoutineDTO{
			ID:             routine.ID(),
			Name:           routine.Name(),
			Type:           string(routine.Type()),
			Steps:          routine.Steps(),
			Streak:         analyticsDomain.CurrentStreak(routine.CompletedDates(), today),
			TotalDone:      routine.TotalCompletions(),
			CompletedToday: routine.IsCompletedOn(today),
		})
	}

	return dtos, nil
}
