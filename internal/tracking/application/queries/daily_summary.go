package queries

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/tracking/domain"
)

// DailySummaryDTO describes what was done on a single calendar day.
type DailySummaryDTO struct {
	Date            sharedDomain.Date
	Completed       int
	Total           int
	CompletedHabits []string
	PendingHabits   []string
	DoneRoutines    []string
}

// IsPerfectDay reports whether every active habit was completed.
func (d DailySummaryDTO) IsPerfectDay() bool {
	return d.Total > 0 && d.Completed == d.Total
}

// DailySummaryQuery contains the parameters for a daily summary.
type DailySummaryQuery struct {
	UserID uuid.UUID
	Date   sharedDomain.Date
}

// DailySummaryHandler handles the DailySummaryQuery.
type DailySummaryHandler struct {
	habitRepo   domain.HabitRepository
	routineRepo domain.RoutineRepository
}

// NewDailySummaryHandler creates a new DailySummaryHandler.
func NewDailySummaryHandler(habitRepo domain.HabitRepository, routineRepo domain.RoutineRepository) *DailySummaryHandler {
	return &DailySummaryHandler{habitRepo: habitRepo, routineRepo: routineRepo}
}

// Handle executes the DailySummaryQuery. Only habits that already
// existed on the requested day count toward the total.
func (h *DailySummaryHandler) Handle(ctx context.Context, query DailySummaryQuery) (*DailySummaryDTO, error) {
	date := query.Date
	if date.IsZero() {
		date = sharedDomain.Today()
	}

	habits, err := h.habitRepo.FindActiveByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	routines, err := h.routineRepo.FindActiveByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	summary := &DailySummaryDTO{Date: date}
	for _, habit := range habits {
		if date.Before(habit.CreatedDate()) {
			continue
		}
		summary.Total++
		if habit.IsCompletedOn(date) {
			summary.Completed++
			summary.CompletedHabits = append(summary.CompletedHabits, habit.Name())
		} else {
			summary.PendingHabits = append(summary.PendingHabits, habit.Name())
		}
	}
	for _, routine := range routines {
		if routine.IsCompletedOn(date) {
			summary.DoneRoutines = append(summary.DoneRoutines, routine.Name())
		}
	}

	return summary, nil
}
