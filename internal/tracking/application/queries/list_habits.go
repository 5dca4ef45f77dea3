package queries

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	analyticsDomain "github.com/tendhq/tend/internal/analytics/domain"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/tracking/domain"
)

// HabitDTO is a data transfer object for habits. Streaks and rates are
// derived from the completion set at read time.
type HabitDTO struct {
	ID             uuid.UUID
	Name           string
	Category       string
	Streak         int
	LongestStreak  int
	CompletionRate int
	TotalDone      int
	CompletedToday bool
	IsArchived     bool
	CreatedAt      time.Time
}

// ListHabitsQuery contains the parameters for listing habits.
type ListHabitsQuery struct {
	UserID          uuid.UUID
	IncludeArchived bool
	Category        string
	SortBy          string // "streak", "name", "created_at"
}

// ListHabitsHandler handles the ListHabitsQuery.
type ListHabitsHandler struct {
	habitRepo domain.HabitRepository
}

// NewListHabitsHandler creates a new ListHabitsHandler.
func NewListHabitsHandler(habitRepo domain.HabitRepository) *ListHabitsHandler {
	return &ListHabitsHandler{habitRepo: habitRepo}
}

// Handle executes the ListHabitsQuery.
func (h *ListHabitsHandler) Handle(ctx context.Context, query ListHabitsQuery) ([]HabitDTO, error) {
	var habits []*domain.Habit
	var err error

	if query.IncludeArchived {
		habits, err = h.habitRepo.FindByUserID(ctx, query.UserID)
	} else {
		habits, err = h.habitRepo.FindActiveByUserID(ctx, query.UserID)
	}
	if err != nil {
		return nil, err
	}

	if query.Category != "" {
		filtered := habits[:0]
		for _, habit := range habits {
			if habit.Category() == query.Category {
				filtered = append(filtered, habit)
			}
		}
		habits = filtered
	}

	today := sharedDomain.Today()
	dtos := make([]HabitDTO, 0, len(habits))
	for _, habit := range habits {
		dtos = append(dtos, toHabitDTO(habit, today))
	}

	sortHabitDTOs(dtos, query.SortBy)

	return dtos, nil
}

func toHabitDTO(habit *domain.Habit, today sharedDomain.Date) HabitDTO {
	dates := habit.CompletedDates()
	return HabitDTO{
		ID:             habit.ID(),
		Name:           habit.Name(),
		Category:       habit.Category(),
		Streak:         analyticsDomain.CurrentStreak(dates, today),
		LongestStreak:  analyticsDomain.LongestStreak(dates),
		CompletionRate: analyticsDomain.CompletionRate(dates, today, analyticsDomain.DefaultRateWindow),
		TotalDone:      habit.TotalCompletions(),
		CompletedToday: habit.IsCompletedOn(today),
		IsArchived:     habit.IsArchived(),
		CreatedAt:      habit.CreatedAt(),
	}
}

func sortHabitDTOs(dtos []HabitDTO, sortBy string) {
	switch sortBy {
	case "streak":
		sort.SliceStable(dtos, func(i, j int) bool { return dtos[i].Streak > dtos[j].Streak })
	case "name":
		sort.SliceStable(dtos, func(i, j int) bool { return dtos[i].Name < dtos[j].Name })
	default:
		sort.SliceStable(dtos, func(i, j int) bool { return dtos[i].CreatedAt.Before(dtos[j].CreatedAt) })
	}
}
