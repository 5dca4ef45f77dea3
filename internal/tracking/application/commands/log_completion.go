package commands

import (
	"context"

	"github.com/google/uuid"

	analyticsDomain "github.com/tendhq/tend/internal/analytics/domain"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
	"github.com/tendhq/tend/internal/tracking/domain"
)

// LogCompletionCommand contains the data needed to mark a habit done
// for a calendar day.
type LogCompletionCommand struct {
	HabitID uuid.UUID
	UserID  uuid.UUID
	Date    sharedDomain.Date
}

// LogCompletionResult contains the result of logging a completion.
type LogCompletionResult struct {
	Streak    int
	TotalDone int
}

// LogCompletionHandler handles the LogCompletionCommand.
type LogCompletionHandler struct {
	habitRepo  domain.HabitRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewLogCompletionHandler creates a new LogCompletionHandler.
func NewLogCompletionHandler(habitRepo domain.HabitRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *LogCompletionHandler {
	return &LogCompletionHandler{
		habitRepo:  habitRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the LogCompletionCommand.
func (h *LogCompletionHandler) Handle(ctx context.Context, cmd LogCompletionCommand) (*LogCompletionResult, error) {
	var result *LogCompletionResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		habit, err := h.habitRepo.FindByID(txCtx, cmd.HabitID)
		if err != nil {
			return err
		}
		if habit == nil {
			return ErrHabitNotFound
		}
		if habit.UserID() != cmd.UserID {
			return ErrNotOwner
		}

		date := cmd.Date
		if date.IsZero() {
			date = sharedDomain.Today()
		}
		if err := habit.MarkCompleted(date); err != nil {
			return err
		}

		if err := h.habitRepo.Save(txCtx, habit); err != nil {
			return err
		}

		if err := saveEventsToOutbox(txCtx, h.outboxRepo, habit.DomainEvents(), cmd.UserID); err != nil {
			return err
		}

		result = &LogCompletionResult{
			Streak:    analyticsDomain.CurrentStreak(habit.CompletedDates(), date),
			TotalDone: habit.TotalCompletions(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
