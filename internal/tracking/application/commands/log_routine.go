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

// LogRoutineCommand contains the data needed to mark a routine done
// for a calendar day.
type LogRoutineCommand struct {
	RoutineID uuid.UUID
	UserID    uuid.UUID
	Date      sharedDomain.Date
}

// LogRoutineResult contains the result of logging a routine completion.
type LogRoutineResult struct {
	Streak    int
	TotalDone int
}

// LogRoutineHandler handles the LogRoutineCommand.
type LogRoutineHandler struct {
	routineRepo domain.RoutineRepository
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
}

// NewLogRoutineHandler creates a new LogRoutineHandler.
func NewLogRoutineHandler(routineRepo domain.RoutineRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *LogRoutineHandler {
	return &LogRoutineHandler{
		routineRepo: routineRepo,
		outboxRepo:  outboxRepo,
		uow:         uow,
	}
}

// Handle executes the LogRoutineCommand.
func (h *LogRoutineHandler) Handle(ctx context.Context, cmd LogRoutineCommand) (*LogRoutineResult, error) {
	var result *LogRoutineResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		routine, err := h.routineRepo.FindByID(txCtx, cmd.RoutineID)
		if err != nil {
			return err
		}
		if routine == nil {
			return ErrRoutineNotFound
		}
		if routine.UserID() != cmd.UserID {
			return ErrNotOwner
		}

		date := cmd.Date
		if date.IsZero() {
			date = sharedDomain.Today()
		}
		if err := routine.MarkCompleted(date); err != nil {
			return err
		}

		if err := h.routineRepo.Save(txCtx, routine); err != nil {
			return err
		}

		if err := saveEventsToOutbox(txCtx, h.outboxRepo, routine.DomainEvents(), cmd.UserID); err != nil {
			return err
		}

		result = &LogRoutineResult{
			Streak:    analyticsDomain.CurrentStreak(routine.CompletedDates(), date),
			TotalDone: routine.TotalCompletions(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
