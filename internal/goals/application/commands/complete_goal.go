package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/goals/domain"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
)

// CompleteGoalCommand contains the data needed to mark a goal done.
type CompleteGoalCommand struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// CompleteGoalHandler handles the CompleteGoalCommand.
type CompleteGoalHandler struct {
	goalRepo   domain.GoalRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCompleteGoalHandler creates a new CompleteGoalHandler.
func NewCompleteGoalHandler(goalRepo domain.GoalRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CompleteGoalHandler {
	return &CompleteGoalHandler{
		goalRepo:   goalRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CompleteGoalCommand.
func (h *CompleteGoalHandler) Handle(ctx context.Context, cmd CompleteGoalCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		goal, err := h.goalRepo.FindByID(txCtx, cmd.GoalID)
		if err != nil {
			return err
		}
		if goal == nil {
			return ErrGoalNotFound
		}
		if goal.UserID() != cmd.UserID {
			return ErrNotOwner
		}

		if err := goal.Complete(); err != nil {
			return err
		}

		if err := h.goalRepo.Save(txCtx, goal); err != nil {
			return err
		}

		return saveEventsToOutbox(txCtx, h.outboxRepo, goal.DomainEvents(), cmd.UserID)
	})
}
