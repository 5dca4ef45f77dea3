package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/goals/domain"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
)

// UpdateProgressCommand contains the data needed to set a goal's progress.
type UpdateProgressCommand struct {
	GoalID   uuid.UUID
	UserID   uuid.UUID
	Progress int
}

// UpdateProgressHandler handles the UpdateProgressCommand.
type UpdateProgressHandler struct {
	goalRepo   domain.GoalRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewUpdateProgressHandler creates a new UpdateProgressHandler.
func NewUpdateProgressHandler(goalRepo domain.GoalRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *UpdateProgressHandler {
	return &UpdateProgressHandler{
		goalRepo:   goalRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the UpdateProgressCommand.
func (h *UpdateProgressHandler) Handle(ctx context.Context, cmd UpdateProgressCommand) error {
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

		if err := goal.SetProgress(cmd.Progress); err != nil {
			return err
		}

		if err := h.goalRepo.Save(txCtx, goal); err != nil {
			return err
		}

		return saveEventsToOutbox(txCtx, h.outboxRepo, goal.DomainEvents(), cmd.UserID)
	})
}
