package commands

import (
	"context"

	"github.com/google/uuid"

	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
	"github.com/tendhq/tend/internal/tracking/domain"
)

// ArchiveHabitCommand contains the data needed to archive a habit.
type ArchiveHabitCommand struct {
	HabitID uuid.UUID
	UserID  uuid.UUID
}

// ArchiveHabitHandler handles the ArchiveHabitCommand.
type ArchiveHabitHandler struct {
	habitRepo  domain.HabitRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewArchiveHabitHandler creates a new ArchiveHabitHandler.
func NewArchiveHabitHandler(habitRepo domain.HabitRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *ArchiveHabitHandler {
	return &ArchiveHabitHandler{
		habitRepo:  habitRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the ArchiveHabitCommand.
func (h *ArchiveHabitHandler) Handle(ctx context.Context, cmd ArchiveHabitCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
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

		habit.Archive()

		if err := h.habitRepo.Save(txCtx, habit); err != nil {
			return err
		}

		return saveEventsToOutbox(txCtx, h.outboxRepo, habit.DomainEvents(), cmd.UserID)
	})
}
