package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
	"github.com/tendhq/tend/internal/tracking/domain"
)

var (
	ErrHabitNotFound   = errors.New("habit not found")
	ErrRoutineNotFound = errors.New("routine not found")
	ErrNotOwner        = errors.New("user does not own this resource")
)

// CreateHabitCommand contains the data needed to create a habit.
type CreateHabitCommand struct {
	UserID   uuid.UUID
	Name     string
	Category string
}

// CreateHabitResult contains the result of creating a habit.
type CreateHabitResult struct {
	HabitID uuid.UUID
}

// CreateHabitHandler handles the CreateHabitCommand.
type CreateHabitHandler struct {
	habitRepo  domain.HabitRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateHabitHandler creates a new CreateHabitHandler.
func NewCreateHabitHandler(habitRepo domain.HabitRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateHabitHandler {
	return &CreateHabitHandler{
		habitRepo:  habitRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CreateHabitCommand.
func (h *CreateHabitHandler) Handle(ctx context.Context, cmd CreateHabitCommand) (*CreateHabitResult, error) {
	var result *CreateHabitResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		habit, err := domain.NewHabit(cmd.UserID, cmd.Name, cmd.Category)
		if err != nil {
			return err
		}

		if err := h.habitRepo.Save(txCtx, habit); err != nil {
			return err
		}

		if err := saveEventsToOutbox(txCtx, h.outboxRepo, habit.DomainEvents(), cmd.UserID); err != nil {
			return err
		}

		result = &CreateHabitResult{HabitID: habit.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
