package commands

import (
	"context"

	"github.com/google/uuid"

	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
	"github.com/tendhq/tend/internal/tracking/domain"
)

// CreateRoutineCommand contains the data needed to create a routine.
type CreateRoutineCommand struct {
	UserID uuid.UUID
	Name   string
	Type   domain.RoutineType
	Steps  []string
}

// CreateRoutineResult contains the result of creating a routine.
type CreateRoutineResult struct {
	RoutineID uuid.UUID
}

// CreateRoutineHandler handles the CreateRoutineCommand.
type CreateRoutineHandler struct {
	routineRepo domain.RoutineRepository
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
}

// NewCreateRoutineHandler creates a new CreateRoutineHandler.
func NewCreateRoutineHandler(routineRepo domain.RoutineRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateRoutineHandler {
	return &CreateRoutineHandler{
		routineRepo: routineRepo,
		outboxRepo:  outboxRepo,
		uow:         uow,
	}
}

// Handle executes the CreateRoutineCommand.
func (h *CreateRoutineHandler) Handle(ctx context.Context, cmd CreateRoutineCommand) (*CreateRoutineResult, error) {
	var result *CreateRoutineResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		routine, err := domain.NewRoutine(cmd.UserID, cmd.Name, cmd.Type, cmd.Steps)
		if err != nil {
			return err
		}

		if err := h.routineRepo.Save(txCtx, routine); err != nil {
			return err
		}

		if err := saveEventsToOutbox(txCtx, h.outboxRepo, routine.DomainEvents(), cmd.UserID); err != nil {
			return err
		}

		result = &CreateRoutineResult{RoutineID: routine.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
