package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/goals/domain"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrNotOwner     = errors.New("user does not own this goal")
)

// CreateGoalCommand contains the data needed to create a goal.
type CreateGoalCommand struct {
	UserID      uuid.UUID
	Title       string
	Description string
	TargetDate  sharedDomain.Date
}

// CreateGoalResult contains the result of creating a goal.
type CreateGoalResult struct {
	GoalID uuid.UUID
}

// CreateGoalHandler handles the CreateGoalCommand.
type CreateGoalHandler struct {
	goalRepo   domain.GoalRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateGoalHandler creates a new CreateGoalHandler.
func NewCreateGoalHandler(goalRepo domain.GoalRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateGoalHandler {
	return &CreateGoalHandler{
		goalRepo:   goalRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CreateGoalCommand.
func (h *CreateGoalHandler) Handle(ctx context.Context, cmd CreateGoalCommand) (*CreateGoalResult, error) {
	var result *CreateGoalResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		goal, err := domain.NewGoal(cmd.UserID, cmd.Title, cmd.Description, cmd.TargetDate)
		if err != nil {
			return err
		}

		if err := h.goalRepo.Save(txCtx, goal); err != nil {
			return err
		}

		if err := saveEventsToOutbox(txCtx, h.outboxRepo, goal.DomainEvents(), cmd.UserID); err != nil {
			return err
		}

		result = &CreateGoalResult{GoalID: goal.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
