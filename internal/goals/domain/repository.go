package domain

import (
	"context"

	"github.com/google/uuid"
)

// GoalRepository defines persistence for goals.
// FindByID returns (nil, nil) when no goal exists.
type GoalRepository interface {
	Save(ctx context.Context, goal *Goal) error
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Goal, error)
	FindOpenByUserID(ctx context.Context, userID uuid.UUID) ([]*Goal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
