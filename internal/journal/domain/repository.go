package domain

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

// EntryRepository defines persistence for journal entries.
// FindByDate returns (nil, nil) when no entry exists for the day.
type EntryRepository interface {
	Save(ctx context.Context, entry *Entry) error
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	FindByDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) (*Entry, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Entry, error)
	FindRange(ctx context.Context, userID uuid.UUID, from, to sharedDomain.Date) ([]*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
