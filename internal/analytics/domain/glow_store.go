package domain

import (
	"context"

	"github.com/google/uuid"
)

// GlowSeenStore persists which glow moments a user has already been
// shown. This is the engine's only piece of state.
type GlowSeenStore interface {
	SeenIDs(ctx context.Context, userID uuid.UUID) (map[string]bool, error)
	MarkSeen(ctx context.Context, userID uuid.UUID, ids []string) error
}
