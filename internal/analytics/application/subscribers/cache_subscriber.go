// Package subscribers contains event consumers for the analytics context.
package subscribers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/shared/infrastructure/eventbus"
)

// SnapshotInvalidator drops cached dashboards for a user.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// CacheSubscriber listens for domain events that change dashboard inputs
// and evicts the affected user's cached snapshots. The content-hash keys
// already prevent stale reads; eviction just keeps Redis lean.
type CacheSubscriber struct {
	invalidator SnapshotInvalidator
	logger      *slog.Logger
}

// NewCacheSubscriber creates a new CacheSubscriber.
func NewCacheSubscriber(invalidator SnapshotInvalidator, logger *slog.Logger) *CacheSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &CacheSubscriber{invalidator: invalidator, logger: logger}
}

// EventTypes returns the event types this subscriber handles.
func (s *CacheSubscriber) EventTypes() []string {
	return []string{
		"tracking.habit.created",
		"tracking.habit.completed",
		"tracking.habit.archived",
		"tracking.routine.created",
		"tracking.routine.completed",
		"journal.entry.created",
		"journal.entry.updated",
		"goals.goal.created",
		"goals.goal.progress_updated",
		"goals.goal.completed",
		"analytics.glow.unlocked",
	}
}

// Handle processes an event.
func (s *CacheSubscriber) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	userID := eventUserID(event)
	if userID == uuid.Nil {
		s.logger.Debug("event without user id, skipping cache eviction",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
		)
		return nil
	}

	if err := s.invalidator.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("dashboard cache eviction failed",
			"routing_key", event.RoutingKey,
			"user_id", userID,
			"error", err,
		)
		return nil
	}

	s.logger.Debug("dashboard cache evicted",
		"routing_key", event.RoutingKey,
		"user_id", userID,
	)
	return nil
}

// eventUserID resolves the user behind an event. Envelope metadata wins;
// bare domain-event payloads carry the id as a top-level field instead.
func eventUserID(event *eventbus.ConsumedEvent) uuid.UUID {
	if event.Metadata.UserID != uuid.Nil {
		return event.Metadata.UserID
	}
	var body struct {
		UserID uuid.UUID `json:"user_id"`
	}
	if err := json.Unmarshal(event.Payload, &body); err != nil {
		return uuid.Nil
	}
	return body.UserID
}
