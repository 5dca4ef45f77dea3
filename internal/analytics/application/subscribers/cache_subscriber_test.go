package subscribers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendhq/tend/internal/shared/infrastructure/eventbus"
)

type recordingInvalidator struct {
	calls []uuid.UUID
	err   error
}

func (r *recordingInvalidator) Invalidate(_ context.Context, userID uuid.UUID) error {
	r.calls = append(r.calls, userID)
	return r.err
}

func TestCacheSubscriberEventTypes(t *testing.T) {
	sub := NewCacheSubscriber(&recordingInvalidator{}, nil)

	types := sub.EventTypes()
	assert.Contains(t, types, "tracking.habit.completed")
	assert.Contains(t, types, "journal.entry.created")
	assert.Contains(t, types, "goals.goal.completed")
}

func TestCacheSubscriberEvictsFromMetadata(t *testing.T) {
	inv := &recordingInvalidator{}
	sub := NewCacheSubscriber(inv, nil)
	userID := uuid.New()

	err := sub.Handle(context.Background(), &eventbus.ConsumedEvent{
		RoutingKey: "tracking.habit.completed",
		Metadata:   eventbus.EventMetadata{UserID: userID},
	})
	require.NoError(t, err)
	require.Len(t, inv.calls, 1)
	assert.Equal(t, userID, inv.calls[0])
}

func TestCacheSubscriberEvictsFromPayload(t *testing.T) {
	inv := &recordingInvalidator{}
	sub := NewCacheSubscriber(inv, nil)
	userID := uuid.New()

	payload, err := json.Marshal(map[string]any{
		"habit_id": uuid.New(),
		"user_id":  userID,
		"name":     "Meditate",
	})
	require.NoError(t, err)

	err = sub.Handle(context.Background(), &eventbus.ConsumedEvent{
		RoutingKey: "tracking.habit.completed",
		Payload:    payload,
	})
	require.NoError(t, err)
	require.Len(t, inv.calls, 1)
	assert.Equal(t, userID, inv.calls[0])
}

func TestCacheSubscriberSkipsWithoutUser(t *testing.T) {
	inv := &recordingInvalidator{}
	sub := NewCacheSubscriber(inv, nil)

	err := sub.Handle(context.Background(), &eventbus.ConsumedEvent{
		RoutingKey: "tracking.habit.completed",
		Payload:    []byte(`{"name":"Meditate"}`),
	})
	require.NoError(t, err)
	assert.Empty(t, inv.calls)
}

func TestCacheSubscriberSwallowsInvalidatorErrors(t *testing.T) {
	inv := &recordingInvalidator{err: assert.AnError}
	sub := NewCacheSubscriber(inv, nil)

	err := sub.Handle(context.Background(), &eventbus.ConsumedEvent{
		RoutingKey: "goals.goal.completed",
		Metadata:   eventbus.EventMetadata{UserID: uuid.New()},
	})
	assert.NoError(t, err)
}
