package eventbus

import (
	"context"
	"log/slog"
	"os"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConsumer struct {
	eventTypes []string
	events     []*ConsumedEvent
}

func (r *recordingConsumer) EventTypes() []string {
	return r.eventTypes
}

func (r *recordingConsumer) Handle(ctx context.Context, event *ConsumedEvent) error {
	r.events = append(r.events, event)
	return nil
}

func newTestRabbitMQConsumer(registry *ConsumerRegistry) *RabbitMQConsumer {
	return &RabbitMQConsumer{
		registry: registry,
		logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
}

func TestRabbitMQConsumer_ProcessBareDomainPayload(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	registry := NewConsumerRegistry(logger)

	consumer := &recordingConsumer{
		eventTypes: []string{"tracking.habit.completed"},
	}
	registry.Register(consumer)

	c := newTestRabbitMQConsumer(registry)

	// Outbox messages carry the bare domain event, no envelope fields
	body := []byte(`{"user_id":"11111111-1111-1111-1111-111111111111","habit_id":"22222222-2222-2222-2222-222222222222"}`)
	err := c.processMessage(context.Background(), amqp.Delivery{
		RoutingKey: "tracking.habit.completed",
		Body:       body,
	})

	require.NoError(t, err)
	require.Len(t, consumer.events, 1)
	// Routing key comes from AMQP metadata, payload keeps the raw bytes
	assert.Equal(t, "tracking.habit.completed", consumer.events[0].RoutingKey)
	assert.JSONEq(t, string(body), string(consumer.events[0].Payload))
}

func TestRabbitMQConsumer_ProcessEnvelopePayload(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	registry := NewConsumerRegistry(logger)

	consumer := &recordingConsumer{
		eventTypes: []string{"journal.entry.created"},
	}
	registry.Register(consumer)

	c := newTestRabbitMQConsumer(registry)

	body := []byte(`{"routing_key":"journal.entry.created","payload":{"title":"Morning pages"}}`)
	err := c.processMessage(context.Background(), amqp.Delivery{
		RoutingKey: "journal.entry.created",
		Body:       body,
	})

	require.NoError(t, err)
	require.Len(t, consumer.events, 1)
	// An envelope's own payload wins over the raw body
	assert.JSONEq(t, `{"title":"Morning pages"}`, string(consumer.events[0].Payload))
}

func TestRabbitMQConsumer_ProcessInvalidPayload(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	registry := NewConsumerRegistry(logger)

	consumer := &recordingConsumer{
		eventTypes: []string{"tracking.habit.completed"},
	}
	registry.Register(consumer)

	c := newTestRabbitMQConsumer(registry)

	err := c.processMessage(context.Background(), amqp.Delivery{
		RoutingKey: "tracking.habit.completed",
		Body:       []byte("not json"),
	})

	// Bad messages are acked and discarded, never redelivered
	require.NoError(t, err)
	assert.Empty(t, consumer.events)
}
