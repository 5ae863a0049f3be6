package ports

import (
	"context"
	"time"

	"deliverytracking/internal/core/domain/model/kernel"
)

// OutboxMessage is a serialized domain event waiting to be published.
type OutboxMessage struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	EventType   string
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository reads and acknowledges stored events.
type OutboxRepository interface {
	// GetUnprocessed returns at most limit unpublished messages, oldest first.
	GetUnprocessed(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkProcessed flags the given messages as published.
	MarkProcessed(ctx context.Context, ids []kernel.UUID, processedAt time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
// Publish either hands over every message or returns an error.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
