// Package outboxrepo stores serialized domain events until the relay job
// publishes them.
package outboxrepo

import (
	"time"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxMessageDTO is one row of outbox_messages.
type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	EventType   string     `gorm:"type:varchar(128);not null"`
	Payload     string     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"type:timestamptz;not null;index"`
	ProcessedAt *time.Time `gorm:"type:timestamptz;index"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromMessage(m ports.OutboxMessage) OutboxMessageDTO {
	return OutboxMessageDTO{
		ID:          m.ID.Bytes(),
		AggregateID: m.AggregateID.Bytes(),
		EventType:   m.EventType,
		Payload:     string(m.Payload),
		OccurredAt:  m.OccurredAt,
	}
}

func toMessage(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		AggregateID: aggregateID,
		EventType:   dto.EventType,
		Payload:     []byte(dto.Payload),
		OccurredAt:  dto.OccurredAt.UTC(),
	}, nil
}
