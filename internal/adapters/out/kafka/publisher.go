// Package kafka publishes outbox messages to a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"strings"
	"time"

	"deliverytracking/internal/core/ports"
	"deliverytracking/internal/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	headerEventType  = "event-type"
	headerMessageID  = "message-id"
	writeBatchTimeout = 50 * time.Millisecond
)

var _ ports.EventPublisher = &Publisher{}

// Writer is the part of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes every message keyed by its delivery id, so events of one
// delivery keep their order within a partition.
type Publisher struct {
	writer Writer
	log    *zap.Logger
}

// NewPublisher connects to brokers, a comma separated list of host:port.
func NewPublisher(brokers, topic string) *Publisher {
	return NewPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(splitBrokers(brokers)...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: writeBatchTimeout,
	})
}

func NewPublisherWithWriter(w Writer) *Publisher {
	return &Publisher{
		writer: w,
		log:    logger.Get().Named("kafka_publisher"),
	}
}

func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, kafka.Message{
			Key:   []byte(m.AggregateID.String()),
			Value: m.Payload,
			Time:  m.OccurredAt,
			Headers: []kafka.Header{
				{Key: headerEventType, Value: []byte(m.EventType)},
				{Key: headerMessageID, Value: []byte(m.ID.String())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.log.Error("failed to publish events", zap.Int("count", len(msgs)), zap.Error(err))
		return fmt.Errorf("publish %d events: %w", len(msgs), err)
	}

	p.log.Debug("events published", zap.Int("count", len(msgs)))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func splitBrokers(brokers string) []string {
	var addrs []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}
	return addrs
}
