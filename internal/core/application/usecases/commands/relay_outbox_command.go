package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/ports"
	"deliverytracking/internal/pkg/guard"
)

var (
	ErrRelayOutboxCommandIsNotConstructed = errors.New(
		"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
	)
	ErrBatchSizeIsInvalid = errors.New("batch size must be greater than 0")
)

// RelayOutboxCommand publishes up to BatchSize stored events.
type RelayOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayOutboxCommand(batchSize int) (RelayOutboxCommand, error) {
	if batchSize <= 0 {
		return RelayOutboxCommand{}, ErrBatchSizeIsInvalid
	}
	return RelayOutboxCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

func (c RelayOutboxCommand) BatchSize() int { return c.batchSize }

// RelayOutboxCommandHandler moves events from the outbox to the broker.
// Messages are marked processed in the same transaction that read them, after
// the broker accepted them. A failed publish leaves them for the next run, so
// consumers may see a message more than once.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

func NewRelayOutboxCommandHandler(uowFactory OutboxUoWFactory, publisher ports.EventPublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle returns the number of published messages.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	published := 0
	err := withinUnitOfWork(ctx, h.uowFactory.Create(), func(uow OutboxUoW) error {
		repo := uow.OutboxRepository()

		messages, err := repo.GetUnprocessed(ctx, cmd.BatchSize())
		if err != nil {
			return err
		}
		if len(messages) == 0 {
			return nil
		}

		if err = h.publisher.Publish(ctx, messages...); err != nil {
			return fmt.Errorf("publish outbox messages: %w", err)
		}

		ids := make([]kernel.UUID, 0, len(messages))
		for _, m := range messages {
			ids = append(ids, m.ID)
		}
		if err = repo.MarkProcessed(ctx, ids, h.now()); err != nil {
			return err
		}

		published = len(messages)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return published, nil
}
