package commands

import (
	"errors"
	"slices"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/pkg/guard"
)

var ErrEditDeliveryCommandIsNotConstructed = errors.New(
	"EditDeliveryCommand must be created via NewEditDeliveryCommand constructor",
)

// EditDeliveryCommand re-prepares an existing delivery from scratch. The
// previous items and preparation details are replaced, never merged.
type EditDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	input      PreparationInput

	guard guard.ConstructorGuard
}

func NewEditDeliveryCommand(deliveryID kernel.UUID, input PreparationInput) (EditDeliveryCommand, error) {
	cmd := EditDeliveryCommand{guard: guard.NewConstructorGuard()}

	if err := cmd.setDeliveryID(deliveryID); err != nil {
		return EditDeliveryCommand{}, err
	}
	input.Items = slices.Clone(input.Items)
	cmd.input = input

	return cmd, nil
}

func (c EditDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrEditDeliveryCommandIsNotConstructed)
}

func (c EditDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c EditDeliveryCommand) Input() PreparationInput { return c.input }

func (c *EditDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}
