package commands

import (
	"errors"
	"slices"

	"deliverytracking/internal/pkg/guard"
)

var ErrDraftDeliveryCommandIsNotConstructed = errors.New(
	"DraftDeliveryCommand must be created via NewDraftDeliveryCommand constructor",
)

// DraftDeliveryCommand requests a new priced and estimated delivery.
//
// Example:
//
//	cmd := NewDraftDeliveryCommand(PreparationInput{
//	    Sender:    ContactPointInput{ZipCode: "01310-100", Street: "Av. Paulista", Number: "1000", Name: "Alice", Phone: "555"},
//	    Recipient: ContactPointInput{ZipCode: "20040-002", Street: "Rua do Ouvidor", Number: "50", Name: "Bob", Phone: "777"},
//	    Items:     []ItemInput{{Name: "Book", Quantity: 1}},
//	})
//	d, err := preparationService.Draft(ctx, cmd)
type DraftDeliveryCommand struct { //nolint:recvcheck //using for validation
	input PreparationInput

	guard guard.ConstructorGuard
}

// NewDraftDeliveryCommand copies the input. Field validation happens when the
// contact points and items are built.
func NewDraftDeliveryCommand(input PreparationInput) DraftDeliveryCommand {
	input.Items = slices.Clone(input.Items)
	return DraftDeliveryCommand{
		input: input,
		guard: guard.NewConstructorGuard(),
	}
}

func (c DraftDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDraftDeliveryCommandIsNotConstructed)
}

func (c DraftDeliveryCommand) Input() PreparationInput {
	return c.input
}
