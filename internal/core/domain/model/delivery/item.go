package delivery

import (
	"errors"
	"fmt"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/pkg/errs"
)

// Item is a line of a delivery. It is only changed through its Delivery.
type Item struct {
	id       kernel.UUID
	name     string
	quantity int
}

func newItem(name string, quantity int) (Item, error) {
	return RestoreItem(kernel.NewUUID(), name, quantity)
}

// RestoreItem rebuilds an item loaded from persistence.
func RestoreItem(id kernel.UUID, name string, quantity int) (Item, error) {
	if err := errors.Join(
		id.Validate(),
		validateItemName(name),
		validateQuantity(quantity),
	); err != nil {
		return Item{}, err
	}
	return Item{id: id, name: name, quantity: quantity}, nil
}

func (i Item) ID() kernel.UUID { return i.id }
func (i Item) Name() string    { return i.name }
func (i Item) Quantity() int   { return i.quantity }

func validateItemName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}
