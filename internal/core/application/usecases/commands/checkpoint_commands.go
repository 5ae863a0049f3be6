package commands

import (
	"errors"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/pkg/guard"
)

var (
	ErrPlaceDeliveryCommandIsNotConstructed = errors.New(
		"PlaceDeliveryCommand must be created via NewPlaceDeliveryCommand constructor",
	)
	ErrPickUpDeliveryCommandIsNotConstructed = errors.New(
		"PickUpDeliveryCommand must be created via NewPickUpDeliveryCommand constructor",
	)
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
)

// PlaceDeliveryCommand hands a prepared draft over for courier pickup.
type PlaceDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewPlaceDeliveryCommand(deliveryID kernel.UUID) (PlaceDeliveryCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return PlaceDeliveryCommand{}, err
	}
	return PlaceDeliveryCommand{deliveryID: deliveryID, guard: guard.NewConstructorGuard()}, nil
}

func (c PlaceDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrPlaceDeliveryCommandIsNotConstructed)
}

func (c PlaceDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// PickUpDeliveryCommand records that a courier collected the parcel.
type PickUpDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	courierID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewPickUpDeliveryCommand(deliveryID, courierID kernel.UUID) (PickUpDeliveryCommand, error) {
	if err := errors.Join(deliveryID.Validate(), courierID.Validate()); err != nil {
		return PickUpDeliveryCommand{}, err
	}
	return PickUpDeliveryCommand{
		deliveryID: deliveryID,
		courierID:  courierID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c PickUpDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrPickUpDeliveryCommandIsNotConstructed)
}

func (c PickUpDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c PickUpDeliveryCommand) CourierID() kernel.UUID  { return c.courierID }

// CompleteDeliveryCommand records that the parcel reached the recipient.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(deliveryID kernel.UUID) (CompleteDeliveryCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return CompleteDeliveryCommand{}, err
	}
	return CompleteDeliveryCommand{deliveryID: deliveryID, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
