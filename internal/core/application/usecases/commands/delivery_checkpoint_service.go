package commands

import (
	"context"

	"deliverytracking/internal/core/domain/model/delivery"
	"deliverytracking/internal/core/domain/model/kernel"
)

// DeliveryCheckpointService drives a delivery through its lifecycle
// checkpoints. Each call loads the delivery, applies one transition and
// stores the result in a single transaction. Domain errors are returned as
// they come from the aggregate.
type DeliveryCheckpointService struct {
	uowFactory DeliveryUoWFactory
}

func NewDeliveryCheckpointService(uowFactory DeliveryUoWFactory) DeliveryCheckpointService {
	return DeliveryCheckpointService{uowFactory: uowFactory}
}

// Place moves a prepared draft to WAITING_FOR_COURIER.
func (s DeliveryCheckpointService) Place(ctx context.Context, cmd PlaceDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return s.apply(ctx, cmd.DeliveryID(), (*delivery.Delivery).Place)
}

// PickUp assigns the courier and moves the delivery to IN_TRANSIT.
func (s DeliveryCheckpointService) PickUp(ctx context.Context, cmd PickUpDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return s.apply(ctx, cmd.DeliveryID(), func(d *delivery.Delivery) error {
		return d.PickUp(cmd.CourierID())
	})
}

// Complete marks an IN_TRANSIT delivery as DELIVERED.
func (s DeliveryCheckpointService) Complete(ctx context.Context, cmd CompleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return s.apply(ctx, cmd.DeliveryID(), (*delivery.Delivery).MarkAsDelivered)
}

func (s DeliveryCheckpointService) apply(
	ctx context.Context,
	id kernel.UUID,
	transition func(*delivery.Delivery) error,
) error {
	return withinUnitOfWork(ctx, s.uowFactory.Create(), func(uow DeliveryUoW) error {
		repo := uow.DeliveryRepository()

		d, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}

		if err = transition(d); err != nil {
			return err
		}

		return repo.Update(ctx, d)
	})
}
