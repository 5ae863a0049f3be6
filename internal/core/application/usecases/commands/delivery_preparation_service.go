package commands

import (
	"context"
	"errors"
	"fmt"

	"deliverytracking/internal/core/domain/model/delivery"
	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/services"
	"deliverytracking/internal/core/ports"
)

// DeliveryPreparationService drafts and re-prepares deliveries.
//
// Preparing a delivery estimates the route, asks the courier context for the
// payout, prices the distance and writes everything onto the aggregate.
// Upstream calls happen before the transaction is opened, so a slow or broken
// upstream never holds a database lock and a failed preparation persists
// nothing.
//
// Example:
//
//	svc := NewDeliveryPreparationService(uowFactory, estimator, payoutClient)
//	d, err := svc.Draft(ctx, NewDraftDeliveryCommand(input))
//	switch {
//	case errors.Is(err, errs.ErrGatewayTimeout):
//	    // upstream unreachable, retry later
//	case errors.Is(err, errs.ErrBadGateway):
//	    // upstream failed or circuit open
//	case err != nil:
//	    return err
//	}
type DeliveryPreparationService struct {
	uowFactory    DeliveryUoWFactory
	estimation    ports.DeliveryTimeEstimationService
	payout        ports.CourierPayoutCalculationService
	feeCalculator services.DistanceFeeCalculator
	opts          []delivery.Option
}

// NewDeliveryPreparationService wires the service. opts are passed to every
// drafted delivery.
func NewDeliveryPreparationService(
	uowFactory DeliveryUoWFactory,
	estimation ports.DeliveryTimeEstimationService,
	payout ports.CourierPayoutCalculationService,
	opts ...delivery.Option,
) DeliveryPreparationService {
	return DeliveryPreparationService{
		uowFactory:    uowFactory,
		estimation:    estimation,
		payout:        payout,
		feeCalculator: services.NewDistanceFeeCalculator(),
		opts:          opts,
	}
}

// Draft creates and stores a new DRAFT delivery.
func (s DeliveryPreparationService) Draft(ctx context.Context, cmd DraftDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	details, err := s.prepare(ctx, cmd.Input())
	if err != nil {
		return nil, err
	}

	d := delivery.Draft(s.opts...)
	if err = applyPreparation(d, details, cmd.Input().Items); err != nil {
		return nil, err
	}

	err = withinUnitOfWork(ctx, s.uowFactory.Create(), func(uow DeliveryUoW) error {
		return uow.DeliveryRepository().Add(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	return d, nil
}

// Edit replaces the items and preparation details of an existing delivery.
// A missing or no longer editable delivery fails before any upstream call;
// the delivery is loaded again under lock once the upstreams answered.
func (s DeliveryPreparationService) Edit(ctx context.Context, cmd EditDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensureEditable(ctx, cmd.DeliveryID()); err != nil {
		return nil, err
	}

	details, err := s.prepare(ctx, cmd.Input())
	if err != nil {
		return nil, err
	}

	var edited *delivery.Delivery
	err = withinUnitOfWork(ctx, s.uowFactory.Create(), func(uow DeliveryUoW) error {
		repo := uow.DeliveryRepository()

		d, err := repo.Get(ctx, cmd.DeliveryID())
		if err != nil {
			return err
		}

		if err = d.RemoveItems(); err != nil {
			return err
		}
		if err = applyPreparation(d, details, cmd.Input().Items); err != nil {
			return err
		}

		if err = repo.Update(ctx, d); err != nil {
			return err
		}

		edited = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	return edited, nil
}

func (s DeliveryPreparationService) ensureEditable(ctx context.Context, id kernel.UUID) error {
	return withinUnitOfWork(ctx, s.uowFactory.Create(), func(uow DeliveryUoW) error {
		d, err := uow.DeliveryRepository().Get(ctx, id)
		if err != nil {
			return err
		}
		return d.Status().ValidateEditable()
	})
}

// prepare builds the contact points and calls the upstreams.
func (s DeliveryPreparationService) prepare(ctx context.Context, in PreparationInput) (delivery.PreparationDetails, error) {
	sender, senderErr := in.Sender.toContactPoint()
	recipient, recipientErr := in.Recipient.toContactPoint()
	if err := errors.Join(wrapContactErr("sender", senderErr), wrapContactErr("recipient", recipientErr)); err != nil {
		return delivery.PreparationDetails{}, err
	}

	estimate, err := s.estimation.Estimate(ctx, sender, recipient)
	if err != nil {
		return delivery.PreparationDetails{}, err
	}

	payout, err := s.payout.CalculatePayout(ctx, estimate.DistanceInKm)
	if err != nil {
		return delivery.PreparationDetails{}, err
	}

	fee, err := s.feeCalculator.Calculate(estimate.DistanceInKm)
	if err != nil {
		return delivery.PreparationDetails{}, err
	}

	return delivery.NewPreparationDetails(sender, recipient, estimate.EstimatedTime, payout, fee)
}

func applyPreparation(d *delivery.Delivery, details delivery.PreparationDetails, items []ItemInput) error {
	if err := d.EditPreparationDetails(details); err != nil {
		return err
	}

	for i, item := range items {
		if _, err := d.AddItem(item.Name, item.Quantity); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}

	return nil
}

func wrapContactErr(role string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", role, err)
}
