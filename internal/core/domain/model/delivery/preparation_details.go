package delivery

import (
	"errors"
	"fmt"
	"time"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/pkg/errs"
	"deliverytracking/internal/pkg/guard"
)

var ErrPreparationDetailsIsNotConstructed = errs.NewValueIsRequiredError(
	"preparation details must be created via NewPreparationDetails")

// PreparationDetails is the pricing and ETA snapshot computed while drafting.
// It only exists as a complete unit.
type PreparationDetails struct { //nolint:recvcheck //using for validation
	sender               ContactPoint
	recipient            ContactPoint
	expectedDeliveryTime time.Duration
	courierPayout        kernel.Money
	distanceFee          kernel.Money

	guard guard.ConstructorGuard
}

// NewPreparationDetails validates every component.
//
// Example:
//
//	details, err := delivery.NewPreparationDetails(sender, recipient, 3*time.Hour, payout, fee)
//	if err != nil {
//	    return err
//	}
//	err = d.EditPreparationDetails(details)
func NewPreparationDetails(
	sender ContactPoint,
	recipient ContactPoint,
	expectedDeliveryTime time.Duration,
	courierPayout kernel.Money,
	distanceFee kernel.Money,
) (PreparationDetails, error) {
	if err := errors.Join(
		sender.Validate(),
		recipient.Validate(),
		validateExpectedDeliveryTime(expectedDeliveryTime),
		courierPayout.Validate(),
		distanceFee.Validate(),
	); err != nil {
		return PreparationDetails{}, err
	}

	return PreparationDetails{
		sender:               sender,
		recipient:            recipient,
		expectedDeliveryTime: expectedDeliveryTime,
		courierPayout:        courierPayout,
		distanceFee:          distanceFee,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

func validateExpectedDeliveryTime(d time.Duration) error {
	if d <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("expected delivery time", fmt.Errorf("%s is not positive", d))
	}
	return nil
}

func (p PreparationDetails) Validate() error {
	return p.guard.Validate(ErrPreparationDetailsIsNotConstructed)
}

func (p PreparationDetails) Sender() ContactPoint                { return p.sender }
func (p PreparationDetails) Recipient() ContactPoint             { return p.recipient }
func (p PreparationDetails) ExpectedDeliveryTime() time.Duration { return p.expectedDeliveryTime }
func (p PreparationDetails) CourierPayout() kernel.Money         { return p.courierPayout }
func (p PreparationDetails) DistanceFee() kernel.Money           { return p.distanceFee }
