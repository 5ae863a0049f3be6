package ports

import (
	"context"

	"deliverytracking/internal/core/domain/model/kernel"
)

// CourierPayoutCalculationService asks the courier context how much a courier
// is paid for a distance.
//
// Errors:
//   - errs.ErrGatewayTimeout: the service could not be reached in time
//   - errs.ErrBadGateway: the service failed, answered with something
//     unusable, or the circuit breaker is open
type CourierPayoutCalculationService interface {
	CalculatePayout(ctx context.Context, distanceInKm float64) (kernel.Money, error)
}
