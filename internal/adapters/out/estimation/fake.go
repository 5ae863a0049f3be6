// Package estimation provides the delivery time estimation adapters.
package estimation

import (
	"context"
	"time"

	"deliverytracking/internal/core/domain/model/delivery"
	"deliverytracking/internal/core/ports"
)

const (
	fakeEstimatedTime = 3 * time.Hour
	fakeDistanceInKm  = 3.1
)

var _ ports.DeliveryTimeEstimationService = FakeService{}

// FakeService answers every route with the same estimate. It is used until a
// routing service is available.
type FakeService struct{}

func NewFakeService() FakeService {
	return FakeService{}
}

func (FakeService) Estimate(ctx context.Context, _, _ delivery.ContactPoint) (ports.DeliveryEstimate, error) {
	if err := ctx.Err(); err != nil {
		return ports.DeliveryEstimate{}, err
	}
	return ports.DeliveryEstimate{
		EstimatedTime: fakeEstimatedTime,
		DistanceInKm:  fakeDistanceInKm,
	}, nil
}
