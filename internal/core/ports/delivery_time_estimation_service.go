package ports

import (
	"context"
	"time"

	"deliverytracking/internal/core/domain/model/delivery"
)

// DeliveryEstimate is the answer of the estimation service for a route.
type DeliveryEstimate struct {
	EstimatedTime time.Duration
	DistanceInKm  float64
}

// DeliveryTimeEstimationService estimates how long and how far a delivery
// between two contact points will be.
//
// Implementations report unreachable upstreams as errs.ErrGatewayTimeout and
// upstream failures as errs.ErrBadGateway.
type DeliveryTimeEstimationService interface {
	Estimate(ctx context.Context, sender, recipient delivery.ContactPoint) (DeliveryEstimate, error)
}
