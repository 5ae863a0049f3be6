// Package ports defines the contracts between the delivery domain and the
// infrastructure around it: persistence, upstream services and messaging.
package ports

import (
	"context"

	"deliverytracking/internal/core/domain/model/delivery"
	"deliverytracking/internal/core/domain/model/kernel"
)

// DeliveryRepository persists Delivery aggregates together with their items
// and preparation details.
type DeliveryRepository interface {
	// Add stores a newly drafted delivery.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update stores the current state of a loaded delivery. It returns
	// errs.ErrConcurrentModification when another transaction updated the
	// delivery after it was loaded.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get loads a delivery by id and returns errs.ErrObjectNotFound when it
	// does not exist. Inside a transaction the row stays locked until commit
	// or rollback, so operations on the same delivery are serialized.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)
}
