// Package queries contains read operations. Handlers read straight from the
// database into read models without loading aggregates.
package queries

import (
	"errors"
	"time"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery reads one delivery with its items.
type GetDeliveryQuery struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDeliveryQuery(deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}
	return GetDeliveryQuery{deliveryID: deliveryID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

func (q GetDeliveryQuery) DeliveryID() kernel.UUID { return q.deliveryID }

// ContactPointView is the read model of a sender or recipient.
type ContactPointView struct {
	ZipCode    string
	Street     string
	Number     string
	Complement string
	Name       string
	Phone      string
}

// PreparationDetailsView is the read model of the pricing and ETA snapshot.
type PreparationDetailsView struct {
	Sender               ContactPointView
	Recipient            ContactPointView
	ExpectedDeliveryTime time.Duration
	CourierPayout        decimal.Decimal
	DistanceFee          decimal.Decimal
}

type ItemView struct {
	ID       kernel.UUID
	Name     string
	Quantity int
}

// GetDeliveryQueryResponse is the full read model of a delivery.
type GetDeliveryQueryResponse struct {
	ID                 kernel.UUID
	Status             string
	Items              []ItemView
	TotalItems         int
	PreparationDetails *PreparationDetailsView
	CourierID          *kernel.UUID
	PlacedAt           *time.Time
	AssignedAt         *time.Time
	FulfilledAt        *time.Time
}
