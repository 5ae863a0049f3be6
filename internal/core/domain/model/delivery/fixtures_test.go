package delivery_test

import (
	"testing"
	"time"

	"deliverytracking/internal/core/domain/model/delivery"
	"deliverytracking/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func mustContactPoint(t *testing.T, name string) delivery.ContactPoint {
	t.Helper()
	cp, err := delivery.NewContactPoint("01310-100", "Av. Paulista", "1000", "apt 12", name, "+55 11 99999-0000")
	require.NoError(t, err)
	return cp
}

func mustDetails(t *testing.T) delivery.PreparationDetails {
	t.Helper()
	payout, err := kernel.MoneyFromString("15.00")
	require.NoError(t, err)
	fee, err := kernel.MoneyFromString("9.30")
	require.NoError(t, err)

	details, err := delivery.NewPreparationDetails(
		mustContactPoint(t, "Alice"),
		mustContactPoint(t, "Bob"),
		3*time.Hour,
		payout,
		fee,
	)
	require.NoError(t, err)
	return details
}

func preparedDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	d := delivery.Draft(delivery.WithClock(fixedClock))
	require.NoError(t, d.EditPreparationDetails(mustDetails(t)))
	_, err := d.AddItem("Book", 1)
	require.NoError(t, err)
	return d
}

func placedDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	d := preparedDelivery(t)
	require.NoError(t, d.Place())
	return d
}

func inTransitDelivery(t *testing.T) (*delivery.Delivery, kernel.UUID) {
	t.Helper()
	d := placedDelivery(t)
	courierID := kernel.NewUUID()
	require.NoError(t, d.PickUp(courierID))
	return d, courierID
}

// snapshot captures the observable state to assert no partial mutation.
type snapshot struct {
	status      delivery.Status
	items       []delivery.Item
	hasDetails  bool
	courierID   *kernel.UUID
	placedAt    *time.Time
	assignedAt  *time.Time
	fulfilledAt *time.Time
}

func takeSnapshot(d *delivery.Delivery) snapshot {
	_, hasDetails := d.PreparationDetails()
	return snapshot{
		status:      d.Status(),
		items:       d.Items(),
		hasDetails:  hasDetails,
		courierID:   d.CourierID(),
		placedAt:    d.PlacedAt(),
		assignedAt:  d.AssignedAt(),
		fulfilledAt: d.FulfilledAt(),
	}
}
