package delivery_test

import (
	"testing"
	"time"

	"deliverytracking/internal/core/domain/model/delivery"
	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContactPoint(t *testing.T) {
	t.Run("should allow empty complement", func(t *testing.T) {
		cp, err := delivery.NewContactPoint("01310-100", "Av. Paulista", "1000", "", "Alice", "555")
		require.NoError(t, err)
		require.NoError(t, cp.Validate())
		assert.Empty(t, cp.Complement())
	})

	t.Run("should report every missing field", func(t *testing.T) {
		_, err := delivery.NewContactPoint("", "", "", "", "", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		for _, field := range []string{"zipCode", "street", "number", "name", "phone"} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("should compare all fields", func(t *testing.T) {
		a := mustContactPoint(t, "Alice")
		assert.True(t, a.IsEqual(mustContactPoint(t, "Alice")))
		assert.False(t, a.IsEqual(mustContactPoint(t, "Bob")))
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, delivery.ContactPoint{}.Validate(), delivery.ErrContactPointIsNotConstructed)
	})
}

func TestNewPreparationDetails(t *testing.T) {
	fee, err := kernel.MoneyFromString("9.30")
	require.NoError(t, err)

	t.Run("should reject non positive expected delivery time", func(t *testing.T) {
		_, err := delivery.NewPreparationDetails(
			mustContactPoint(t, "Alice"), mustContactPoint(t, "Bob"), 0, fee, fee)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject missing parts", func(t *testing.T) {
		_, err := delivery.NewPreparationDetails(
			delivery.ContactPoint{}, mustContactPoint(t, "Bob"), time.Hour, kernel.Money{}, fee)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "contact point")
		assert.Contains(t, err.Error(), "money")
	})

	t.Run("should keep values", func(t *testing.T) {
		details, err := delivery.NewPreparationDetails(
			mustContactPoint(t, "Alice"), mustContactPoint(t, "Bob"), time.Hour, kernel.ZeroMoney(), fee)
		require.NoError(t, err)
		require.NoError(t, details.Validate())
		assert.Equal(t, "Bob", details.Recipient().Name())
		assert.Equal(t, "0.00", details.CourierPayout().String())
	})
}
