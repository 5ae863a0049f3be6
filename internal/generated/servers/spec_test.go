package servers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger_IsValid(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)

	require.NoError(t, doc.Validate(t.Context()))
	assert.Equal(t, "Delivery Tracking API", doc.Info.Title)

	for _, path := range []string{
		"/api/v1/deliveries",
		"/api/v1/deliveries/{deliveryId}",
		"/api/v1/deliveries/{deliveryId}/placement",
		"/api/v1/deliveries/{deliveryId}/pickups",
		"/api/v1/deliveries/{deliveryId}/completion",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
}
