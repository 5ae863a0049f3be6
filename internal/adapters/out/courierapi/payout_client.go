// Package courierapi calls the courier context over HTTP.
package courierapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/ports"
	"deliverytracking/internal/pkg/circuit"
	"deliverytracking/internal/pkg/errs"
	"deliverytracking/internal/pkg/httpclient"

	"github.com/shopspring/decimal"
)

const (
	upstreamName      = "courier-payout"
	payoutCalculation = "/api/v1/couriers/payout-calculation"
)

var _ ports.CourierPayoutCalculationService = &PayoutClient{}

// Config holds the connection and resilience settings of the courier API.
type Config struct {
	BaseURL          string
	Timeout          time.Duration
	FailureThreshold int
	Cooldown         time.Duration
}

type payoutRequest struct {
	DistanceInKm float64 `json:"distanceInKm"`
}

type payoutResponse struct {
	PayoutFee *decimal.Decimal `json:"payoutFee"`
}

// PayoutClient implements ports.CourierPayoutCalculationService.
type PayoutClient struct {
	client  *http.Client
	url     string
	breaker *circuit.Breaker
}

// NewPayoutClient builds a client guarded by its own circuit breaker.
// Both metric sets may be nil.
func NewPayoutClient(cfg Config, httpMetrics *httpclient.Metrics, breakerMetrics *circuit.Metrics) *PayoutClient {
	return &PayoutClient{
		client: httpclient.NewClient(upstreamName, cfg.Timeout, httpMetrics),
		url:    strings.TrimRight(cfg.BaseURL, "/") + payoutCalculation,
		breaker: circuit.New(upstreamName,
			circuit.WithFailureThreshold(cfg.FailureThreshold),
			circuit.WithCooldown(cfg.Cooldown),
			circuit.WithFailurePredicate(httpclient.IsUpstreamFailure),
			circuit.WithMetrics(breakerMetrics),
		),
	}
}

// CalculatePayout asks the courier context for the payout of distanceInKm.
func (c *PayoutClient) CalculatePayout(ctx context.Context, distanceInKm float64) (kernel.Money, error) {
	if math.IsNaN(distanceInKm) || math.IsInf(distanceInKm, 0) || distanceInKm < 0 {
		return kernel.Money{}, errs.NewBadGatewayErrorWithCause(
			upstreamName,
			fmt.Errorf("distance %v is not a valid request", distanceInKm),
		)
	}

	var payout kernel.Money
	err := c.breaker.Execute(func() error {
		var resp payoutResponse
		if err := httpclient.PostJSON(ctx, c.client, c.url, payoutRequest{DistanceInKm: distanceInKm}, &resp); err != nil {
			return err
		}

		if resp.PayoutFee == nil {
			return errs.NewBadGatewayErrorWithCause(upstreamName, errors.New("payoutFee is missing"))
		}
		money, err := kernel.NewMoney(*resp.PayoutFee)
		if err != nil {
			return errs.NewBadGatewayErrorWithCause(upstreamName, err)
		}

		payout = money
		return nil
	})
	if err != nil {
		return kernel.Money{}, httpclient.MapError(upstreamName, err)
	}

	return payout, nil
}

// State exposes the breaker state for health reporting.
func (c *PayoutClient) State() circuit.State {
	return c.breaker.State()
}
