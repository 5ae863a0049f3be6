package estimation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"deliverytracking/internal/core/domain/model/delivery"
	"deliverytracking/internal/core/ports"
	"deliverytracking/internal/pkg/circuit"
	"deliverytracking/internal/pkg/errs"
	"deliverytracking/internal/pkg/httpclient"
)

const (
	upstreamName      = "delivery-estimation"
	deliveryEstimates = "/api/v1/delivery-estimates"
)

var _ ports.DeliveryTimeEstimationService = &HTTPService{}

// Config holds the connection and resilience settings of the estimation API.
type Config struct {
	BaseURL          string
	Timeout          time.Duration
	FailureThreshold int
	Cooldown         time.Duration
}

type contactPointPayload struct {
	ZipCode    string `json:"zipCode"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}

type estimateRequest struct {
	Sender    contactPointPayload `json:"sender"`
	Recipient contactPointPayload `json:"recipient"`
}

type estimateResponse struct {
	EstimatedTimeInSeconds *int64   `json:"estimatedTimeInSeconds"`
	DistanceInKm           *float64 `json:"distanceInKm"`
}

// HTTPService asks a routing service for the estimate.
type HTTPService struct {
	client  *http.Client
	url     string
	breaker *circuit.Breaker
}

func NewHTTPService(cfg Config, httpMetrics *httpclient.Metrics, breakerMetrics *circuit.Metrics) *HTTPService {
	return &HTTPService{
		client: httpclient.NewClient(upstreamName, cfg.Timeout, httpMetrics),
		url:    strings.TrimRight(cfg.BaseURL, "/") + deliveryEstimates,
		breaker: circuit.New(upstreamName,
			circuit.WithFailureThreshold(cfg.FailureThreshold),
			circuit.WithCooldown(cfg.Cooldown),
			circuit.WithFailurePredicate(httpclient.IsUpstreamFailure),
			circuit.WithMetrics(breakerMetrics),
		),
	}
}

func (s *HTTPService) Estimate(
	ctx context.Context,
	sender, recipient delivery.ContactPoint,
) (ports.DeliveryEstimate, error) {
	req := estimateRequest{
		Sender:    toPayload(sender),
		Recipient: toPayload(recipient),
	}

	var estimate ports.DeliveryEstimate
	err := s.breaker.Execute(func() error {
		var resp estimateResponse
		if err := httpclient.PostJSON(ctx, s.client, s.url, req, &resp); err != nil {
			return err
		}

		switch {
		case resp.EstimatedTimeInSeconds == nil || resp.DistanceInKm == nil:
			return errs.NewBadGatewayErrorWithCause(upstreamName, errors.New("incomplete estimate"))
		case *resp.EstimatedTimeInSeconds <= 0:
			return errs.NewBadGatewayErrorWithCause(upstreamName,
				fmt.Errorf("estimated time %ds is not positive", *resp.EstimatedTimeInSeconds))
		case *resp.DistanceInKm < 0:
			return errs.NewBadGatewayErrorWithCause(upstreamName,
				fmt.Errorf("distance %v is negative", *resp.DistanceInKm))
		}

		estimate = ports.DeliveryEstimate{
			EstimatedTime: time.Duration(*resp.EstimatedTimeInSeconds) * time.Second,
			DistanceInKm:  *resp.DistanceInKm,
		}
		return nil
	})
	if err != nil {
		return ports.DeliveryEstimate{}, httpclient.MapError(upstreamName, err)
	}

	return estimate, nil
}

func toPayload(cp delivery.ContactPoint) contactPointPayload {
	return contactPointPayload{
		ZipCode:    cp.ZipCode(),
		Street:     cp.Street(),
		Number:     cp.Number(),
		Complement: cp.Complement(),
		Name:       cp.Name(),
		Phone:      cp.Phone(),
	}
}

// State exposes the breaker state for health reporting.
func (s *HTTPService) State() circuit.State {
	return s.breaker.State()
}
