package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"deliverytracking/internal/pkg/circuit"
	"deliverytracking/internal/pkg/errs"
)

var (
	// ErrMalformedResponse is returned when a 2xx body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed upstream response")
	// ErrInvalidRequest is returned when the request cannot be encoded or
	// built. Nothing was sent.
	ErrInvalidRequest = errors.New("invalid upstream request")
)

const maxErrorBody = 512

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream answered %d: %s", e.StatusCode, e.Body)
}

// PostJSON sends body as JSON to url and decodes a 2xx answer into out.
func PostJSON(ctx context.Context, client *http.Client, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrInvalidRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build: %w", ErrInvalidRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return nil
}

// IsUpstreamFailure reports whether err means the upstream is unhealthy:
// it could not be reached, timed out or answered 5xx. Client errors, bad
// payloads, requests that were never sent and cancellation by the caller do
// not count.
func IsUpstreamFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) ||
		errors.Is(err, ErrMalformedResponse) || errors.Is(err, ErrInvalidRequest) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError
	}

	var contractErr *errs.BadGatewayError
	return !errors.As(err, &contractErr)
}

// MapError translates the outcome of a breaker-guarded upstream call.
//
//   - open circuit, 4xx, 5xx, malformed answer, unsendable request: errs.BadGatewayError
//   - anything that prevented an answer (connection, timeout): errs.GatewayTimeoutError
func MapError(upstream string, err error) error {
	if err == nil {
		return nil
	}

	var (
		statusErr   *StatusError
		badGateway  *errs.BadGatewayError
		gatewayTime *errs.GatewayTimeoutError
	)
	switch {
	case errors.As(err, &badGateway), errors.As(err, &gatewayTime):
		return err
	case errors.Is(err, circuit.ErrOpen):
		return errs.NewBadGatewayErrorWithCause(upstream, err)
	case errors.As(err, &statusErr), errors.Is(err, ErrMalformedResponse), errors.Is(err, ErrInvalidRequest):
		return errs.NewBadGatewayErrorWithCause(upstream, err)
	default:
		return errs.NewGatewayTimeoutErrorWithCause(upstream, err)
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
