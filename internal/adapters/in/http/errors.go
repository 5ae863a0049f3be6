package http

import (
	"errors"
	"net/http"

	"deliverytracking/internal/generated/servers"
	"deliverytracking/internal/pkg/errs"
	"deliverytracking/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

// statusFor maps an application error to its HTTP status.
func statusFor(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, errs.ErrGatewayTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, errs.ErrBadGateway):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrDomainInvariantViolation),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(ctx echo.Context, err error) error {
	code := statusFor(err)

	message := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Get().Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("uri", ctx.Request().RequestURI),
			zap.Int("status", code),
			zap.Error(err),
		)
	}
	if code == http.StatusInternalServerError {
		message = internalErrorMessage
	}

	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

func badRequest(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}

// HTTPErrorHandler renders errors that escape handlers, such as unknown
// routes and parameter binding failures, in the API error format.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}
	if rerr := errorResponse(ctx, err); rerr != nil {
		logger.Get().Error("failed to write error response", zap.Error(rerr))
	}
}
