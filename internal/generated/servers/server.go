// Package servers holds the HTTP contract of the delivery tracking API: the
// OpenAPI document, its request and response types, and the echo binding
// that decodes parameters before calling a ServerInterface.
package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// ListDeliveries handles GET /api/v1/deliveries.
	ListDeliveries(ctx echo.Context, params ListDeliveriesParams) error
	// DraftDelivery handles POST /api/v1/deliveries.
	DraftDelivery(ctx echo.Context) error
	// GetDelivery handles GET /api/v1/deliveries/{deliveryId}.
	GetDelivery(ctx echo.Context, deliveryId DeliveryId) error
	// EditDelivery handles PUT /api/v1/deliveries/{deliveryId}.
	EditDelivery(ctx echo.Context, deliveryId DeliveryId) error
	// PlaceDelivery handles POST /api/v1/deliveries/{deliveryId}/placement.
	PlaceDelivery(ctx echo.Context, deliveryId DeliveryId) error
	// PickUpDelivery handles POST /api/v1/deliveries/{deliveryId}/pickups.
	PickUpDelivery(ctx echo.Context, deliveryId DeliveryId) error
	// CompleteDelivery handles POST /api/v1/deliveries/{deliveryId}/completion.
	CompleteDelivery(ctx echo.Context, deliveryId DeliveryId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListDeliveries(ctx echo.Context) error {
	var params ListDeliveriesParams

	if err := runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter page: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "size", ctx.QueryParams(), &params.Size); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter size: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.ListDeliveries(ctx, params)
}

func (w *ServerInterfaceWrapper) DraftDelivery(ctx echo.Context) error {
	return w.Handler.DraftDelivery(ctx)
}

func (w *ServerInterfaceWrapper) GetDelivery(ctx echo.Context) error {
	id, err := bindDeliveryID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetDelivery(ctx, id)
}

func (w *ServerInterfaceWrapper) EditDelivery(ctx echo.Context) error {
	id, err := bindDeliveryID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.EditDelivery(ctx, id)
}

func (w *ServerInterfaceWrapper) PlaceDelivery(ctx echo.Context) error {
	id, err := bindDeliveryID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.PlaceDelivery(ctx, id)
}

func (w *ServerInterfaceWrapper) PickUpDelivery(ctx echo.Context) error {
	id, err := bindDeliveryID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.PickUpDelivery(ctx, id)
}

func (w *ServerInterfaceWrapper) CompleteDelivery(ctx echo.Context) error {
	id, err := bindDeliveryID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CompleteDelivery(ctx, id)
}

func bindDeliveryID(ctx echo.Context) (DeliveryId, error) {
	var id DeliveryId
	err := runtime.BindStyledParameterWithOptions("simple", "deliveryId", ctx.Param("deliveryId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter deliveryId: %s", err))
	}
	return id, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/deliveries", wrapper.ListDeliveries)
	router.POST(baseURL+"/api/v1/deliveries", wrapper.DraftDelivery)
	router.GET(baseURL+"/api/v1/deliveries/:deliveryId", wrapper.GetDelivery)
	router.PUT(baseURL+"/api/v1/deliveries/:deliveryId", wrapper.EditDelivery)
	router.POST(baseURL+"/api/v1/deliveries/:deliveryId/placement", wrapper.PlaceDelivery)
	router.POST(baseURL+"/api/v1/deliveries/:deliveryId/pickups", wrapper.PickUpDelivery)
	router.POST(baseURL+"/api/v1/deliveries/:deliveryId/completion", wrapper.CompleteDelivery)
}
