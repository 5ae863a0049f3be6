package http

import (
	"context"
	"net/http"

	"deliverytracking/internal/core/application/usecases/commands"
	"deliverytracking/internal/core/application/usecases/queries"
	"deliverytracking/internal/core/domain/model/delivery"
	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

type (
	DeliveryPreparationService interface {
		Draft(ctx context.Context, cmd commands.DraftDeliveryCommand) (*delivery.Delivery, error)
		Edit(ctx context.Context, cmd commands.EditDeliveryCommand) (*delivery.Delivery, error)
	}

	DeliveryCheckpointService interface {
		Place(ctx context.Context, cmd commands.PlaceDeliveryCommand) error
		PickUp(ctx context.Context, cmd commands.PickUpDeliveryCommand) error
		Complete(ctx context.Context, cmd commands.CompleteDeliveryCommand) error
	}

	GetDeliveryQueryHandler interface {
		Handle(ctx context.Context, query queries.GetDeliveryQuery) (queries.GetDeliveryQueryResponse, error)
	}

	ListDeliveriesQueryHandler interface {
		Handle(ctx context.Context, query queries.ListDeliveriesQuery) (queries.ListDeliveriesQueryResponse, error)
	}
)

var _ servers.ServerInterface = &Server{}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command side
	preparation DeliveryPreparationService
	checkpoints DeliveryCheckpointService

	// Query side
	getDeliveryHandler    GetDeliveryQueryHandler
	listDeliveriesHandler ListDeliveriesQueryHandler
}

// NewServer creates a new HTTP server with the required services and query handlers.
func NewServer(
	preparation DeliveryPreparationService,
	checkpoints DeliveryCheckpointService,
	getDeliveryHandler GetDeliveryQueryHandler,
	listDeliveriesHandler ListDeliveriesQueryHandler,
) *Server {
	return &Server{
		preparation:           preparation,
		checkpoints:           checkpoints,
		getDeliveryHandler:    getDeliveryHandler,
		listDeliveriesHandler: listDeliveriesHandler,
	}
}

// ListDeliveries handles GET /api/v1/deliveries.
func (s *Server) ListDeliveries(ctx echo.Context, params servers.ListDeliveriesParams) error {
	var status *delivery.Status
	if params.Status != nil {
		parsed, err := delivery.StatusFromString(string(*params.Status))
		if err != nil {
			return errorResponse(ctx, err)
		}
		status = &parsed
	}

	query, err := queries.NewListDeliveriesQuery(valueOr(params.Page, 0), valueOr(params.Size, 0), status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	page, err := s.listDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryPage(page))
}

// DraftDelivery handles POST /api/v1/deliveries.
func (s *Server) DraftDelivery(ctx echo.Context) error {
	var req servers.PreparationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx)
	}

	d, err := s.preparation.Draft(ctx.Request().Context(), commands.NewDraftDeliveryCommand(toPreparationInput(req)))
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toDelivery(d))
}

// GetDelivery handles GET /api/v1/deliveries/{deliveryId}.
func (s *Server) GetDelivery(ctx echo.Context, deliveryID servers.DeliveryId) error {
	id, err := toKernelID(deliveryID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetDeliveryQuery(id)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromDeliveryView(resp))
}

// EditDelivery handles PUT /api/v1/deliveries/{deliveryId}.
func (s *Server) EditDelivery(ctx echo.Context, deliveryID servers.DeliveryId) error {
	var req servers.PreparationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx)
	}

	id, err := toKernelID(deliveryID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewEditDeliveryCommand(id, toPreparationInput(req))
	if err != nil {
		return errorResponse(ctx, err)
	}

	d, err := s.preparation.Edit(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDelivery(d))
}

// PlaceDelivery handles POST /api/v1/deliveries/{deliveryId}/placement.
func (s *Server) PlaceDelivery(ctx echo.Context, deliveryID servers.DeliveryId) error {
	id, err := toKernelID(deliveryID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewPlaceDeliveryCommand(id)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.checkpoints.Place(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PickUpDelivery handles POST /api/v1/deliveries/{deliveryId}/pickups.
func (s *Server) PickUpDelivery(ctx echo.Context, deliveryID servers.DeliveryId) error {
	var req servers.PickUpRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx)
	}

	id, err := toKernelID(deliveryID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	courierID, err := toKernelID(req.CourierId)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewPickUpDeliveryCommand(id, courierID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.checkpoints.PickUp(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/deliveries/{deliveryId}/completion.
func (s *Server) CompleteDelivery(ctx echo.Context, deliveryID servers.DeliveryId) error {
	id, err := toKernelID(deliveryID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(id)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.checkpoints.Complete(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func toKernelID(id servers.DeliveryId) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
